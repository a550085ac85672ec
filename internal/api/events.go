package api

// Broadcast events. One event per task mutation or membership change; the
// type tag plus field names are the wire contract.

type TaskCreatedEvent struct {
	Type string `json:"type"`
	Task Task   `json:"task"`
}

func NewTaskCreatedEvent(task Task) TaskCreatedEvent {
	return TaskCreatedEvent{Type: "task_created", Task: task}
}

type TaskUpdatedEvent struct {
	Type string `json:"type"`
	Task Task   `json:"task"`
}

func NewTaskUpdatedEvent(task Task) TaskUpdatedEvent {
	return TaskUpdatedEvent{Type: "task_updated", Task: task}
}

type TaskDeletedEvent struct {
	Type      string `json:"type"`
	TaskID    int64  `json:"task_id"`
	Permanent bool   `json:"permanent"`
}

func NewTaskDeletedEvent(taskID int64, permanent bool) TaskDeletedEvent {
	return TaskDeletedEvent{Type: "task_deleted", TaskID: taskID, Permanent: permanent}
}

type TaskRestoredEvent struct {
	Type string `json:"type"`
	Task Task   `json:"task"`
}

func NewTaskRestoredEvent(task Task) TaskRestoredEvent {
	return TaskRestoredEvent{Type: "task_restored", Task: task}
}

type UserJoinedEvent struct {
	Type     string `json:"type"`
	UserName string `json:"user_name"`
}

func NewUserJoinedEvent(userName string) UserJoinedEvent {
	return UserJoinedEvent{Type: "user_joined", UserName: userName}
}

type UserLeftEvent struct {
	Type     string `json:"type"`
	UserName string `json:"user_name"`
}

func NewUserLeftEvent(userName string) UserLeftEvent {
	return UserLeftEvent{Type: "user_left", UserName: userName}
}

// MessageEvent relays free text between room members; it is never persisted.
type MessageEvent struct {
	Type    string `json:"type"`
	User    string `json:"user"`
	Content string `json:"content"`
}

func NewMessageEvent(user, content string) MessageEvent {
	return MessageEvent{Type: "message", User: user, Content: content}
}
