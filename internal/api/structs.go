// Package api defines the JSON shapes served over HTTP and broadcast over
// websockets. Field names are the wire contract and must not change.
package api

import (
	"time"

	"github.com/taskroom-project/backend/internal/database/models"
)

type Task struct {
	ID          int64           `json:"id"`
	Text        string          `json:"text"`
	Completed   bool            `json:"completed"`
	Creator     string          `json:"creator"`
	RoomID      string          `json:"room_id"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Tags        []string        `json:"tags"`
	Description *string         `json:"description,omitempty"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

func TaskFromModel(task models.Task) (t Task) {
	t.FromModel(task)
	return
}

func (t *Task) FromModel(task models.Task) {
	t.ID = task.ID
	t.Text = task.Text
	t.Completed = task.Completed
	t.Creator = task.Creator
	t.RoomID = task.RoomID
	t.Priority = task.Priority
	t.DueDate = task.DueDate
	t.Tags = task.Tags
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Description = task.Description
	t.IsDeleted = task.IsDeleted
	t.CreatedAt = task.CreatedAt
	t.UpdatedAt = task.UpdatedAt
	t.DeletedAt = task.DeletedAt
}

type Room struct {
	ID          uint      `json:"id"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"created_at"`
	ActiveUsers []string  `json:"active_users"`
}

func RoomFromModel(room models.Room) (r Room) {
	r.ID = room.ID
	r.Token = room.Token
	r.CreatedAt = room.CreatedAt
	r.ActiveUsers = room.ActiveUsers
	if r.ActiveUsers == nil {
		r.ActiveUsers = []string{}
	}
	return
}

// Sent by client
type TaskCreate struct {
	Text        string          `json:"text"`
	Creator     string          `json:"creator"`
	RoomID      string          `json:"room_id"`
	Priority    models.Priority `json:"priority,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Description *string         `json:"description,omitempty"`
}

// Sent by client. Absent fields are left untouched; id, room_id, creator and
// created_at are not updatable.
type TaskUpdate struct {
	Text        *string          `json:"text"`
	Completed   *bool            `json:"completed"`
	Priority    *models.Priority `json:"priority"`
	DueDate     *time.Time       `json:"due_date"`
	Tags        *[]string        `json:"tags"`
	Description *string          `json:"description"`
}

func (u TaskUpdate) Patch() (p models.TaskPatch) {
	p.Text = u.Text
	p.Completed = u.Completed
	p.Priority = u.Priority
	p.DueDate = u.DueDate
	if u.Tags != nil {
		tags := models.StringList(*u.Tags)
		p.Tags = &tags
	}
	p.Description = u.Description
	return
}
