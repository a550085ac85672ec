package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskroom-project/backend/internal/database/models"
)

// The event JSON is consumed by deployed clients; these pin the exact shapes.
func TestEventWireShapes(t *testing.T) {
	for name, tc := range map[string]struct {
		event    interface{}
		expected string
	}{
		"task_deleted": {
			event:    NewTaskDeletedEvent(7, false),
			expected: `{"type":"task_deleted","task_id":7,"permanent":false}`,
		},
		"task_deleted permanent": {
			event:    NewTaskDeletedEvent(7, true),
			expected: `{"type":"task_deleted","task_id":7,"permanent":true}`,
		},
		"user_joined": {
			event:    NewUserJoinedEvent("alice"),
			expected: `{"type":"user_joined","user_name":"alice"}`,
		},
		"user_left": {
			event:    NewUserLeftEvent("alice"),
			expected: `{"type":"user_left","user_name":"alice"}`,
		},
		"message": {
			event:    NewMessageEvent("alice", "hello"),
			expected: `{"type":"message","user":"alice","content":"hello"}`,
		},
	} {
		payload, err := json.Marshal(tc.event)
		require.NoError(t, err, name)
		assert.JSONEq(t, tc.expected, string(payload), name)
	}
}

func TestTaskEventCarriesTask(t *testing.T) {
	created := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	event := NewTaskCreatedEvent(TaskFromModel(models.Task{
		ID:        3,
		Text:      "Buy milk",
		Creator:   "alice",
		RoomID:    "R1",
		Priority:  models.PriorityMedium,
		CreatedAt: created,
	}))

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "task_created",
		"task": {
			"id": 3,
			"text": "Buy milk",
			"completed": false,
			"creator": "alice",
			"room_id": "R1",
			"priority": "medium",
			"tags": [],
			"is_deleted": false,
			"created_at": "2023-04-01T12:00:00Z"
		}
	}`, string(payload))
}

func TestTaskUpdateDistinguishesAbsentFields(t *testing.T) {
	var update TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"completed":true}`), &update))

	patch := update.Patch()
	require.NotNil(t, patch.Completed)
	assert.True(t, *patch.Completed)
	assert.Nil(t, patch.Text)
	assert.Nil(t, patch.Priority)
	assert.Nil(t, patch.Tags)
	assert.Nil(t, patch.DueDate)
	assert.Nil(t, patch.Description)
}
