package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Task struct {
	bun.BaseModel

	ID        int64 `bun:",pk,autoincrement"`
	Text      string
	Completed bool
	Creator   string
	// RoomID holds the room token, not the numeric room id.
	RoomID      string
	Priority    Priority
	DueDate     *time.Time
	Tags        StringList
	Description *string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// TaskPatch carries a partial update: nil means "leave the field alone".
// Identity fields (id, room_id, creator, created_at) are excluded on purpose.
type TaskPatch struct {
	Text        *string
	Completed   *bool
	Priority    *Priority
	DueDate     *time.Time
	Tags        *StringList
	Description *string
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Text == nil && p.Completed == nil && p.Priority == nil &&
		p.DueDate == nil && p.Tags == nil && p.Description == nil
}
