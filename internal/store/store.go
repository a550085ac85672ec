// Package store is the durable record of rooms and tasks, backed by bun.
//
// Absence is reported as ErrNotFound so callers can tell a missing row apart
// from an I/O failure.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/taskroom-project/backend/internal/database/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateRoom(ctx context.Context, token string) (room models.Room, err error) {
	room = models.Room{
		Token:       token,
		CreatedAt:   time.Now().UTC(),
		ActiveUsers: models.StringList{},
	}

	if _, err = s.db.NewInsert().Model(&room).Exec(ctx); err != nil {
		err = fmt.Errorf("insert room: %w", err)
	}
	return
}

func (s *Store) RoomByToken(ctx context.Context, token string) (room models.Room, err error) {
	err = s.db.NewSelect().
		Model(&room).
		Where("token = ?", token).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	} else if err != nil {
		err = fmt.Errorf("select room: %w", err)
	}
	return
}

func (s *Store) SetRoomMembers(ctx context.Context, roomID uint, names []string) (err error) {
	_, err = s.db.NewUpdate().
		Model((*models.Room)(nil)).
		Set("active_users = ?", models.StringList(names)).
		Where("id = ?", roomID).
		Exec(ctx)
	if err != nil {
		err = fmt.Errorf("update room members: %w", err)
	}
	return
}

func (s *Store) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.Tags == nil {
		task.Tags = models.StringList{}
	}
	task.CreatedAt = time.Now().UTC()

	if _, err := s.db.NewInsert().Model(&task).Exec(ctx); err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *Store) TaskByID(ctx context.Context, id int64) (task models.Task, err error) {
	err = s.db.NewSelect().
		Model(&task).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	} else if err != nil {
		err = fmt.Errorf("select task: %w", err)
	}
	return
}

// UpdateTask applies the non-nil fields of patch and stamps updated_at.
// An empty patch is a plain read.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (task models.Task, err error) {
	if patch.Empty() {
		return s.TaskByID(ctx, id)
	}

	q := s.db.NewUpdate().
		Model((*models.Task)(nil)).
		Where("id = ?", id)

	if patch.Text != nil {
		q = q.Set("text = ?", *patch.Text)
	}
	if patch.Completed != nil {
		q = q.Set("completed = ?", *patch.Completed)
	}
	if patch.Priority != nil {
		q = q.Set("priority = ?", *patch.Priority)
	}
	if patch.DueDate != nil {
		q = q.Set("due_date = ?", *patch.DueDate)
	}
	if patch.Tags != nil {
		q = q.Set("tags = ?", *patch.Tags)
	}
	if patch.Description != nil {
		q = q.Set("description = ?", *patch.Description)
	}
	q = q.Set("updated_at = ?", time.Now().UTC())

	var res sql.Result
	if res, err = q.Exec(ctx); err != nil {
		err = fmt.Errorf("update task: %w", err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = ErrNotFound
		return
	}

	return s.TaskByID(ctx, id)
}

// SoftDeleteTask marks the task deleted. Re-deleting just refreshes deleted_at.
func (s *Store) SoftDeleteTask(ctx context.Context, id int64, at time.Time) (err error) {
	var res sql.Result
	res, err = s.db.NewUpdate().
		Model((*models.Task)(nil)).
		Set("is_deleted = ?", true).
		Set("deleted_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		err = fmt.Errorf("soft delete task: %w", err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = ErrNotFound
	}
	return
}

// HardDeleteTask removes the row for good; deleting an absent task is a no-op.
func (s *Store) HardDeleteTask(ctx context.Context, id int64) (err error) {
	_, err = s.db.NewDelete().
		Model((*models.Task)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		err = fmt.Errorf("delete task: %w", err)
	}
	return
}

// RestoreTask clears the soft-delete flag. updated_at is left alone on purpose.
func (s *Store) RestoreTask(ctx context.Context, id int64) (err error) {
	var res sql.Result
	res, err = s.db.NewUpdate().
		Model((*models.Task)(nil)).
		Set("is_deleted = ?", false).
		Set("deleted_at = NULL").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		err = fmt.Errorf("restore task: %w", err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = ErrNotFound
	}
	return
}

func (s *Store) ListTasks(ctx context.Context, roomID string, includeDeleted bool) (tasks []models.Task, err error) {
	tasks = make([]models.Task, 0)

	q := s.db.NewSelect().
		Model(&tasks).
		Where("room_id = ?", roomID).
		Order("created_at DESC")
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	if err = q.Scan(ctx); err != nil {
		err = fmt.Errorf("select tasks: %w", err)
	}
	return
}

func (s *Store) ListDeletedTasks(ctx context.Context, roomID string) (tasks []models.Task, err error) {
	tasks = make([]models.Task, 0)

	err = s.db.NewSelect().
		Model(&tasks).
		Where("room_id = ?", roomID).
		Where("is_deleted = ?", true).
		Order("deleted_at DESC").
		Scan(ctx)
	if err != nil {
		err = fmt.Errorf("select deleted tasks: %w", err)
	}
	return
}
