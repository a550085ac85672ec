// Package tasks holds the task lifecycle rules: creation defaults, partial
// updates, the soft-delete / restore cycle and the trash listing. It is
// storage-agnostic; the durable side lives behind the Store interface.
package tasks

import (
	"context"
	"time"

	"github.com/taskroom-project/backend/internal/database/models"
)

// Store is the slice of the durable layer the lifecycle needs. Implemented
// by *store.Store; tests substitute an in-memory fake.
type Store interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	TaskByID(ctx context.Context, id int64) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	SoftDeleteTask(ctx context.Context, id int64, at time.Time) error
	HardDeleteTask(ctx context.Context, id int64) error
	RestoreTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, roomID string, includeDeleted bool) ([]models.Task, error)
	ListDeletedTasks(ctx context.Context, roomID string) ([]models.Task, error)
}

type CreateInput struct {
	Text        string
	Creator     string
	RoomID      string
	Priority    models.Priority
	DueDate     *time.Time
	Tags        []string
	Description *string
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type Service struct {
	store Store
}

func (s *Service) Create(ctx context.Context, in CreateInput) (task models.Task, err error) {
	if in.Text == "" {
		err = invalid("text", "must not be empty")
		return
	}
	if in.Creator == "" {
		err = invalid("creator", "must not be empty")
		return
	}
	if in.RoomID == "" {
		err = invalid("room_id", "must not be empty")
		return
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		err = invalid("priority", "must be one of low, medium, high, urgent")
		return
	}

	return s.store.CreateTask(ctx, models.Task{
		Text:        in.Text,
		Creator:     in.Creator,
		RoomID:      in.RoomID,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Tags:        models.StringList(in.Tags),
		Description: in.Description,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (models.Task, error) {
	return s.store.TaskByID(ctx, id)
}

// Update applies the present fields of patch; soft-deleted tasks stay
// updatable so edits made from the trash view are not lost.
func (s *Service) Update(ctx context.Context, id int64, patch models.TaskPatch) (task models.Task, err error) {
	if patch.Priority != nil && !patch.Priority.Valid() {
		err = invalid("priority", "must be one of low, medium, high, urgent")
		return
	}
	return s.store.UpdateTask(ctx, id, patch)
}

// ToggleCompletion flips completed. Two concurrent toggles race at the store
// layer; last write wins.
func (s *Service) ToggleCompletion(ctx context.Context, id int64) (task models.Task, err error) {
	if task, err = s.store.TaskByID(ctx, id); err != nil {
		return
	}

	next := !task.Completed
	return s.store.UpdateTask(ctx, id, models.TaskPatch{Completed: &next})
}

func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	return s.store.SoftDeleteTask(ctx, id, time.Now().UTC())
}

func (s *Service) HardDelete(ctx context.Context, id int64) error {
	return s.store.HardDeleteTask(ctx, id)
}

// Restore brings a task back from the trash and returns its current state.
// Restoring a task that was never deleted is a state-wise no-op.
func (s *Service) Restore(ctx context.Context, id int64) (task models.Task, err error) {
	if err = s.store.RestoreTask(ctx, id); err != nil {
		return
	}
	return s.store.TaskByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context, roomID string) ([]models.Task, error) {
	return s.store.ListTasks(ctx, roomID, false)
}

func (s *Service) ListDeleted(ctx context.Context, roomID string) ([]models.Task, error) {
	return s.store.ListDeletedTasks(ctx, roomID)
}
