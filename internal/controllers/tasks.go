package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskroom-project/backend/internal/api"
	"github.com/taskroom-project/backend/internal/database/models"
	"github.com/taskroom-project/backend/internal/hub"
	"github.com/taskroom-project/backend/internal/router"
	"github.com/taskroom-project/backend/internal/store"
	"github.com/taskroom-project/backend/internal/tasks"
)

var _ router.Controller = (*TaskController)(nil)

// TaskController serves the task CRUD endpoints. Every successful mutation
// broadcasts exactly one event to the task's room, after the durable write.
type TaskController struct {
	Tasks *tasks.Service
	Hub   *hub.Hub
}

func (c *TaskController) Register(router *mux.Router) {
	router.HandleFunc("/rooms/{room}/tasks", c.handleList).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{room}/trash", c.handleTrash).Methods(http.MethodGet)
	router.HandleFunc("/tasks", c.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id:[0-9]+}", c.handleUpdate).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id:[0-9]+}", c.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id:[0-9]+}/toggle", c.handleToggle).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id:[0-9]+}/restore", c.handleRestore).Methods(http.MethodPost)
}

func (c *TaskController) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := c.Tasks.ListActive(r.Context(), mux.Vars(r)["room"])
	if err != nil {
		translateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasksToWire(list))
}

func (c *TaskController) handleTrash(w http.ResponseWriter, r *http.Request) {
	list, err := c.Tasks.ListDeleted(r.Context(), mux.Vars(r)["room"])
	if err != nil {
		translateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasksToWire(list))
}

func (c *TaskController) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input api.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}

	task, err := c.Tasks.Create(r.Context(), tasks.CreateInput{
		Text:        input.Text,
		Creator:     input.Creator,
		RoomID:      input.RoomID,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
		Description: input.Description,
	})
	if err != nil {
		translateError(w, err)
		return
	}

	wire := api.TaskFromModel(task)
	c.Hub.Broadcast(task.RoomID, api.NewTaskCreatedEvent(wire))
	writeJSON(w, http.StatusOK, wire)
}

func (c *TaskController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	var input api.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}

	task, err := c.Tasks.Update(r.Context(), id, input.Patch())
	if err != nil {
		translateError(w, err)
		return
	}

	wire := api.TaskFromModel(task)
	c.Hub.Broadcast(task.RoomID, api.NewTaskUpdatedEvent(wire))
	writeJSON(w, http.StatusOK, wire)
}

func (c *TaskController) handleToggle(w http.ResponseWriter, r *http.Request) {
	task, err := c.Tasks.ToggleCompletion(r.Context(), taskID(r))
	if err != nil {
		translateError(w, err)
		return
	}

	wire := api.TaskFromModel(task)
	c.Hub.Broadcast(task.RoomID, api.NewTaskUpdatedEvent(wire))
	writeJSON(w, http.StatusOK, wire)
}

func (c *TaskController) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	permanent, _ := strconv.ParseBool(r.URL.Query().Get("permanent"))

	// The room token has to be read before a hard delete removes the row.
	task, err := c.Tasks.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		// Already gone; deleting is idempotent and nothing is broadcast.
		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
		return
	} else if err != nil {
		translateError(w, err)
		return
	}

	if permanent {
		err = c.Tasks.HardDelete(r.Context(), id)
	} else {
		err = c.Tasks.SoftDelete(r.Context(), id)
	}
	if err != nil {
		translateError(w, err)
		return
	}

	c.Hub.Broadcast(task.RoomID, api.NewTaskDeletedEvent(id, permanent))
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

func (c *TaskController) handleRestore(w http.ResponseWriter, r *http.Request) {
	task, err := c.Tasks.Restore(r.Context(), taskID(r))
	if err != nil {
		translateError(w, err)
		return
	}

	c.Hub.Broadcast(task.RoomID, api.NewTaskRestoredEvent(api.TaskFromModel(task)))
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// taskID relies on the route pattern having already constrained {id} to digits.
func taskID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func tasksToWire(list []models.Task) []api.Task {
	wire := make([]api.Task, 0, len(list))
	for _, task := range list {
		wire = append(wire, api.TaskFromModel(task))
	}
	return wire
}
