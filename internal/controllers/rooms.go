package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/taskroom-project/backend/internal/api"
	"github.com/taskroom-project/backend/internal/router"
	"github.com/taskroom-project/backend/internal/store"
)

var _ router.Controller = (*RoomController)(nil)

type RoomController struct {
	Store *store.Store
}

func (c *RoomController) Register(router *mux.Router) {
	router.HandleFunc("/rooms/create", c.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/rooms/{token}", c.handleGet).Methods(http.MethodGet)
}

func (c *RoomController) handleCreate(w http.ResponseWriter, r *http.Request) {
	token, err := newRoomToken()
	if err != nil {
		translateError(w, err)
		return
	}

	room, err := c.Store.CreateRoom(r.Context(), token)
	if err != nil {
		translateError(w, err)
		return
	}

	zap.L().Info("room created", zap.String("token", room.Token))
	writeJSON(w, http.StatusOK, api.RoomFromModel(room))
}

func (c *RoomController) handleGet(w http.ResponseWriter, r *http.Request) {
	room, err := c.Store.RoomByToken(r.Context(), mux.Vars(r)["token"])
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	} else if err != nil {
		translateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.RoomFromModel(room))
}

// newRoomToken produces a short URL-safe token; uniqueness is backed by the
// constraint on rooms.token rather than the token length.
func newRoomToken() (token string, err error) {
	raw := make([]byte, 6)
	if _, err = rand.Read(raw); err != nil {
		return
	}

	token = base64.RawURLEncoding.EncodeToString(raw)
	return
}
