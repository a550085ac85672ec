package controllers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/taskroom-project/backend/internal/api"
	"github.com/taskroom-project/backend/internal/database/models"
	"github.com/taskroom-project/backend/internal/hub"
	"github.com/taskroom-project/backend/internal/router"
	"github.com/taskroom-project/backend/internal/store"
)

var _ router.Controller = (*SocketController)(nil)

var wsPool = new(sync.Pool)

// SocketController upgrades room connections and ties their lifetime to the
// hub: join on open, relay text frames as message events, evict on drop.
type SocketController struct {
	Store *store.Store
	Hub   *hub.Hub

	upgrader *websocket.Upgrader
}

func (c *SocketController) Register(router *mux.Router) {
	c.upgrader = &websocket.Upgrader{
		HandshakeTimeout:  10 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		WriteBufferPool:   wsPool,
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			// TODO: need allowed domains from the configuration
			return true
		},
	}

	router.HandleFunc("/ws/{token}/{user}", c.handleSocket).Methods(http.MethodGet)
}

func (c *SocketController) handleSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]
	user := vars["user"]

	// Resolve the room before upgrading; an unknown token gets a plain 404.
	room, err := c.Store.RoomByToken(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	} else if err != nil {
		translateError(w, err)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := c.Hub.Join(token, user, conn)
	zap.L().Info("member joined",
		zap.String("room", token),
		zap.String("member", user),
	)

	c.Hub.Broadcast(token, api.NewUserJoinedEvent(user))
	c.syncRoomMembers(r.Context(), room)

	client.ReadLoop(func(content string) {
		c.Hub.Broadcast(token, api.NewMessageEvent(user, content))
	})

	// Identity-based eviction: if this connection was replaced by a newer
	// join under the same name, the member has not actually left.
	if c.Hub.Disconnect(client) {
		zap.L().Info("member left",
			zap.String("room", token),
			zap.String("member", user),
		)
		c.Hub.Broadcast(token, api.NewUserLeftEvent(user))
		// The request context may be going away with the connection.
		c.syncRoomMembers(context.Background(), room)
	}
}

// syncRoomMembers writes the registry's current member snapshot into the
// room row, sorted so the cached view is stable.
func (c *SocketController) syncRoomMembers(ctx context.Context, room models.Room) {
	names := make([]string, 0)
	for _, v := range c.Hub.MembersOf(room.Token).ToSlice() {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if err := c.Store.SetRoomMembers(ctx, room.ID, names); err != nil {
		zap.L().Error("failed to persist room members",
			zap.String("room", room.Token),
			zap.Error(err),
		)
	}
}
