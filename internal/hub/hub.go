// Package hub tracks which connections are joined to which room and fans
// broadcast events out to them. Membership lives only in memory: the process
// starts with every room empty and a room's entry is reclaimed the moment its
// last member leaves.
package hub

import (
	"encoding/json"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Hub struct {
	mu sync.Mutex
	// room token -> member name -> live connection
	rooms map[string]map[string]*Client
}

func New() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*Client),
	}
}

// Join registers conn under (roomToken, memberName) and starts its writer.
// A second join with the same name replaces the previous connection
// (last-connect-wins) and closes it.
func (h *Hub) Join(roomToken, memberName string, conn *websocket.Conn) *Client {
	c := newClient(roomToken, memberName, conn)

	h.mu.Lock()
	members, ok := h.rooms[roomToken]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomToken] = members
	}
	prev := members[memberName]
	members[memberName] = c
	h.mu.Unlock()

	if prev != nil {
		zap.L().Debug("replacing member connection",
			zap.String("room", roomToken),
			zap.String("member", memberName),
		)
		prev.shutdown()
	}

	go c.writePump()
	return c
}

// Leave drops the (roomToken, memberName) entry. Unknown rooms and members
// are a no-op; disconnect handling has to be safe to repeat.
func (h *Hub) Leave(roomToken, memberName string) {
	var victim *Client

	h.mu.Lock()
	if members, ok := h.rooms[roomToken]; ok {
		if victim = members[memberName]; victim != nil {
			delete(members, memberName)
		}
		if len(members) == 0 {
			delete(h.rooms, roomToken)
		}
	}
	h.mu.Unlock()

	if victim != nil {
		victim.shutdown()
	}
}

// Disconnect removes c only while it is still the registered handle for its
// (room, member) slot, so the teardown of a replaced connection can never
// evict its successor. Reports whether c was still registered.
func (h *Hub) Disconnect(c *Client) (removed bool) {
	h.mu.Lock()
	if members, ok := h.rooms[c.room]; ok && members[c.name] == c {
		delete(members, c.name)
		removed = true
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	h.mu.Unlock()

	c.shutdown()
	return
}

// MembersOf returns a snapshot of the member names currently connected to
// the room; empty set when the room has no connections.
func (h *Hub) MembersOf(roomToken string) mapset.Set {
	names := mapset.NewSet()

	h.mu.Lock()
	for name := range h.rooms[roomToken] {
		names.Add(name)
	}
	h.mu.Unlock()

	return names
}

// Broadcast delivers event to every connection in the room, best effort.
// Sends are non-blocking handoffs to each client's writer, so one slow or
// dead recipient cannot stall the others or the caller; a room with no
// members is a no-op. Enqueueing happens under the registry lock, which
// gives every member the same per-room event order.
func (h *Hub) Broadcast(roomToken string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to encode broadcast event",
			zap.String("room", roomToken),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	for _, c := range h.rooms[roomToken] {
		c.enqueue(payload)
	}
	h.mu.Unlock()
}

// Rooms reports the current registry contents as room token to member
// names, in no particular order. Debug use only.
func (h *Hub) Rooms() map[string][]string {
	snapshot := make(map[string][]string)

	h.mu.Lock()
	for token, members := range h.rooms {
		names := make([]string, 0, len(members))
		for name := range members {
			names = append(names, name)
		}
		snapshot[token] = names
	}
	h.mu.Unlock()

	return snapshot
}
