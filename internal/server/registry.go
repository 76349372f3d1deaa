package server

import (
	"fmt"

	"github.com/google/uuid"
)

// Registry binds transport connections to stable player identities.
// Connection ids are opaque uuids; player ids are the sequential player_N
// names the wire format uses. Only the actor goroutine touches a Registry,
// so it carries no lock.
type Registry struct {
	nextPlayer int
	players    map[string]string // conn id -> player id
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[string]string)}
}

// Register allocates a fresh connection id, player id and display name.
func (r *Registry) Register() (connID, playerID, name string) {
	connID = uuid.NewString()
	playerID = fmt.Sprintf("player_%d", r.nextPlayer)
	name = fmt.Sprintf("Player %d", r.nextPlayer)
	r.nextPlayer++
	r.players[connID] = playerID
	return connID, playerID, name
}

// Unregister removes the binding and returns the player id it held.
func (r *Registry) Unregister(connID string) (string, bool) {
	playerID, ok := r.players[connID]
	if ok {
		delete(r.players, connID)
	}
	return playerID, ok
}

// Count returns the number of live bindings.
func (r *Registry) Count() int {
	return len(r.players)
}
