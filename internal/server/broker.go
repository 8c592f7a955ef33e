package server

import (
	"encoding/json"
	"sync"

	"github.com/huntbase/zonehunt/internal/game"
)

// Event is the payload published to a team's live subscribers. It is
// a best-effort hint to refresh; the store remains the source of
// truth.
type Event struct {
	Type    string `json:"type"`
	Zone    int    `json:"zone,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Message string `json:"message,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by game and
// team.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

func key(gameID string, team game.Team) string {
	return gameID + "/" + string(team)
}

// Subscribe returns a channel receiving JSON-encoded events for a
// team in a game.
func (b *Broker) Subscribe(gameID string, team game.Team) chan []byte {
	ch := make(chan []byte, 16)
	k := key(gameID, team)
	b.mu.Lock()
	if b.subs[k] == nil {
		b.subs[k] = make(map[chan []byte]struct{})
	}
	b.subs[k][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the team's subscribers.
func (b *Broker) Unsubscribe(gameID string, team game.Team, ch chan []byte) {
	k := key(gameID, team)
	b.mu.Lock()
	delete(b.subs[k], ch)
	if len(b.subs[k]) == 0 {
		delete(b.subs, k)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of a team in a game.
func (b *Broker) Publish(gameID string, team game.Team, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[key(gameID, team)] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
