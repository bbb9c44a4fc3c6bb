package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"wordle_duel/internal/logger"
	"wordle_duel/internal/service"

	redis "github.com/redis/go-redis/v9"
)

// Hub tracks connected clients per player and pushes turn events to them.
// With a Redis client events fan out through TurnChannel so every instance
// delivers to its own connections; without one delivery is local.
// Events only go through Redis while Run holds a live subscription.
type Hub struct {
	mu       sync.RWMutex
	clients  map[int64]map[*Client]struct{}
	rdb      *redis.Client
	relaying atomic.Bool
}

const (
	resubscribeMin = 500 * time.Millisecond
	resubscribeMax = 30 * time.Second
)

var errChannelClosed = errors.New("turn channel subscription closed")

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
		rdb:     rdb,
	}
}

var _ service.TurnNotifier = (*Hub)(nil)

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

// Unregister drops c and closes its send queue. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// Online reports how many connections userID has on this instance.
func (h *Hub) Online(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// PublishTurn implements service.TurnNotifier.
func (h *Hub) PublishTurn(ctx context.Context, ev service.TurnEvent) {
	if h.rdb != nil && h.relaying.Load() {
		payload, err := json.Marshal(ev)
		if err == nil {
			err = h.rdb.Publish(ctx, TurnChannel, payload).Err()
		}
		if err == nil {
			return
		}
		logger.WithContext(ctx).Warn("turn event publish failed, delivering locally", "game_id", ev.GameID, "error", err)
	}
	h.deliver(ev)
}

// deliver queues ev for both players' local connections. Full queues drop the frame;
// clients recover through the status endpoint.
func (h *Hub) deliver(ev service.TurnEvent) {
	msg, err := encode(MsgTurn, ev)
	if err != nil {
		logger.Error("turn event encode failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, uid := range []int64{ev.Player1ID, ev.Player2ID} {
		for c := range h.clients[uid] {
			select {
			case c.Send <- msg:
			default:
				logger.Warn("ws send queue full, dropping turn event", "user_id", uid, "conn_id", c.ID, "game_id", ev.GameID)
			}
		}
	}
}

// Run relays events from Redis to local clients until ctx is done,
// resubscribing with backoff when the subscription fails or drops.
// Without Redis it just waits for ctx.
func (h *Hub) Run(ctx context.Context) error {
	if h.rdb == nil {
		<-ctx.Done()
		return nil
	}

	wait := resubscribeMin
	for {
		subscribed, err := h.relay(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if subscribed {
			wait = resubscribeMin
		}
		logger.Warn("ws hub subscription lost, delivering locally", "channel", TurnChannel, "error", err, "retry_in", wait)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
		wait = min(wait*2, resubscribeMax)
	}
}

// relay holds one subscription and forwards its events. subscribed reports whether
// the subscription was confirmed before it ended.
func (h *Hub) relay(ctx context.Context) (subscribed bool, err error) {
	sub := h.rdb.Subscribe(ctx, TurnChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return false, err
	}
	h.relaying.Store(true)
	defer h.relaying.Store(false)
	logger.Info("ws hub subscribed", "channel", TurnChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return true, errChannelClosed
			}
			var ev service.TurnEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				logger.Warn("bad turn event on channel", "error", err)
				continue
			}
			h.deliver(ev)
		}
	}
}
