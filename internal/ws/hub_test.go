package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wordle_duel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	redis "github.com/redis/go-redis/v9"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT("ws-test-secret", time.Hour)
	r := gin.New()
	r.GET("/ws", HandleWS(hub, ""))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()
	token, err := service.GenerateJWT(userID)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if env := read(t, conn); env.Type != MsgReady {
		t.Fatalf("first frame = %q; want %q", env.Type, MsgReady)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func waitOnline(t *testing.T, hub *Hub, userID int64, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Online(userID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("Online(%d) = %d; want %d", userID, hub.Online(userID), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTurnEventReachesBothPlayers(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	p1 := dial(t, srv, 1)
	p2 := dial(t, srv, 2)
	outsider := dial(t, srv, 3)

	hub.PublishTurn(context.Background(), service.TurnEvent{
		Event:      service.EventWordChosen,
		GameID:     77,
		Player1ID:  1,
		Player2ID:  2,
		PlayerTurn: 2,
		HasWord:    true,
		TurnNum:    1,
	})

	for _, conn := range []*websocket.Conn{p1, p2} {
		env := read(t, conn)
		if env.Type != MsgTurn {
			t.Fatalf("frame type = %q; want %q", env.Type, MsgTurn)
		}
		var ev service.TurnEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.GameID != 77 || ev.PlayerTurn != 2 || !ev.HasWord {
			t.Fatalf("event = %+v", ev)
		}
	}

	if err := outsider.WriteJSON(Envelope{Type: MsgPing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if env := read(t, outsider); env.Type != MsgPong {
		t.Fatalf("outsider got %q; want only %q", env.Type, MsgPong)
	}
}

func TestUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	conn := dial(t, srv, 5)
	waitOnline(t, hub, 5, 1)
	conn.Close()
	waitOnline(t, hub, 5, 0)

	// publishing to a player with no connections is a no-op
	hub.PublishTurn(context.Background(), service.TurnEvent{GameID: 1, Player1ID: 5, Player2ID: 6})
}

func TestUnknownFrameGetsError(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)
	conn := dial(t, srv, 9)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if env := read(t, conn); env.Type != MsgError {
		t.Fatalf("frame type = %q; want %q", env.Type, MsgError)
	}
}

func TestUnreachableRedisFallsBackToLocalDelivery(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	hub := NewHub(rdb)
	srv := newTestServer(t, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()

	conn := dial(t, srv, 11)
	waitOnline(t, hub, 11, 1)
	if hub.relaying.Load() {
		t.Fatalf("hub reports a live subscription to an unreachable server")
	}

	hub.PublishTurn(context.Background(), service.TurnEvent{
		Event:      service.EventTurnCompleted,
		GameID:     12,
		Player1ID:  11,
		Player2ID:  13,
		PlayerTurn: 11,
		TurnNum:    2,
	})
	env := read(t, conn)
	if env.Type != MsgTurn {
		t.Fatalf("frame type = %q; want %q", env.Type, MsgTurn)
	}
	var ev service.TurnEvent
	if err := json.Unmarshal(env.Data, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.GameID != 12 || ev.Event != service.EventTurnCompleted {
		t.Fatalf("event = %+v", ev)
	}

	// Run keeps retrying and stops cleanly on cancel
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
