package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordle_duel/internal/service"
	"wordle_duel/internal/ws"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

// turn_watch connects to the push channel as a player and prints every turn event.
// It mints its own token when JWT_SECRET is available, so it can watch any player in dev.
func main() {
	addr := flag.String("addr", "localhost:8080", "server host:port")
	userID := flag.Int64("user", 0, "player id to watch as (needs JWT_SECRET)")
	token := flag.String("token", os.Getenv("TOKEN"), "bearer token (overrides -user)")
	flag.Parse()

	_ = godotenv.Load()
	if *token == "" {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" || *userID <= 0 {
			log.Fatal("either -token/TOKEN or -user with JWT_SECRET is required")
		}
		service.InitJWT(secret, time.Hour)
		t, err := service.GenerateJWT(*userID)
		if err != nil {
			log.Fatalf("generate token: %v", err)
		}
		*token = t
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws", RawQuery: "token=" + url.QueryEscape(*token)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backoff := time.Second
	for ctx.Err() == nil {
		err := watch(ctx, u.String())
		if ctx.Err() != nil {
			return
		}
		log.Printf("disconnected: %v; retrying in %s", err, backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}
}

func watch(ctx context.Context, wsURL string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		var env ws.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		switch env.Type {
		case ws.MsgReady:
			var p ws.ReadyPayload
			_ = json.Unmarshal(env.Data, &p)
			log.Printf("connected as player %d (conn %s)", p.UserID, p.ConnID)
		case ws.MsgTurn:
			var ev service.TurnEvent
			if err := json.Unmarshal(env.Data, &ev); err != nil {
				log.Printf("bad turn event: %v", err)
				continue
			}
			printEvent(ev)
		default:
			fmt.Printf("%s %s\n", env.Type, string(env.Data))
		}
	}
}

func printEvent(ev service.TurnEvent) {
	line := fmt.Sprintf("%s game=%d turn=%d player_turn=%d has_word=%t completed=%t",
		ev.Event, ev.GameID, ev.TurnNum, ev.PlayerTurn, ev.HasWord, ev.TurnCompleted)
	if ev.AttemptNum > 0 {
		line += fmt.Sprintf(" attempt=%d", ev.AttemptNum)
	}
	if ev.NewGameID != nil {
		line += fmt.Sprintf(" next_game=%d", *ev.NewGameID)
	}
	fmt.Println(time.Now().Format(time.TimeOnly), line)
}
