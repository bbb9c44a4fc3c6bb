package ws

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgReady = "ready"
	MsgPong  = "pong"
	MsgTurn  = "turn"
	MsgError = "error"
)

// TurnChannel is the Redis pub/sub channel turn events travel on between instances.
const TurnChannel = "wordle:turn_events"
