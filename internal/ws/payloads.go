package ws

import "encoding/json"

// Envelope wraps every frame in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ReadyPayload struct {
	ConnID string `json:"conn_id"`
	UserID int64  `json:"user_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func encode(msgType string, data any) ([]byte, error) {
	env := Envelope{Type: msgType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
