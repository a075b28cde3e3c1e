package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notifier adapts the hub to the recompute pipeline's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

type event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (n *Notifier) NotifyUser(userID uuid.UUID, eventType string, payload any) {
	if n == nil || n.hub == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Deliver(userID, b)
}
