package notify

import "encoding/json"

const (
	TypeJoinRequestReceived = "join_request_received"
	TypeJoinRequestAccepted = "join_request_accepted"
)

// Event is the payload pushed to a user's inbox channel.
type Event struct {
	Type      string `json:"type"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name,omitempty"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
}

// Push marshals and broadcasts an event to the given user. A nil hub is a no-op
// so services can run without the notification layer wired.
func (h *Hub) Push(toUserID string, evt Event) {
	if h == nil || toUserID == "" {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(toUserID, payload)
}
