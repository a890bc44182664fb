package joinrequest

import "time"

// JoinRequest is a pending ask from a user to participate in an event.
// RequestedAt is epoch milliseconds, normalized at the storage-read boundary.
type JoinRequest struct {
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	RequestedAt int64  `json:"requested_at"`
}

// Membership is the durable record of an accepted participation.
type Membership struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

const unknownUserName = "Unknown User"
