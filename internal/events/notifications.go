package events

import "time"

// Event types carried on the bus. Downstream services (mailer, mobile push)
// consume these to tell users about their account state.
const (
	EventUserRegistered = "user.registered"
	EventUserApproved   = "user.approved"
	EventUserRejected   = "user.rejected"
)

type UserRegisteredEvent struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	SchoolID     *string   `json:"school_id,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

type UserApprovedEvent struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

type UserRejectedEvent struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	RejectedBy string    `json:"rejected_by"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}
