package domain

import (
	"time"

	"github.com/google/uuid"
)

// Response records a volunteer's acceptance of a request. Identity is the
// (request_id, volunteer_id) pair; the store additionally enforces at most
// one live row per request_id.
type Response struct {
	RequestID   uuid.UUID `json:"request_id" db:"request_id"`
	VolunteerID uuid.UUID `json:"volunteer_id" db:"volunteer_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ResponseVolunteer is a response joined with the volunteer projection, as
// returned by the per-request response listing.
type ResponseVolunteer struct {
	RequestID   uuid.UUID `json:"request_id" db:"request_id"`
	VolunteerID uuid.UUID `json:"volunteer_id" db:"volunteer_id"`
	Name        string    `json:"name" db:"name"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"`
	City        *string   `json:"city,omitempty" db:"city"`
	RespondedAt time.Time `json:"responded_at" db:"responded_at"`
}

// AcceptResult is what a successful acceptance returns: the response plus
// minimal request and volunteer projections and a human-readable confirmation.
type AcceptResult struct {
	Response
	Request   RequestSummary `json:"request"`
	Volunteer UserSummary    `json:"volunteer"`
	Message   string         `json:"message"`
}

type RequestSummary struct {
	ID     uuid.UUID     `json:"id" db:"id"`
	Title  string        `json:"title" db:"title"`
	Status RequestStatus `json:"status" db:"status"`
}

// VolunteerResponse is one row of a volunteer's "my responses" listing: the
// response joined with the request and its owner projection.
type VolunteerResponse struct {
	Response
	Request Request      `json:"request"`
	Owner   *UserSummary `json:"user,omitempty"`
}
