package domain

import (
	"time"

	"github.com/google/uuid"
)

type Request struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Category    Category      `json:"category" db:"category"`
	City        string        `json:"city" db:"city"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

type RequestStatus string

const (
	StatusActive     RequestStatus = "ACTIVE"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryMedical   Category = "MEDICAL"
	CategoryFood      Category = "FOOD"
	CategoryTransport Category = "TRANSPORT"
	CategoryClothing  Category = "CLOTHING"
	CategoryShelter   Category = "SHELTER"
	CategoryOther     Category = "OTHER"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryMedical, CategoryFood, CategoryTransport, CategoryClothing, CategoryShelter, CategoryOther:
		return true
	default:
		return false
	}
}

type CreateRequestInput struct {
	Title       string   `json:"title" validate:"required,min=5,max=100"`
	Description string   `json:"description" validate:"required,min=20,max=1000"`
	Category    Category `json:"category" validate:"required"`
	City        string   `json:"city" validate:"required"`
}

type UpdateRequestInput struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=5,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=20,max=1000"`
	Category    *Category `json:"category,omitempty"`
	City        *string   `json:"city,omitempty"`
}

type UpdateRequestStatusInput struct {
	Status RequestStatus `json:"status" validate:"required"`
}

// RequestFilter collects the query parameters of the request listing. Zero
// values mean "no constraint"; slices are set membership.
type RequestFilter struct {
	Search        string          `query:"search"`
	Category      []Category      `query:"category"`
	City          string          `query:"city"`
	Status        []RequestStatus `query:"status"`
	OwnerID       *uuid.UUID      `query:"-"`
	CreatedAtFrom *time.Time      `query:"-"`
	CreatedAtTo   *time.Time      `query:"-"`
	SortBy        string          `query:"sort_by"`
	Order         string          `query:"order"`
}

// RequestSortColumns maps accepted sort_by values to their SQL columns.
// Anything else falls back to the created_at default.
var RequestSortColumns = map[string]string{
	"createdAt": "r.created_at",
	"title":     "r.title",
	"category":  "r.category",
	"city":      "r.city",
	"status":    "r.status",
}

// RequestWithResponse is one row of the request listing: the request, its
// owner projection and, when accepted, the accepting volunteer.
type RequestWithResponse struct {
	Request
	Owner       *UserSummary         `json:"user,omitempty"`
	HasResponse bool                 `json:"has_response"`
	Volunteer   *AcceptingVolunteer  `json:"volunteer,omitempty"`
}

// AcceptingVolunteer is the volunteer projection on an accepted request.
type AcceptingVolunteer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone,omitempty"`
	RespondedAt time.Time `json:"responded_at"`
}

// RequestDetail is the single-request view with the full response picture.
type RequestDetail struct {
	Request
	Owner         *UserSummary        `json:"user,omitempty"`
	ResponseCount int                 `json:"response_count"`
	Volunteers    []ResponseVolunteer `json:"volunteers"`
}

// CanModifyRequest is the authorization guard for direct owner/admin edits:
// a pure function of the caller identity and the resource owner.
func CanModifyRequest(caller Identity, ownerID uuid.UUID) bool {
	if caller.Role == RoleAdmin {
		return true
	}
	return caller.ID == ownerID
}
