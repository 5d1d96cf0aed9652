package unit_test

import (
	"testing"

	"volunteer-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanModifyRequest(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name   string
		caller domain.Identity
		want   bool
	}{
		{"Owner", domain.Identity{ID: ownerID, Role: domain.RoleUser}, true},
		{"Admin", domain.Identity{ID: uuid.New(), Role: domain.RoleAdmin}, true},
		{"Other User", domain.Identity{ID: uuid.New(), Role: domain.RoleUser}, false},
		{"Volunteer", domain.Identity{ID: uuid.New(), Role: domain.RoleVolunteer}, false},
		{"Owner Who Is Also Volunteer", domain.Identity{ID: ownerID, Role: domain.RoleVolunteer}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanModifyRequest(tt.caller, ownerID))
		})
	}
}

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        domain.PaginationParams
		wantPage  int
		wantLimit int
	}{
		{"Defaults", domain.PaginationParams{}, 1, 20},
		{"Negative Page", domain.PaginationParams{Page: -3, Limit: 10}, 1, 10},
		{"Limit Capped", domain.PaginationParams{Page: 2, Limit: 500}, 2, 100},
		{"Kept As Is", domain.PaginationParams{Page: 4, Limit: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate(20)
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	p := domain.PaginationParams{Page: 3, Limit: 25}
	assert.Equal(t, 50, p.Offset())
}

func TestNewPage(t *testing.T) {
	params := domain.PaginationParams{Page: 2, Limit: 10}
	page := domain.NewPage([]int{1, 2, 3}, params, 23)

	assert.Equal(t, int64(23), page.Meta.TotalItems)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 10, page.Meta.ItemsPerPage)
	assert.Len(t, page.Data, 3)
}

func TestRequestStatus_IsValid(t *testing.T) {
	for _, status := range []domain.RequestStatus{
		domain.StatusActive, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled,
	} {
		assert.True(t, status.IsValid(), "status %s", status)
	}
	assert.False(t, domain.RequestStatus("PAUSED").IsValid())
	assert.False(t, domain.RequestStatus("").IsValid())
}

func TestCategory_IsValid(t *testing.T) {
	for _, category := range []domain.Category{
		domain.CategoryMedical, domain.CategoryFood, domain.CategoryTransport,
		domain.CategoryClothing, domain.CategoryShelter, domain.CategoryOther,
	} {
		assert.True(t, category.IsValid(), "category %s", category)
	}
	assert.False(t, domain.Category("GADGETS").IsValid())
}

func TestRequestSortColumns(t *testing.T) {
	// Only whitelisted names may reach the ORDER BY clause.
	assert.Contains(t, domain.RequestSortColumns, "createdAt")
	assert.Contains(t, domain.RequestSortColumns, "title")
	assert.NotContains(t, domain.RequestSortColumns, "password_hash")
	assert.NotContains(t, domain.RequestSortColumns, "1; DROP TABLE requests")
}
