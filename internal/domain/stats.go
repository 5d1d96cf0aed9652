package domain

type CityCount struct {
	City  string `json:"city" db:"city"`
	Count int64  `json:"count" db:"count"`
}

// PlatformStats is the cached dashboard aggregate.
type PlatformStats struct {
	TotalRequests  int64                   `json:"total_requests"`
	ByStatus       map[RequestStatus]int64 `json:"by_status"`
	ByCategory     map[Category]int64      `json:"by_category"`
	TopCities      []CityCount             `json:"top_cities"`
	ActiveRequests int64                   `json:"active_requests"`
}
