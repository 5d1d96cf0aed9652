package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"volunteer-hub/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	// GetByIDForUpdate reads the request row under a row-level lock so that
	// concurrent accept attempts on the same request serialize against each
	// other. Requests with different ids are never serialized.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Request, error)
	Update(ctx context.Context, req *domain.Request) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.Request, error)
	UpdateStatusTx(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, status domain.RequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.RequestWithResponse, int64, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
	CountByCategory(ctx context.Context) (map[domain.Category]int64, error)
	TopCities(ctx context.Context, limit int) ([]domain.CityCount, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (id, user_id, title, description, category, city, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.Title, req.Description, req.Category, req.City, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT * FROM requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT * FROM requests WHERE id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) Update(ctx context.Context, req *domain.Request) error {
	query := `
		UPDATE requests
		SET title = $2, description = $3, category = $4, city = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.Title, req.Description, req.Category, req.City,
	).Scan(&req.UpdatedAt)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.Request, error) {
	var req domain.Request
	query := `
		UPDATE requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &req, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) UpdateStatusTx(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, status domain.RequestStatus) error {
	query := `UPDATE requests SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := q.ExecContext(ctx, query, id, status)
	return err
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// requestListRow flattens the listing join: request columns plus the owner
// projection and, when a response exists, the accepting volunteer.
type requestListRow struct {
	domain.Request
	OwnerName      string     `db:"owner_name"`
	OwnerEmail     string     `db:"owner_email"`
	OwnerPhone     *string    `db:"owner_phone"`
	VolunteerID    *uuid.UUID `db:"volunteer_id"`
	VolunteerName  *string    `db:"volunteer_name"`
	VolunteerPhone *string    `db:"volunteer_phone"`
	RespondedAt    *time.Time `db:"responded_at"`
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.RequestWithResponse, int64, error) {
	where, args := buildRequestWhere(filter)

	countQuery := `SELECT COUNT(*) FROM requests r` + where
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	orderBy := orderClause(filter)

	query := fmt.Sprintf(`
		SELECT r.*,
			u.name AS owner_name, u.email AS owner_email, u.phone AS owner_phone,
			resp.volunteer_id, v.name AS volunteer_name, v.phone AS volunteer_phone,
			resp.created_at AS responded_at
		FROM requests r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN responses resp ON resp.request_id = r.id
		LEFT JOIN users v ON v.id = resp.volunteer_id
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		where, orderBy, len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset())

	var rows []requestListRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	result := make([]domain.RequestWithResponse, 0, len(rows))
	for _, row := range rows {
		item := domain.RequestWithResponse{
			Request: row.Request,
			Owner: &domain.UserSummary{
				ID:    row.UserID,
				Name:  row.OwnerName,
				Email: &row.OwnerEmail,
				Phone: row.OwnerPhone,
			},
		}
		if row.VolunteerID != nil {
			item.HasResponse = true
			item.Volunteer = &domain.AcceptingVolunteer{
				ID:          *row.VolunteerID,
				Name:        derefString(row.VolunteerName),
				Phone:       row.VolunteerPhone,
				RespondedAt: derefTime(row.RespondedAt),
			}
		}
		result = append(result, item)
	}
	return result, total, nil
}

func buildRequestWhere(filter domain.RequestFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(r.title ILIKE %s OR r.description ILIKE %s)", p, p))
	}
	if len(filter.Category) > 0 {
		cats := make([]string, len(filter.Category))
		for i, c := range filter.Category {
			cats[i] = string(c)
		}
		conds = append(conds, fmt.Sprintf("r.category = ANY(%s)", arg(pq.Array(cats))))
	}
	if filter.City != "" {
		conds = append(conds, fmt.Sprintf("r.city = %s", arg(filter.City)))
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = string(s)
		}
		conds = append(conds, fmt.Sprintf("r.status = ANY(%s)", arg(pq.Array(statuses))))
	}
	if filter.OwnerID != nil {
		conds = append(conds, fmt.Sprintf("r.user_id = %s", arg(*filter.OwnerID)))
	}
	if filter.CreatedAtFrom != nil {
		conds = append(conds, fmt.Sprintf("r.created_at >= %s", arg(*filter.CreatedAtFrom)))
	}
	if filter.CreatedAtTo != nil {
		conds = append(conds, fmt.Sprintf("r.created_at <= %s", arg(*filter.CreatedAtTo)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(filter domain.RequestFilter) string {
	column, ok := domain.RequestSortColumns[filter.SortBy]
	if !ok {
		column = "r.created_at"
	}

	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}
	if filter.SortBy == "" {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

func (r *requestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	rows := []struct {
		Status domain.RequestStatus `db:"status"`
		Count  int64                `db:"count"`
	}{}

	query := `SELECT status, COUNT(*) AS count FROM requests GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[domain.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *requestRepository) CountByCategory(ctx context.Context) (map[domain.Category]int64, error) {
	rows := []struct {
		Category domain.Category `db:"category"`
		Count    int64           `db:"count"`
	}{}

	query := `SELECT category, COUNT(*) AS count FROM requests GROUP BY category`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[domain.Category]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

func (r *requestRepository) TopCities(ctx context.Context, limit int) ([]domain.CityCount, error) {
	if limit <= 0 {
		limit = 5
	}

	var cities []domain.CityCount
	query := `
		SELECT city, COUNT(*) AS count
		FROM requests
		GROUP BY city
		ORDER BY count DESC, city
		LIMIT $1`

	err := r.db.SelectContext(ctx, &cities, query, limit)
	return cities, err
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
