package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-hub/internal/domain"
)

type ResponseRepository interface {
	GetByKey(ctx context.Context, requestID, volunteerID uuid.UUID) (*domain.Response, error)
	GetByKeyTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) (*domain.Response, error)
	CountByRequestTx(ctx context.Context, q sqlx.ExtContext, requestID uuid.UUID) (int64, error)
	CreateTx(ctx context.Context, q sqlx.ExtContext, resp *domain.Response) error
	DeleteTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) error
	ListByRequest(ctx context.Context, requestID uuid.UUID, params domain.PaginationParams) ([]domain.ResponseVolunteer, int64, error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, params domain.PaginationParams) ([]domain.VolunteerResponse, int64, error)
}

type responseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) GetByKey(ctx context.Context, requestID, volunteerID uuid.UUID) (*domain.Response, error) {
	return r.GetByKeyTx(ctx, r.db, requestID, volunteerID)
}

func (r *responseRepository) GetByKeyTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) (*domain.Response, error) {
	var resp domain.Response
	query := `SELECT * FROM responses WHERE request_id = $1 AND volunteer_id = $2`

	err := sqlx.GetContext(ctx, q, &resp, query, requestID, volunteerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) CountByRequestTx(ctx context.Context, q sqlx.ExtContext, requestID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM responses WHERE request_id = $1`
	err := sqlx.GetContext(ctx, q, &count, query, requestID)
	return count, err
}

func (r *responseRepository) CreateTx(ctx context.Context, q sqlx.ExtContext, resp *domain.Response) error {
	query := `
		INSERT INTO responses (request_id, volunteer_id)
		VALUES ($1, $2)
		RETURNING created_at`

	return q.QueryRowxContext(ctx, query, resp.RequestID, resp.VolunteerID).Scan(&resp.CreatedAt)
}

func (r *responseRepository) DeleteTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) error {
	query := `DELETE FROM responses WHERE request_id = $1 AND volunteer_id = $2`
	_, err := q.ExecContext(ctx, query, requestID, volunteerID)
	return err
}

func (r *responseRepository) ListByRequest(ctx context.Context, requestID uuid.UUID, params domain.PaginationParams) ([]domain.ResponseVolunteer, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM responses WHERE request_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, requestID); err != nil {
		return nil, 0, err
	}

	var responses []domain.ResponseVolunteer
	query := `
		SELECT resp.request_id, resp.volunteer_id, resp.created_at AS responded_at,
			v.name, v.phone, v.email, v.city
		FROM responses resp
		JOIN users v ON v.id = resp.volunteer_id
		WHERE resp.request_id = $1
		ORDER BY resp.created_at ASC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &responses, query, requestID, params.Limit, params.Offset())
	return responses, total, err
}

// volunteerResponseRow flattens the "my responses" join: the response, the
// request it belongs to and the request owner projection.
type volunteerResponseRow struct {
	RequestID   uuid.UUID    `db:"request_id"`
	VolunteerID uuid.UUID    `db:"volunteer_id"`
	RespondedAt sql.NullTime `db:"responded_at"`

	ReqID          uuid.UUID            `db:"req_id"`
	ReqUserID      uuid.UUID            `db:"req_user_id"`
	ReqTitle       string               `db:"req_title"`
	ReqDescription string               `db:"req_description"`
	ReqCategory    domain.Category      `db:"req_category"`
	ReqCity        string               `db:"req_city"`
	ReqStatus      domain.RequestStatus `db:"req_status"`
	ReqCreatedAt   sql.NullTime         `db:"req_created_at"`
	ReqUpdatedAt   sql.NullTime         `db:"req_updated_at"`

	OwnerName  string  `db:"owner_name"`
	OwnerPhone *string `db:"owner_phone"`
}

func (r *responseRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, params domain.PaginationParams) ([]domain.VolunteerResponse, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM responses WHERE volunteer_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, volunteerID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT resp.request_id, resp.volunteer_id, resp.created_at AS responded_at,
			r.id AS req_id, r.user_id AS req_user_id, r.title AS req_title,
			r.description AS req_description, r.category AS req_category,
			r.city AS req_city, r.status AS req_status,
			r.created_at AS req_created_at, r.updated_at AS req_updated_at,
			u.name AS owner_name, u.phone AS owner_phone
		FROM responses resp
		JOIN requests r ON r.id = resp.request_id
		JOIN users u ON u.id = r.user_id
		WHERE resp.volunteer_id = $1
		ORDER BY resp.created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []volunteerResponseRow
	if err := r.db.SelectContext(ctx, &rows, query, volunteerID, params.Limit, params.Offset()); err != nil {
		return nil, 0, err
	}

	result := make([]domain.VolunteerResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.VolunteerResponse{
			Response: domain.Response{
				RequestID:   row.RequestID,
				VolunteerID: row.VolunteerID,
				CreatedAt:   row.RespondedAt.Time,
			},
			Request: domain.Request{
				ID:          row.ReqID,
				UserID:      row.ReqUserID,
				Title:       row.ReqTitle,
				Description: row.ReqDescription,
				Category:    row.ReqCategory,
				City:        row.ReqCity,
				Status:      row.ReqStatus,
				CreatedAt:   row.ReqCreatedAt.Time,
				UpdatedAt:   row.ReqUpdatedAt.Time,
			},
			Owner: &domain.UserSummary{
				ID:    row.ReqUserID,
				Name:  row.OwnerName,
				Phone: row.OwnerPhone,
			},
		})
	}
	return result, total, nil
}
