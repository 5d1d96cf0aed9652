package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Request    RequestRepository
	Response   ResponseRepository
	Attachment AttachmentRepository

	db *sqlx.DB
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Request:    NewRequestRepository(db),
		Response:   NewResponseRepository(db),
		Attachment: NewAttachmentRepository(db),
		db:         db,
	}
}

// TxRunner is the scoped-acquisition transaction handle the services depend
// on. Repositories implements it against the live database; tests substitute
// their own runner.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// WithinTx runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back on any error, so no partial state ever
// survives a failed call. Repository methods that participate take the
// handle explicitly via sqlx.ExtContext.
func (r *Repositories) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The response table's uniqueness constraint is the store-level
// authority for the one-responder rule; a second concurrent insert loses
// here and the engine maps the loss to a conflict.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
