package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxRunner runs the callback directly, without a real transaction. The
// callback receives a nil *sqlx.Tx; repository mocks accept it because they
// never touch the handle.
type TxRunner struct {
	// Err, when set, is returned before the callback runs.
	Err error
}

func (t *TxRunner) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if t.Err != nil {
		return t.Err
	}
	return fn(nil)
}
