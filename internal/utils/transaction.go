package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"voyago/internal/interfaces"
	"voyago/internal/schemas"
)

// BeginTransaction begins a new database transaction scoped to the request.
// If the transaction fails to begin, it writes an error response and returns
// nil; the handler must bail out in that case.
func BeginTransaction(c *gin.Context, pool interfaces.PgxPoolIface) pgx.Tx {
	LogMessageWithFields(c, "debug", "Beginning transaction")

	tx, err := pool.Begin(c)
	if err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return nil
	}

	return tx
}

// RollbackTransaction rolls the transaction back when the handler exited with
// an error. Rolling back an already-committed transaction is a no-op.
func RollbackTransaction(c *gin.Context, tx pgx.Tx, err error) {
	if err == nil {
		return
	}

	LogMessageWithFieldsAndError(c, "debug", "Rolling back transaction", err)
	if rbErr := tx.Rollback(c); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		LogMessageWithFieldsAndError(c, "error", "Error rolling back transaction", rbErr)
	}
}

// CommitTransaction commits the transaction, writing an error response if the
// commit fails.
func CommitTransaction(c *gin.Context, tx pgx.Tx) error {
	LogMessageWithFields(c, "debug", "Committing transaction")

	if err := tx.Commit(c); err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}

	return nil
}
