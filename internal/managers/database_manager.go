// Package managers wires the application's external collaborators (database,
// JWT signing, mail delivery, places provider) behind small interfaces so
// handlers stay testable.
package managers

import (
	log "github.com/sirupsen/logrus"

	"voyago/internal/interfaces"
)

// DatabaseMgr provides access to the database connection pool.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
}

// DatabaseManager holds the connection pool for the lifetime of the process.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// NewDatabaseManager creates a new DatabaseManager around the given pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
