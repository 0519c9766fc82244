package db

import (
	"database/sql"
)

// Database abstracts the lifecycle of the metadata store connection.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
