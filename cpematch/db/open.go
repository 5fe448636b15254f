package db

import (
	"fmt"
	"os"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // provide the sqlite dialect to gorm via import

	"github.com/anchore/cpematch/internal/log"
)

var connectStatements = []string{
	// the file is written once and only swapped in after it is complete, so durability of partial writes does not matter
	`PRAGMA synchronous = OFF`,
	`PRAGMA journal_mode = MEMORY`,
}

// config defines the information needed to connect and create a sqlite3 database
type config struct {
	dbPath    string
	overwrite bool
}

// ConnectionString creates a connection string for sqlite3
func (o config) ConnectionString() (string, error) {
	if o.dbPath == "" {
		return "", fmt.Errorf("no db filepath given")
	}
	return fmt.Sprintf("file:%s?cache=shared", o.dbPath), nil
}

// open a new connection to a sqlite3 database file
func open(cfg config) (*gorm.DB, error) {
	if cfg.overwrite {
		// the file may or may not exist, so we ignore the error explicitly
		_ = os.Remove(cfg.dbPath)
	}

	connStr, err := cfg.ConnectionString()
	if err != nil {
		return nil, err
	}

	dbObj, err := gorm.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to DB: %w", err)
	}

	dbObj.SetLogger(&logAdapter{})

	for _, sqlStmt := range connectStatements {
		dbObj.Exec(sqlStmt)
		if dbObj.Error != nil {
			return nil, fmt.Errorf("unable to execute (%s): %w", sqlStmt, dbObj.Error)
		}
	}
	return dbObj, nil
}

type logAdapter struct{}

func (l *logAdapter) Print(v ...interface{}) {
	log.Debug(append([]interface{}{"gorm:"}, v...)...)
}
