package db

import (
	"fmt"
	"time"
)

const (
	// SchemaVersion is the version of the knowledge base tables written and understood by this package
	SchemaVersion = 1
	// FileName is the name of the knowledge base file within the database directory
	FileName = "cpematch.db"
)

// ID describes one generation of the knowledge base.
type ID struct {
	BuildTimestamp time.Time
	SchemaVersion  int
	Records        int
}

func (id ID) String() string {
	return fmt.Sprintf("ID(built=%s schema=%d records=%d)", id.BuildTimestamp.Format(time.RFC3339), id.SchemaVersion, id.Records)
}
