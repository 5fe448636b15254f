package db

import "time"

type Status struct {
	Built                 time.Time
	Records               int
	CurrentSchemaVersion  int
	RequiredSchemaVersion int
	Location              string
	Err                   error
}
