package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/cpematch/cpematch/event"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/search"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/cpematch/vulnerability"
	"github.com/anchore/cpematch/internal/bus"
	"github.com/anchore/cpematch/internal/log"
)

type Config struct {
	DBDir string
}

// Curator owns the knowledge base file and publishes a new store snapshot every time the knowledge base is loaded or
// replaced. Imports are serialized; readers of the store are never blocked by them.
type Curator struct {
	fs     afero.Fs
	config Config
	store  *store.Store
	lock   sync.Mutex
}

func NewCurator(cfg Config, s *store.Store) *Curator {
	return &Curator{
		fs:     afero.NewOsFs(),
		config: cfg,
		store:  s,
	}
}

func (c *Curator) Store() *store.Store {
	return c.store
}

func (c *Curator) path() string {
	return filepath.Join(c.config.DBDir, FileName)
}

// Load publishes the knowledge base already present in the database directory.
func (c *Curator) Load() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.Validate(); err != nil {
		return err
	}
	_, err := c.activate()
	return err
}

// Validate checks the knowledge base file exists and can be used by this version of the application.
func (c *Curator) Validate() error {
	exists, err := afero.Exists(c.fs, c.path())
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q does not exist (run db import)", matcherr.ErrNoKnowledgeBase, c.path())
	}

	id, err := readID(c.path())
	if err != nil {
		return err
	}
	if id == nil {
		return fmt.Errorf("knowledge base at %q has no ID", c.path())
	}
	if id.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported knowledge base schema (%d), this version requires %d (run db import)", id.SchemaVersion, SchemaVersion)
	}
	return nil
}

func (c *Curator) Status() Status {
	id, err := readID(c.path())
	if err == nil {
		err = c.Validate()
	}

	var s Status
	if id != nil {
		s = Status{
			Built:                id.BuildTimestamp,
			Records:              id.Records,
			CurrentSchemaVersion: id.SchemaVersion,
		}
	}
	s.RequiredSchemaVersion = SchemaVersion
	s.Location = c.config.DBDir
	s.Err = err
	return s
}

func (c *Curator) Delete() error {
	return c.fs.RemoveAll(c.config.DBDir)
}

// ImportFrom imports the records file at the given path. Invalid records are skipped: when the import succeeds
// despite them, the ID is returned along with an error describing every skipped record.
func (c *Curator) ImportFrom(path string) (*ID, error) {
	records, readErr := ReadRecords(c.fs, path)
	if records == nil && readErr != nil {
		return nil, readErr
	}

	id, err := c.Import(records)
	if err != nil {
		return nil, err
	}
	return id, readErr
}

// Import replaces the knowledge base with the given records. The new file is written aside and only moved into place
// once complete, after which a new snapshot (records plus search index) is published.
func (c *Curator) Import(records []vulnerability.VulnerableSoftware) (*ID, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.fs.MkdirAll(c.config.DBDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create db dir: %w", err)
	}

	scratch := filepath.Join(c.config.DBDir, fmt.Sprintf(".%s-%s", FileName, uuid.New().String()))
	id := ID{
		BuildTimestamp: time.Now().UTC(),
		SchemaVersion:  SchemaVersion,
		Records:        len(records),
	}
	if err := write(scratch, id, records); err != nil {
		// the file may not exist, so we ignore the error explicitly
		_ = c.fs.Remove(scratch)
		return nil, err
	}

	if err := c.fs.Rename(scratch, c.path()); err != nil {
		return nil, fmt.Errorf("unable to activate knowledge base: %w", err)
	}

	return c.activate()
}

func write(path string, id ID, records []vulnerability.VulnerableSoftware) error {
	w, err := NewWriter(path, true)
	if err != nil {
		return err
	}

	if err := w.SetID(id); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.AddVulnerableSoftware(records...); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// activate opens the knowledge base file, indexes it and publishes the result.
func (c *Curator) activate() (*ID, error) {
	reader, err := NewReader(c.path())
	if err != nil {
		return nil, err
	}

	id, err := reader.GetID()
	if err != nil {
		_ = reader.Close()
		return nil, err
	}
	if id == nil {
		_ = reader.Close()
		return nil, errors.New("knowledge base has no ID")
	}

	records, err := reader.AllRecords()
	if err != nil {
		_ = reader.Close()
		return nil, err
	}

	index, err := search.NewIndex(records)
	if err != nil {
		// exact matching works without the index
		log.Warnf("fuzzy matching is unavailable: %+v", err)
		bus.Degraded("knowledge-base", fmt.Errorf("%w: %v", matcherr.ErrIndexUnavailable, err))
		index = nil
	}

	c.store.Swap(store.NewSnapshot(reader, index, len(records), reader.Close))
	log.Infof("loaded knowledge base: %s", id)

	bus.Publish(partybus.Event{
		Type:   event.KnowledgeBaseRefreshed,
		Source: c.config.DBDir,
		Value:  *id,
	})
	return id, nil
}

func readID(path string) (*ID, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	reader, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return reader.GetID()
}
