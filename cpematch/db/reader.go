package db

import (
	"fmt"
	"os"
	"sync"

	"github.com/alicebob/sqlittle"
	"github.com/scylladb/go-set/strset"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

var _ vulnerability.Provider = (*Reader)(nil)

// Reader is a read-only knowledge base provider backed by a sqlite file.
type Reader struct {
	lock sync.Mutex
	db   *sqlittle.DB
}

// NewReader opens the knowledge base file at the given path.
func NewReader(dbFilePath string) (*Reader, error) {
	if _, err := os.Stat(dbFilePath); err != nil {
		return nil, fmt.Errorf("unable to open knowledge base: %w", err)
	}

	d, err := sqlittle.Open(dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("unable to create a new connection to sqlite3 db: %w", err)
	}

	return &Reader{
		db: d,
	}, nil
}

func (r *Reader) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.db.Close()
}

// GetID fetches the metadata about the knowledge base generation.
func (r *Reader) GetID() (*ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var scanErr error
	total := 0
	var m IDModel
	err := r.db.Select(IDTableName, func(row sqlittle.Row) {
		total++

		if err := row.Scan(&m.BuildTimestamp, &m.SchemaVersion, &m.Records); err != nil {
			scanErr = fmt.Errorf("unable to scan over row: %w", err)
		}
	}, "build_timestamp", "schema_version", "records")
	if err != nil {
		return nil, fmt.Errorf("unable to query for ID: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}

	switch {
	case total == 0:
		return nil, nil
	case total > 1:
		return nil, fmt.Errorf("discovered more than one DB ID")
	}

	id, err := m.Inflate()
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// LookupByVendorProduct returns the candidate records for the given vendor and product keys, see
// vulnerability.Provider.
func (r *Reader) LookupByVendorProduct(vendor, product string) ([]vulnerability.VulnerableSoftware, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	anyKey := cpe.AnyValue.Raw

	type lookup struct {
		index string
		key   sqlittle.Key
	}
	var lookups []lookup
	switch {
	case vendor == anyKey && product == anyKey:
		return r.selectAll()
	case vendor == anyKey:
		lookups = []lookup{
			{index: ProductIndexName, key: sqlittle.Key{product}},
			{index: ProductIndexName, key: sqlittle.Key{anyKey}},
			{index: VendorProductWildcardIndexName, key: sqlittle.Key{anyKey, 1}},
		}
	case product == anyKey:
		lookups = []lookup{
			{index: VendorIndexName, key: sqlittle.Key{vendor}},
			{index: VendorIndexName, key: sqlittle.Key{anyKey}},
		}
	default:
		lookups = []lookup{
			{index: VendorProductIndexName, key: sqlittle.Key{vendor, product}},
			{index: VendorProductIndexName, key: sqlittle.Key{vendor, anyKey}},
			{index: VendorProductIndexName, key: sqlittle.Key{anyKey, product}},
			{index: VendorProductIndexName, key: sqlittle.Key{anyKey, anyKey}},
			{index: VendorProductWildcardIndexName, key: sqlittle.Key{vendor, 1}},
			{index: VendorProductWildcardIndexName, key: sqlittle.Key{anyKey, 1}},
		}
	}

	seen := strset.New()
	var results []vulnerability.VulnerableSoftware
	for _, l := range lookups {
		models, err := r.indexedSelect(l.index, l.key)
		if err != nil {
			return nil, err
		}
		for _, m := range models {
			if seen.Has(m.ID) {
				continue
			}
			seen.Add(m.ID)
			results = append(results, m.Inflate())
		}
	}
	return results, nil
}

// GetByID returns the record with the given ID, or nil when there is none.
func (r *Reader) GetByID(id string) (*vulnerability.VulnerableSoftware, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var scanErr error
	var models []VulnerableSoftwareModel
	err := r.db.PKSelect(VulnerableSoftwareTableName, sqlittle.Key{id}, func(row sqlittle.Row) {
		var m VulnerableSoftwareModel
		if err := row.Scan(m.scanTargets()...); err != nil {
			scanErr = fmt.Errorf("unable to scan over row: %w", err)
			return
		}
		models = append(models, m)
	}, vulnerableSoftwareColumns...)
	if err != nil {
		return nil, fmt.Errorf("unable to query: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}

	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		record := models[0].Inflate()
		return &record, nil
	}
	return nil, fmt.Errorf("discovered more than one record with id=%q", id)
}

// AllRecords returns every record of the knowledge base.
func (r *Reader) AllRecords() ([]vulnerability.VulnerableSoftware, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.selectAll()
}

func (r *Reader) selectAll() ([]vulnerability.VulnerableSoftware, error) {
	var scanErr error
	var results []vulnerability.VulnerableSoftware
	err := r.db.Select(VulnerableSoftwareTableName, func(row sqlittle.Row) {
		var m VulnerableSoftwareModel
		if err := row.Scan(m.scanTargets()...); err != nil {
			scanErr = fmt.Errorf("unable to scan over row: %w", err)
			return
		}
		results = append(results, m.Inflate())
	}, vulnerableSoftwareColumns...)
	if err != nil {
		return nil, fmt.Errorf("unable to query: %w", err)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return results, nil
}

func (r *Reader) indexedSelect(index string, key sqlittle.Key) ([]VulnerableSoftwareModel, error) {
	var scanErr error
	var models []VulnerableSoftwareModel
	err := r.db.IndexedSelectEq(VulnerableSoftwareTableName, index, key, func(row sqlittle.Row) {
		var m VulnerableSoftwareModel
		if err := row.Scan(m.scanTargets()...); err != nil {
			scanErr = fmt.Errorf("unable to scan over row: %w", err)
			return
		}
		models = append(models, m)
	}, vulnerableSoftwareColumns...)
	if err != nil {
		return nil, fmt.Errorf("unable to query %s: %w", index, err)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return models, nil
}
