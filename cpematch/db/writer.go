package db

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/anchore/cpematch/cpematch/vulnerability"
)

// Writer creates a knowledge base file.
type Writer struct {
	db *gorm.DB
}

// NewWriter creates the knowledge base tables and indexes in a new sqlite file at the given path.
func NewWriter(dbFilePath string, overwrite bool) (*Writer, error) {
	db, err := open(config{
		dbPath:    dbFilePath,
		overwrite: overwrite,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&IDModel{}, &VulnerableSoftwareModel{}).Error; err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to migrate knowledge base models: %w", err)
	}

	indexes := []struct {
		name    string
		columns []string
	}{
		{name: VendorIndexName, columns: []string{"vendor"}},
		{name: ProductIndexName, columns: []string{"product"}},
		{name: VendorProductIndexName, columns: []string{"vendor", "product"}},
		{name: VendorProductWildcardIndexName, columns: []string{"vendor", "product_wildcard"}},
	}
	for _, idx := range indexes {
		if err := db.Model(&VulnerableSoftwareModel{}).AddIndex(idx.name, idx.columns...).Error; err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("unable to create index %q: %w", idx.name, err)
		}
	}

	return &Writer{
		db: db,
	}, nil
}

// SetID replaces the knowledge base ID.
func (w *Writer) SetID(id ID) error {
	if err := w.db.Delete(&IDModel{}).Error; err != nil {
		return fmt.Errorf("unable to clear ID: %w", err)
	}

	m := NewIDModel(id)
	result := w.db.Create(&m)
	if result.Error != nil {
		return fmt.Errorf("unable to set ID: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add id (%d rows affected)", result.RowsAffected)
	}
	return nil
}

// AddVulnerableSoftware writes the given records in a single transaction.
func (w *Writer) AddVulnerableSoftware(records ...vulnerability.VulnerableSoftware) error {
	tx := w.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("unable to begin transaction: %w", tx.Error)
	}

	for _, r := range records {
		m := NewVulnerableSoftwareModel(r)
		if err := tx.Create(&m).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("unable to add record %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("unable to commit records: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.db.Close()
}
