package db

import (
	"fmt"
	"time"

	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

const (
	IDTableName                 = "id"
	VulnerableSoftwareTableName = "vulnerable_software"

	VendorIndexName                = "idx_vendor"
	ProductIndexName               = "idx_product"
	VendorProductIndexName         = "idx_vendor_product"
	VendorProductWildcardIndexName = "idx_vendor_product_wildcard"
)

var vulnerableSoftwareColumns = []string{
	"id",
	"vulnerability_id",
	"cpe23",
	"cpe22",
	"vendor",
	"product",
	"version",
	"product_wildcard",
	"version_start_including",
	"version_start_excluding",
	"version_end_including",
	"version_end_excluding",
	"vulnerable",
}

type IDModel struct {
	BuildTimestamp string `gorm:"column:build_timestamp"`
	SchemaVersion  int    `gorm:"column:schema_version"`
	Records        int    `gorm:"column:records"`
}

func NewIDModel(id ID) IDModel {
	return IDModel{
		BuildTimestamp: id.BuildTimestamp.Format(time.RFC3339Nano),
		SchemaVersion:  id.SchemaVersion,
		Records:        id.Records,
	}
}

func (IDModel) TableName() string {
	return IDTableName
}

func (m *IDModel) Inflate() (ID, error) {
	buildTime, err := time.Parse(time.RFC3339Nano, m.BuildTimestamp)
	if err != nil {
		return ID{}, fmt.Errorf("unable to parse build timestamp (%+v): %w", m.BuildTimestamp, err)
	}

	return ID{
		BuildTimestamp: buildTime,
		SchemaVersion:  m.SchemaVersion,
		Records:        m.Records,
	}, nil
}

// VulnerableSoftwareModel is a knowledge base record as stored. Booleans are stored as integers (0 or 1) so they can
// be used as index keys.
type VulnerableSoftwareModel struct {
	ID                    string `gorm:"column:id;primary_key"`
	VulnerabilityID       string `gorm:"column:vulnerability_id"`
	CPE23                 string `gorm:"column:cpe23"`
	CPE22                 string `gorm:"column:cpe22"`
	Vendor                string `gorm:"column:vendor"`
	Product               string `gorm:"column:product"`
	Version               string `gorm:"column:version"`
	ProductWildcard       int    `gorm:"column:product_wildcard"`
	VersionStartIncluding string `gorm:"column:version_start_including"`
	VersionStartExcluding string `gorm:"column:version_start_excluding"`
	VersionEndIncluding   string `gorm:"column:version_end_including"`
	VersionEndExcluding   string `gorm:"column:version_end_excluding"`
	Vulnerable            int    `gorm:"column:vulnerable"`
}

func NewVulnerableSoftwareModel(r vulnerability.VulnerableSoftware) VulnerableSoftwareModel {
	return VulnerableSoftwareModel{
		ID:                    r.ID,
		VulnerabilityID:       r.VulnerabilityID,
		CPE23:                 r.CPE23,
		CPE22:                 r.CPE22,
		Vendor:                r.Vendor,
		Product:               r.Product,
		Version:               r.Version,
		ProductWildcard:       boolToInt(r.ProductWildcard()),
		VersionStartIncluding: r.Range.StartIncluding,
		VersionStartExcluding: r.Range.StartExcluding,
		VersionEndIncluding:   r.Range.EndIncluding,
		VersionEndExcluding:   r.Range.EndExcluding,
		Vulnerable:            boolToInt(r.Vulnerable),
	}
}

func (VulnerableSoftwareModel) TableName() string {
	return VulnerableSoftwareTableName
}

func (m *VulnerableSoftwareModel) Inflate() vulnerability.VulnerableSoftware {
	return vulnerability.VulnerableSoftware{
		ID:              m.ID,
		VulnerabilityID: m.VulnerabilityID,
		CPE23:           m.CPE23,
		CPE22:           m.CPE22,
		Vendor:          m.Vendor,
		Product:         m.Product,
		Version:         m.Version,
		Range: version.Range{
			StartIncluding: m.VersionStartIncluding,
			StartExcluding: m.VersionStartExcluding,
			EndIncluding:   m.VersionEndIncluding,
			EndExcluding:   m.VersionEndExcluding,
		},
		Vulnerable: m.Vulnerable != 0,
	}
}

// scanTargets lists the model fields in the order of vulnerableSoftwareColumns.
func (m *VulnerableSoftwareModel) scanTargets() []interface{} {
	return []interface{}{
		&m.ID,
		&m.VulnerabilityID,
		&m.CPE23,
		&m.CPE22,
		&m.Vendor,
		&m.Product,
		&m.Version,
		&m.ProductWildcard,
		&m.VersionStartIncluding,
		&m.VersionStartExcluding,
		&m.VersionEndIncluding,
		&m.VersionEndExcluding,
		&m.Vulnerable,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
