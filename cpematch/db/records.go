package db

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

// recordDocument is one entry of an import file, using the NVD cpe_match field names.
type recordDocument struct {
	ID              string `json:"id"`
	VulnerabilityID string `json:"vulnerabilityId"`
	CPE23           string `json:"cpe23Uri"`
	CPE22           string `json:"cpe22Uri"`
	version.Range
	Vulnerable *bool `json:"vulnerable"`
}

// ReadRecords reads the import file at the given path, see DecodeRecords.
func ReadRecords(fs afero.Fs, path string) ([]vulnerability.VulnerableSoftware, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("unable to open records file: %w", err)
	}
	defer f.Close()

	return DecodeRecords(f)
}

// DecodeRecords decodes a JSON array of vulnerable software records. Records without an ID are given one, records
// without a vulnerable flag are vulnerable. Invalid records (no CPE, a malformed CPE, a duplicate ID) are dropped
// and reported together in the returned error, alongside every valid record.
func DecodeRecords(reader io.Reader) ([]vulnerability.VulnerableSoftware, error) {
	var docs []recordDocument
	if err := json.NewDecoder(reader).Decode(&docs); err != nil {
		return nil, fmt.Errorf("unable to decode records: %w", err)
	}

	var errs error
	records := make([]vulnerability.VulnerableSoftware, 0, len(docs))
	for i, doc := range docs {
		r, err := doc.toRecord()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("record %d (id=%q): %w", i, doc.ID, err))
			continue
		}
		records = append(records, r)
	}

	duplicates := lo.FindDuplicatesBy(records, func(r vulnerability.VulnerableSoftware) string {
		return r.ID
	})
	for _, d := range duplicates {
		errs = multierror.Append(errs, fmt.Errorf("duplicate record id=%q: keeping the first occurrence", d.ID))
	}
	records = lo.UniqBy(records, func(r vulnerability.VulnerableSoftware) string {
		return r.ID
	})

	return records, errs
}

func (d recordDocument) toRecord() (vulnerability.VulnerableSoftware, error) {
	cpeStr := d.CPE23
	if cpeStr == "" {
		cpeStr = d.CPE22
	}
	if cpeStr == "" {
		return vulnerability.VulnerableSoftware{}, fmt.Errorf("no cpe23Uri or cpe22Uri given")
	}

	id := d.ID
	if id == "" {
		id = uuid.New().String()
	}

	vulnerable := true
	if d.Vulnerable != nil {
		vulnerable = *d.Vulnerable
	}

	return vulnerability.New(id, d.VulnerabilityID, cpeStr, d.Range, vulnerable)
}
