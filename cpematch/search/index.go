package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/anchore/cpematch/cpematch/cpe"
	"github.com/anchore/cpematch/cpematch/matcherr"
	"github.com/anchore/cpematch/cpematch/vulnerability"
	"github.com/anchore/cpematch/internal/log"
)

const (
	FieldProduct = "product"
	FieldVendor  = "vendor"
	FieldCPE23   = "cpe23"
	FieldCPE22   = "cpe22"

	batchSize = 1000
)

// Hit is a record admitted by a search, ranked by score.
type Hit struct {
	RecordID   string
	Score      float64
	Confidence float64 // the score relative to the best hit of the search
}

// Index is an immutable in-memory inverted index over knowledge base records. A new index is built for every
// knowledge base refresh.
type Index struct {
	idx  bleve.Index
	size uint64
}

// NewIndex indexes the vendor and product (lowercased) of every record along with its full CPE bindings. Records
// with a malformed CPE are left out.
func NewIndex(records []vulnerability.VulnerableSoftware) (*Index, error) {
	idx, err := bleve.NewMemOnly(indexMapping())
	if err != nil {
		return nil, fmt.Errorf("unable to create search index: %w", err)
	}

	batch := idx.NewBatch()
	var size uint64
	for _, r := range records {
		doc, err := newDocument(r)
		if err != nil {
			log.Debugf("not indexing record %q: %v", r.ID, err)
			continue
		}
		if err := batch.Index(r.ID, doc); err != nil {
			return nil, fmt.Errorf("unable to index record %q: %w", r.ID, err)
		}
		size++
		if batch.Size() >= batchSize {
			if err := idx.Batch(batch); err != nil {
				return nil, fmt.Errorf("unable to write search index batch: %w", err)
			}
			batch.Reset()
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("unable to write search index batch: %w", err)
	}

	return &Index{idx: idx, size: size}, nil
}

func indexMapping() mapping.IndexMapping {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	keywordField.Store = false
	keywordField.IncludeTermVectors = false
	keywordField.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	for _, field := range []string{FieldProduct, FieldVendor, FieldCPE23, FieldCPE22} {
		doc.AddFieldMappingsAt(field, keywordField)
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = keyword.Name
	return m
}

func newDocument(r vulnerability.VulnerableSoftware) (map[string]interface{}, error) {
	n, err := r.Name()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		FieldProduct: strings.ToLower(n.Product().Unquoted()),
		FieldVendor:  strings.ToLower(n.Vendor().Unquoted()),
		FieldCPE23:   n.BindToFmtString(),
		FieldCPE22:   n.BindToPaddedURI(),
	}, nil
}

// Size is the number of indexed records.
func (i *Index) Size() uint64 {
	if i == nil {
		return 0
	}
	return i.size
}

// Search finds up to limit records whose product is within the allowed edit distance of any of the terms and whose
// CPE could be matched by the pattern.
func (i *Index) Search(ctx context.Context, terms []string, pattern cpe.Name, similarity float64, limit int) ([]Hit, error) {
	if i == nil || i.idx == nil {
		return nil, matcherr.ErrIndexUnavailable
	}
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(NewQuery(terms, pattern, similarity), limit, 0, false)
	res, err := i.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matcherr.ErrIndexUnavailable, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		confidence := 1.0
		if res.MaxScore > 0 {
			confidence = h.Score / res.MaxScore
		}
		hits = append(hits, Hit{
			RecordID:   h.ID,
			Score:      h.Score,
			Confidence: confidence,
		})
	}
	return hits, nil
}

// NewQuery builds a query admitting records with a product close to any of the terms, restricted to CPEs the pattern
// could match in either binding (the 2.3 formatted string or the padded 2.2 URI).
func NewQuery(terms []string, pattern cpe.Name, similarity float64) query.Query {
	cpe23 := bleve.NewRegexpQuery(ToIndexQuery(pattern))
	cpe23.SetField(FieldCPE23)
	cpe22 := bleve.NewRegexpQuery(ToIndexQuery22(pattern))
	cpe22.SetField(FieldCPE22)
	cpeFilter := bleve.NewDisjunctionQuery(cpe23, cpe22)

	disjuncts := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(term)
		product := bleve.NewFuzzyQuery(term)
		product.SetField(FieldProduct)
		product.SetFuzziness(Fuzziness(term, similarity))
		disjuncts = append(disjuncts, product)
	}

	return bleve.NewConjunctionQuery(bleve.NewDisjunctionQuery(disjuncts...), cpeFilter)
}

func (i *Index) Close() error {
	if i == nil || i.idx == nil {
		return nil
	}
	return i.idx.Close()
}
