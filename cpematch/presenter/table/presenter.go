package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/anchore/cpematch/cpematch/match"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	results   []match.Result
	withColor bool
}

// NewPresenter is a *Presenter constructor
func NewPresenter(results []match.Result, withColor bool) *Presenter {
	return &Presenter{
		results:   results,
		withColor: withColor,
	}
}

// Present creates a table of every applicable record, one row per component and record.
func (p *Presenter) Present(output io.Writer) error {
	rs := getRows(p.results)

	if len(rs) == 0 {
		_, err := io.WriteString(output, "No applicable vulnerable software found\n")
		return err
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"Component", "Version", "Vulnerability", "CPE", "Range", "Match", "Confidence"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	if p.withColor {
		for _, r := range rs.Render() {
			table.Rich(r, []tablewriter.Colors{{}, {}, {}, {}, {}, getMatchTypeColor(r[5]), {}})
		}
	} else {
		table.AppendBulk(rs.Render())
	}

	table.Render()

	return nil
}

func getRows(results []match.Result) rows {
	var rs rows
	for _, r := range results {
		for _, m := range r.Matches {
			rs = append(rs, newRow(r, m))
		}
	}
	return rs
}

type rows []row

type row struct {
	Component       string
	Version         string
	VulnerabilityID string
	CPE             string
	Range           string
	MatchType       string
	Confidence      string
}

func newRow(r match.Result, m match.Match) row {
	name := r.Component.Name
	if name == "" {
		name = r.Component.CPE
	}
	if name == "" {
		name = r.Component.PURL
	}

	c := m.Vulnerable.CPE23
	if c == "" {
		c = m.Vulnerable.CPE22
	}

	var matchType string
	var confidence float64
	if len(m.Details) > 0 {
		// details are sorted, the first is the strongest
		matchType = string(m.Details[0].Type)
		confidence = m.Details[0].Confidence
	}

	versionRange := ""
	if !m.Vulnerable.Range.IsEmpty() {
		versionRange = m.Vulnerable.Range.String()
	}

	return row{
		Component:       name,
		Version:         r.Component.Version,
		VulnerabilityID: m.Vulnerable.VulnerabilityID,
		CPE:             c,
		Range:           versionRange,
		MatchType:       matchType,
		Confidence:      fmt.Sprintf("%.2f", confidence),
	}
}

func (r row) Columns() []string {
	return []string{r.Component, r.Version, r.VulnerabilityID, r.CPE, r.Range, r.MatchType, r.Confidence}
}

func (r row) String() string {
	return strings.Join(r.Columns(), "|")
}

func (rs rows) Render() [][]string {
	// deduplicate
	seen := map[string]row{}
	var deduped rows

	for _, v := range rs {
		key := v.String()
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = v
		deduped = append(deduped, v)
	}

	out := make([][]string, len(deduped))
	for idx, r := range deduped {
		out[idx] = r.Columns()
	}
	return out
}

func getMatchTypeColor(matchType string) tablewriter.Colors {
	switch match.Type(matchType) {
	case match.ExactMatch:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgGreenColor}
	case match.FuzzyMatch:
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgYellowColor}
	}
	return tablewriter.Colors{}
}
