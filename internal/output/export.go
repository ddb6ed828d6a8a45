package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"primerfig/core/primer"
)

// ExportRow is one line of the primer-list download.
type ExportRow struct {
	SiteID    string // site.Key(): "template-start-length" or the heading
	Primer    string // record heading, e.g. "Primer 1"
	Penalty   *float64
	Hits      float64
	Sequences []string
}

// ExportRows lists the pairs of one site whose hit count is at most maxHit.
// A negative maxHit keeps every pair.
func ExportRows(site primer.Site, pairs []primer.Pair, maxHit float64) []ExportRow {
	var out []ExportRow
	for _, p := range pairs {
		if maxHit >= 0 && p.HitCount > maxHit {
			continue
		}
		out = append(out, ExportRow{
			SiteID:    site.Key(),
			Primer:    p.DisplayName(),
			Penalty:   p.Penalty,
			Hits:      p.HitCount,
			Sequences: p.Sequences,
		})
	}
	return out
}

// Fields returns the row's cells in header order; sequences each get their
// own cell.
func (r ExportRow) Fields() []string {
	f := []string{r.SiteID, r.Primer, "", formatNum(r.Hits)}
	if r.Penalty != nil {
		f[2] = formatNum(*r.Penalty)
	}
	return append(f, r.Sequences...)
}

func formatNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteTSV writes the header and rows tab-separated.
func WriteTSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(strings.Split(ExportHeader, "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the rows as a single-sheet workbook. Numeric columns are
// stored as numbers.
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Primers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, h := range strings.Split(ExportHeader, "\t") {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		vals := []any{row.SiteID, row.Primer, nil, row.Hits}
		if row.Penalty != nil {
			vals[2] = *row.Penalty
		}
		for _, s := range row.Sequences {
			vals = append(vals, s)
		}
		for c, v := range vals {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx %s: %w", cell, err)
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}
