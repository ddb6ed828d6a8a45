// internal/common/sort.go
package common

import (
	"sort"

	"primerfig/core/primer"
	"primerfig/internal/output"
)

// LessExportRow orders rows by site (template, start, length) and then by
// hit count, keeping input order for ties.
func LessExportRow(a, b output.ExportRow) bool {
	if a.SiteID != b.SiteID {
		sa, okA := primer.ParseSiteKey(a.SiteID)
		sb, okB := primer.ParseSiteKey(b.SiteID)
		if !okA || !okB {
			return a.SiteID < b.SiteID
		}
		if sa.TemplateName != sb.TemplateName {
			return sa.TemplateName < sb.TemplateName
		}
		if sa.TargetStart != sb.TargetStart {
			return sa.TargetStart < sb.TargetStart
		}
		return sa.TargetLength < sb.TargetLength
	}
	return a.Hits < b.Hits
}

// SortExportRows sorts rows in place for --sort.
func SortExportRows(rows []output.ExportRow) {
	sort.SliceStable(rows, func(i, j int) bool { return LessExportRow(rows[i], rows[j]) })
}
