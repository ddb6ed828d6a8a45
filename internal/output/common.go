package output

// Output formats understood by the render command.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatText  = "text"
)

// Export formats of the primer list.
const (
	ExportTSV  = "tsv"
	ExportXLSX = "xlsx"
)

// ExportHeader is the header row of the primer-list download. Keep this as
// the single source of truth; the TSV and XLSX writers both use it.
const ExportHeader = "#Site_ID\tPrimer_Rank\tPenalty_Score\tHit_Num\tPrimers"
