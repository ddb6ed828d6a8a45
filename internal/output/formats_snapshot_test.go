package output

import "testing"

func TestFormats_Stable(t *testing.T) {
	if FormatSVG != "svg" || FormatPNG != "png" || FormatJSON != "json" || FormatJSONL != "jsonl" || FormatText != "text" {
		t.Fatalf("output format constants changed")
	}
	if ExportTSV != "tsv" || ExportXLSX != "xlsx" {
		t.Fatalf("export format constants changed")
	}
}
