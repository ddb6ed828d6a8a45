package writers

import (
	"primerfig/core/extract"
	"primerfig/core/primer"
)

func recordsSource() extract.Source {
	return extract.Records{
		Site: primer.Site{TemplateName: "chr1", TargetStart: 100, TargetLength: 50},
		Rows: []extract.Raw{{ID: "p1", Left: "80-100", Right: "160-180", Hit: "1"}},
	}
}
