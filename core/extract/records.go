package extract

import "primerfig/core/primer"

// Records is a Source over records the host has already split into fields.
type Records struct {
	Site primer.Site
	Rows []Raw
}

// Extract parses Rows in order.
func (r Records) Extract() (Result, error) {
	b := newBuilder(r.Site)
	for i, row := range r.Rows {
		b.add(i, row)
	}
	return b.result(), nil
}
