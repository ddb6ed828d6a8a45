package extract

import (
	"fmt"

	"github.com/tidwall/gjson"

	"primerfig/core/primer"
)

// Accepted key spellings, first match wins.
var (
	keysID           = []string{"id", "panel_id"}
	keysTemplate     = []string{"template", "template_name", "seq"}
	keysTargetStart  = []string{"target_start", "pos"}
	keysTargetLength = []string{"target_length", "length"}
	keysRecords      = []string{"primers", "records"}

	keysHit     = []string{"hit_count", "hit", "hit_num"}
	keysPenalty = []string{"penalty", "penalty_score"}
)

// JSONSource reads one site object:
//
//	{"id":"site-1","template":"chr1","target_start":100,"target_length":50,
//	 "primers":[{"id":"p1","left":"80-100","right":"160-180","hit":1}]}
//
// Numbers may be JSON numbers or numeric strings. Each primer may give its
// footprints as region strings or as left_start/left_end/right_start/right_end.
type JSONSource struct {
	Data []byte
}

// Extract parses the site envelope strictly and each primer leniently.
func (s JSONSource) Extract() (Result, error) {
	if !gjson.ValidBytes(s.Data) {
		return Result{}, fmt.Errorf("%w: invalid JSON", ErrBadSite)
	}
	doc := gjson.ParseBytes(s.Data)
	if !doc.IsObject() {
		return Result{}, fmt.Errorf("%w: site is not an object", ErrBadSite)
	}

	site := primer.Site{
		ID:           clean(first(doc, keysID).String()),
		TemplateName: clean(first(doc, keysTemplate).String()),
	}
	var err error
	if site.TargetStart, err = parseSiteInt("target_start", first(doc, keysTargetStart).String()); err != nil {
		return Result{}, err
	}
	if site.TargetLength, err = parseSiteInt("target_length", first(doc, keysTargetLength).String()); err != nil {
		return Result{}, err
	}

	b := newBuilder(site)
	recs := first(doc, keysRecords)
	if recs.Exists() && !recs.IsArray() {
		return Result{}, fmt.Errorf("%w: primers is not an array", ErrBadSite)
	}
	for i, rec := range recs.Array() {
		b.add(i, rawFromJSON(rec))
	}
	return b.result(), nil
}

func rawFromJSON(rec gjson.Result) Raw {
	r := Raw{
		ID:         rec.Get("id").String(),
		Left:       rec.Get("left").String(),
		Right:      rec.Get("right").String(),
		LeftStart:  rec.Get("left_start").String(),
		LeftEnd:    rec.Get("left_end").String(),
		RightStart: rec.Get("right_start").String(),
		RightEnd:   rec.Get("right_end").String(),
		Hit:        first(rec, keysHit).String(),
		Label:      rec.Get("label").String(),
		Penalty:    first(rec, keysPenalty).String(),
	}
	for _, s := range rec.Get("sequences").Array() {
		r.Sequences = append(r.Sequences, s.String())
	}
	return r
}

func first(v gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// SitesFromJSON splits a document into one Source per site. It accepts a
// single site object, an array of site objects, or {"sites":[...]}.
func SitesFromJSON(data []byte) ([]Source, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrBadSite)
	}
	doc := gjson.ParseBytes(data)
	if sites := doc.Get("sites"); sites.IsArray() {
		doc = sites
	}
	if !doc.IsArray() {
		return []Source{JSONSource{Data: []byte(doc.Raw)}}, nil
	}
	var out []Source
	for _, el := range doc.Array() {
		out = append(out, JSONSource{Data: []byte(el.Raw)})
	}
	return out, nil
}
