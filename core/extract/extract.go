// Package extract turns one result panel's worth of primer records into the
// normalized primer model.
//
// Every Source describes exactly one Site. Records keep the order in which
// they appear in the input. A record that cannot be parsed is skipped and
// reported as a *ParseError diagnostic; only an unreadable site envelope
// makes Extract fail.
package extract

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"primerfig/core/primer"
)

// Reasons carried by ParseError.
var (
	ErrMissingField  = errors.New("missing field")
	ErrNotNumeric    = errors.New("not numeric")
	ErrNegativeHits  = errors.New("negative hit count")
	ErrInvertedSpan  = errors.New("start after end")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrMalformedSpan = errors.New("malformed region")
	ErrOutOfRange    = errors.New("out of range")
)

// maxExactCoord is the largest float coordinate that converts to int exactly.
const maxExactCoord = 1 << 53

// ErrBadSite is returned when the site envelope itself cannot be read.
var ErrBadSite = errors.New("extract: unreadable site")

// ParseError describes one skipped record.
type ParseError struct {
	Index int // 0-based position of the record in the input
	ID    string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	id := e.ID
	if id == "" {
		id = "#" + strconv.Itoa(e.Index+1)
	}
	return fmt.Sprintf("record %s: %s: %v", id, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result is the outcome of extracting one site.
type Result struct {
	Site        primer.Site
	Pairs       []primer.Pair
	Diagnostics []*ParseError
}

// Source yields one site's records.
type Source interface {
	Extract() (Result, error)
}

// Raw is a record as delivered by the host: every value is still text.
// Footprints are given either as "start-end" regions (Left, Right) or as
// explicit coordinates; explicit coordinates win when both are present.
type Raw struct {
	ID    string
	Left  string
	Right string

	LeftStart, LeftEnd   string
	RightStart, RightEnd string

	Hit       string
	Label     string
	Penalty   string
	Sequences []string
}

// builder accumulates pairs for one site and enforces id uniqueness.
type builder struct {
	res  Result
	seen map[string]struct{}
}

func newBuilder(site primer.Site) *builder {
	return &builder{res: Result{Site: site}, seen: map[string]struct{}{}}
}

func (b *builder) skip(idx int, id, field string, err error) {
	b.res.Diagnostics = append(b.res.Diagnostics, &ParseError{Index: idx, ID: id, Field: field, Err: err})
}

func (b *builder) add(idx int, r Raw) {
	id := clean(r.ID)
	if id == "" {
		b.skip(idx, id, "id", ErrMissingField)
		return
	}
	if _, dup := b.seen[id]; dup {
		b.skip(idx, id, "id", ErrDuplicateID)
		return
	}

	ls, le, field, err := footprint(r.Left, r.LeftStart, r.LeftEnd, "left")
	if err != nil {
		b.skip(idx, id, field, err)
		return
	}
	rs, re, field, err := footprint(r.Right, r.RightStart, r.RightEnd, "right")
	if err != nil {
		b.skip(idx, id, field, err)
		return
	}

	hit, err := parseHit(r.Hit)
	if err != nil {
		b.skip(idx, id, "hit", err)
		return
	}

	p := primer.Pair{
		ID:        id,
		LeftStart: ls, LeftEnd: le,
		RightStart: rs, RightEnd: re,
		HitCount: hit,
		Label:    clean(r.Label),
	}
	if pen := clean(r.Penalty); pen != "" {
		if v, err := strconv.ParseFloat(pen, 64); err == nil {
			p.Penalty = &v
		}
	}
	for _, s := range r.Sequences {
		if s = clean(s); s != "" {
			p.Sequences = append(p.Sequences, s)
		}
	}

	b.seen[id] = struct{}{}
	b.res.Pairs = append(b.res.Pairs, p)
}

func (b *builder) result() Result { return b.res }

// footprint resolves one primer's interval from either explicit fields or a
// "start-end" region string.
func footprint(region, start, end, side string) (int, int, string, error) {
	start, end = clean(start), clean(end)
	if start == "" && end == "" {
		region = clean(region)
		if region == "" {
			return 0, 0, side, ErrMissingField
		}
		var ok bool
		start, end, ok = SplitRegion(region)
		if !ok {
			return 0, 0, side, ErrMalformedSpan
		}
	}
	s, err := parseCoord(start)
	if err != nil {
		return 0, 0, side + "_start", err
	}
	e, err := parseCoord(end)
	if err != nil {
		return 0, 0, side + "_end", err
	}
	if s > e {
		return 0, 0, side, ErrInvertedSpan
	}
	return s, e, "", nil
}

// SplitRegion splits "80-100" (or "80..100") into its two halves.
func SplitRegion(region string) (string, string, bool) {
	region = strings.TrimSpace(region)
	sep := "-"
	if strings.Contains(region, "..") {
		sep = ".."
	}
	a, b, ok := strings.Cut(region, sep)
	if !ok {
		return "", "", false
	}
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

func parseCoord(s string) (int, error) {
	if s == "" {
		return 0, ErrMissingField
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrNotNumeric
	}
	if math.Abs(f) > maxExactCoord {
		return 0, ErrOutOfRange
	}
	return int(f), nil
}

func parseHit(s string) (float64, error) {
	s = clean(s)
	if s == "" {
		return 0, ErrMissingField
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	if v < 0 {
		return 0, ErrNegativeHits
	}
	return v, nil
}

func clean(s string) string { return norm.NFC.String(strings.TrimSpace(s)) }

func parseSiteInt(field, s string) (int, error) {
	v, err := parseCoord(clean(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadSite, field, err)
	}
	return v, nil
}
