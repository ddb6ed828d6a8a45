package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"primerfig/core/primer"
)

// ReadTSV reads whitespace-separated site blocks:
//
//	#site <template> <target_start> <target_length> [panel_id]
//	<id> <left start-end> <right start-end> <hit> [penalty]
//	...
//
// Other lines starting with '#' and blank lines are ignored. Records before
// the first #site line are an error, as is a malformed #site line. Record
// fields are validated later, per record, by Extract.
func ReadTSV(r io.Reader) ([]Source, error) {
	var (
		out []Source
		cur *Records
		ln  int
	)
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
		}
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if f[0] == "#site" {
			site, err := siteFromFields(f[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
			flush()
			cur = &Records{Site: site}
			continue
		}
		if line[0] == '#' {
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: %w: record before #site", ln, ErrBadSite)
		}
		// Accept 4 (id left right hit) or 5 (… penalty) fields.
		if len(f) < 4 || len(f) > 5 {
			return nil, fmt.Errorf("line %d: bad field count %d", ln, len(f))
		}
		row := Raw{ID: f[0], Left: f[1], Right: f[2], Hit: f[3]}
		if len(f) == 5 {
			row.Penalty = f[4]
		}
		cur.Rows = append(cur.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}

// LoadTSV opens path and reads it with ReadTSV.
func LoadTSV(path string) ([]Source, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	srcs, err := ReadTSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return srcs, nil
}

func siteFromFields(f []string) (primer.Site, error) {
	if len(f) < 3 || len(f) > 4 {
		return primer.Site{}, fmt.Errorf("%w: #site wants template start length [id]", ErrBadSite)
	}
	site := primer.Site{TemplateName: clean(f[0])}
	var err error
	if site.TargetStart, err = parseSiteInt("target_start", f[1]); err != nil {
		return primer.Site{}, err
	}
	if site.TargetLength, err = parseSiteInt("target_length", f[2]); err != nil {
		return primer.Site{}, err
	}
	if len(f) == 4 {
		site.ID = clean(f[3])
	}
	return site, nil
}
