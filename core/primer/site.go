package primer

import (
	"strconv"
	"strings"
)

// Site is one genomic target under inspection.
type Site struct {
	// ID identifies the result panel the site belongs to. Optional.
	ID string

	TemplateName string
	TargetStart  int
	TargetLength int

	// Heading is the panel heading text. It stands in for Key when the
	// input carried no template name.
	Heading string
}

// TargetEnd is the exclusive end of the highlighted region.
func (s Site) TargetEnd() int { return s.TargetStart + s.TargetLength }

// Key returns the "template-start-length" identifier used in primer-list
// downloads, or Heading for a site without a template name.
func (s Site) Key() string {
	if s.TemplateName == "" && s.Heading != "" {
		return s.Heading
	}
	return s.TemplateName + "-" + strconv.Itoa(s.TargetStart) + "-" + strconv.Itoa(s.TargetLength)
}

// PanelID is ID when set, otherwise Key.
func (s Site) PanelID() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Key()
}

// ParseSiteKey splits "template-start-length" back into a Site. Template names
// may themselves contain dashes, so the two numeric fields are taken from the
// right. It returns ok=false if either numeric field is missing or malformed.
func ParseSiteKey(key string) (Site, bool) {
	lastDash := strings.LastIndexByte(key, '-')
	if lastDash <= 0 || lastDash == len(key)-1 {
		return Site{}, false
	}
	length, err := strconv.Atoi(key[lastDash+1:])
	if err != nil {
		return Site{}, false
	}
	rest := key[:lastDash]
	midDash := strings.LastIndexByte(rest, '-')
	if midDash <= 0 || midDash == len(rest)-1 {
		return Site{}, false
	}
	start, err := strconv.Atoi(rest[midDash+1:])
	if err != nil {
		return Site{}, false
	}
	return Site{TemplateName: rest[:midDash], TargetStart: start, TargetLength: length}, true
}
