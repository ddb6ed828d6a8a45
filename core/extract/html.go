package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"primerfig/core/primer"
)

// Class names used by the pipeline's result page.
const (
	classPanel       = "panel"
	classSiteDetail  = "site-detail"
	classCollapse    = "collapse"
	classRecord      = "list-group-item"
	classHeading     = "list-group-item-heading"
	classRecordText  = "list-group-item-text"
	classLeftRegion  = "primer-left-region"
	classRightRegion = "primer-right-region"
	classHitNum      = "hit-num"
	classPenalty     = "penalty"
	classSequence    = "monospace-style"
)

// HTMLPanel is one result panel: a heading whose .site-detail element
// carries data-seq/data-pos/data-length, and a body with one
// .list-group-item per primer pair. Panels nested inside Node belong to
// their own sites and are not read.
type HTMLPanel struct {
	Node *html.Node
}

// Extract reads the site detail and every record of the panel. Without
// data-seq the heading text becomes the site key and the target
// coordinates default to 0.
func (p HTMLPanel) Extract() (Result, error) {
	if p.Node == nil {
		return Result{}, fmt.Errorf("%w: empty panel", ErrBadSite)
	}
	detail := findFirstOwn(p.Node, withClass(classSiteDetail))
	if detail == nil {
		return Result{}, fmt.Errorf("%w: no %s element", ErrBadSite, classSiteDetail)
	}

	site := primer.Site{
		ID:           panelID(p.Node),
		TemplateName: clean(attr(detail, "data-seq")),
	}
	optional := site.TemplateName == ""
	if optional {
		site.Heading = clean(textContent(detail))
	}
	var err error
	if site.TargetStart, err = siteAttr(detail, "data-pos", optional); err != nil {
		return Result{}, err
	}
	if site.TargetLength, err = siteAttr(detail, "data-length", optional); err != nil {
		return Result{}, err
	}

	b := newBuilder(site)
	for i, item := range findAllOwn(p.Node, withClass(classRecord)) {
		b.add(i, rawFromItem(item))
	}
	return b.result(), nil
}

func siteAttr(detail *html.Node, key string, optional bool) (int, error) {
	v := attr(detail, key)
	if optional && clean(v) == "" {
		return 0, nil
	}
	return parseSiteInt(key, v)
}

func rawFromItem(item *html.Node) Raw {
	var r Raw
	if h := findFirst(item, withClass(classHeading)); h != nil {
		r.ID = attr(h, "id")
		r.Label = textContent(h)
	}
	if n := findFirst(item, withClass(classLeftRegion)); n != nil {
		r.Left = textContent(n)
	}
	if n := findFirst(item, withClass(classRightRegion)); n != nil {
		r.Right = textContent(n)
	}
	if n := findFirst(item, withClass(classHitNum)); n != nil {
		r.Hit = attr(n, "data-hit")
	}
	if n := findFirst(item, withClass(classPenalty)); n != nil {
		r.Penalty = textContent(n)
	}
	for _, text := range findAll(item, withClass(classRecordText)) {
		for _, n := range findAll(text, withClass(classSequence)) {
			r.Sequences = append(r.Sequences, clean(textContent(n)))
		}
	}
	return r
}

// panelID prefers the id of the collapsible body, then the panel's own id.
func panelID(panel *html.Node) string {
	if c := findFirstOwn(panel, func(n *html.Node) bool {
		return hasClass(n, classCollapse) && attr(n, "id") != ""
	}); c != nil {
		return clean(attr(c, "id"))
	}
	return clean(attr(panel, "id"))
}

// PanelsFromHTML parses a result page and returns one Source per panel that
// carries a site detail, in document order. A site detail belongs to its
// nearest enclosing .panel, so wrapper panels around the site panels are
// never sources themselves. Panels without a detail (alerts, download box)
// are ignored.
func PanelsFromHTML(r io.Reader) ([]Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSite, err)
	}
	var out []Source
	seen := map[*html.Node]bool{}
	for _, d := range findAll(doc, withClass(classSiteDetail)) {
		panel := closest(d, withClass(classPanel))
		if panel == nil || seen[panel] {
			continue
		}
		seen[panel] = true
		out = append(out, HTMLPanel{Node: panel})
	}
	return out, nil
}

func withClass(c string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, c) }
}

func hasClass(n *html.Node, c string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == c {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns matching descendants of root in document order.
// Matches are not searched for nested matches.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// findAllOwn is findAll restricted to panel's own content: nested panels
// are skipped entirely.
func findAllOwn(panel *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case hasClass(c, classPanel):
			case match(c):
				out = append(out, c)
			default:
				walk(c)
			}
		}
	}
	walk(panel)
	return out
}

func findFirstOwn(panel *html.Node, match func(*html.Node) bool) *html.Node {
	if all := findAllOwn(panel, match); len(all) > 0 {
		return all[0]
	}
	return nil
}

// closest returns the nearest ancestor of n that matches.
func closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if match(p) {
			return p
		}
	}
	return nil
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if n := findFirst(c, match); n != nil {
			return n
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
