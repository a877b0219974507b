// Package worldmap colors visited countries on a static world-map SVG by
// injecting visit-intensity CSS classes into matching elements.
package worldmap

import (
	_ "embed"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"wanderbot/internal/geo"
)

//go:embed assets/world.svg
var baseSVG string

// Visit-intensity tiers.
const (
	ClassBase = "visited"
	ClassHigh = "visited-high"
	ClassMid  = "visited-mid"
	ClassLow  = "visited-low"
)

// Style is the stylesheet injected alongside the tier classes.
const Style = `<style>
.visited{stroke:#2b6cb0;stroke-width:.5}
.visited-low{fill:#90cdf4}
.visited-mid{fill:#4299e1}
.visited-high{fill:#2b6cb0}
</style>`

var classAttrRe = regexp.MustCompile(`\bclass="([^"]*)"`)

// Painter rewrites the base map for a set of per-country visit counts. The
// base SVG is loaded once and kept for the process lifetime.
type Painter struct {
	log       *slog.Logger
	base      string
	matchable bool
}

// NewPainter returns a Painter over the embedded base map.
func NewPainter(log *slog.Logger) *Painter {
	return newPainter(log, baseSVG)
}

func newPainter(log *slog.Logger, base string) *Painter {
	return &Painter{
		log:       log.With("component", "worldmap"),
		base:      base,
		matchable: hasMatchableAttrs(base),
	}
}

// hasMatchableAttrs reports whether the base map exposes any of the three
// attributes highlighting can key on. Without them patching is pointless
// and the base map is served unmodified.
func hasMatchableAttrs(svg string) bool {
	return strings.Contains(svg, ` id="`) ||
		strings.Contains(svg, ` name="`) ||
		strings.Contains(svg, ` class="`)
}

// Paint returns the base SVG with tier classes applied for every visited
// country that has a recognizable ISO code. Countries without an ISO
// mapping, and counts below one, contribute no highlighting.
func (p *Painter) Paint(visits map[string]int) string {
	if !p.matchable {
		p.log.Debug("base map has no matchable attributes, skipping highlight")
		return p.base
	}

	codes := make([]string, 0, len(visits))
	for key := range visits {
		codes = append(codes, key)
	}
	sort.Strings(codes)

	out := p.base
	for _, code := range codes {
		classes := tierClasses(visits[code])
		if classes == "" {
			continue
		}
		name, ok := geo.EnglishName(code)
		if !ok {
			continue
		}
		out = patchCountry(out, code, name, classes)
	}
	return injectStyle(out)
}

func tierClasses(count int) string {
	switch {
	case count >= 5:
		return ClassBase + " " + ClassHigh
	case count >= 3:
		return ClassBase + " " + ClassMid
	case count >= 1:
		return ClassBase + " " + ClassLow
	default:
		return ""
	}
}

// patchCountry tries the match strategies in fixed order: id equal to the
// ISO code (case-insensitive), then a name attribute equal to the English
// country name, then a class attribute equal to the English country name.
func patchCountry(svg, code, name, classes string) string {
	idRe := regexp.MustCompile(`<[^>]*\sid="(?i:` + regexp.QuoteMeta(code) + `)"[^>]*>`)
	if out, ok := patchTags(svg, idRe, classes); ok {
		return out
	}
	nameRe := regexp.MustCompile(`<[^>]*\sname="` + regexp.QuoteMeta(name) + `"[^>]*>`)
	if out, ok := patchTags(svg, nameRe, classes); ok {
		return out
	}
	classRe := regexp.MustCompile(`<[^>]*\sclass="` + regexp.QuoteMeta(name) + `"[^>]*>`)
	if out, ok := patchTags(svg, classRe, classes); ok {
		return out
	}
	return svg
}

func patchTags(svg string, re *regexp.Regexp, classes string) (string, bool) {
	matched := false
	out := re.ReplaceAllStringFunc(svg, func(tag string) string {
		matched = true
		return injectClasses(tag, classes)
	})
	return out, matched
}

// injectClasses merges the tier classes into the tag's class attribute,
// preserving any pre-existing value. A tag already carrying a visited
// class is left untouched so repeated painting is idempotent.
func injectClasses(tag, classes string) string {
	if m := classAttrRe.FindStringSubmatch(tag); m != nil {
		if strings.Contains(m[1], ClassBase) {
			return tag
		}
		merged := strings.TrimSpace(m[1] + " " + classes)
		return classAttrRe.ReplaceAllString(tag, `class="`+merged+`"`)
	}
	if strings.HasSuffix(tag, "/>") {
		return tag[:len(tag)-2] + ` class="` + classes + `"/>`
	}
	return tag[:len(tag)-1] + ` class="` + classes + `">`
}

// injectStyle places the tier stylesheet right after the opening svg tag.
// A map that already carries the stylesheet keeps the single copy.
func injectStyle(svg string) string {
	if strings.Contains(svg, ".visited-high") {
		return svg
	}
	idx := strings.Index(svg, ">")
	if idx < 0 {
		return svg
	}
	return svg[:idx+1] + "\n" + Style + svg[idx+1:]
}
