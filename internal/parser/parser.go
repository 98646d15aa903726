// Package parser recovers the five cover letter sections from a model
// response of unknown fidelity. Strict JSON decoding is tried first;
// local models routinely ignore schema instructions, so a marker-based
// text fallback handles prose-shaped answers.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Sections is the required output: all five fields non-empty, or the
// parse fails as a whole. No partial results.
type Sections struct {
	Addressee  string `json:"addressee"`
	Opening    string `json:"opening"`
	AboutMe    string `json:"aboutMe"`
	WhyMe      string `json:"whyMe"`
	WhyCompany string `json:"whyCompany"`
}

var fieldNames = []string{"addressee", "opening", "aboutMe", "whyMe", "whyCompany"}

// jsonAliases are the key spellings accepted during strict decoding.
var jsonAliases = map[string][]string{
	"addressee":  {"addressee"},
	"opening":    {"opening"},
	"aboutMe":    {"aboutMe", "about_me"},
	"whyMe":      {"whyMe", "why_me"},
	"whyCompany": {"whyCompany", "why_company"},
}

// textMarkers are the heading spellings recognized by the fallback.
// Numbered markers only count at the start of a line.
var textMarkers = map[string][]string{
	"addressee":  {"addressee"},
	"opening":    {"opening", "1."},
	"aboutMe":    {"about me", "about_me", "aboutme", "2."},
	"whyMe":      {"why me", "why_me", "whyme", "3."},
	"whyCompany": {"why company", "why_company", "whycompany", "4."},
}

// Parse extracts the five sections. The caller must treat a returned
// error as an invalid model response; there is no partial success.
func Parse(raw string) (*Sections, error) {
	text := stripFences(raw)

	if s, ok := parseStrict(text); ok {
		return s, nil
	}
	if s, ok := parseMarkers(raw); ok {
		return s, nil
	}
	return nil, fmt.Errorf("response does not contain all five cover letter sections")
}

// stripFences unwraps a fenced code block: everything between the first
// fence (with optional language tag) and its closing fence. Without a
// closing fence the opening marker alone is dropped.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop a language tag like "json" on the fence line.
		firstLine := strings.TrimSpace(rest[:nl])
		if len(firstLine) <= 10 && !strings.ContainsAny(firstLine, "{}:") {
			rest = rest[nl+1:]
		}
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func parseStrict(text string) (*Sections, bool) {
	if !gjson.Valid(text) {
		return nil, false
	}
	parsed := gjson.Parse(text)
	out := &Sections{}
	for _, field := range fieldNames {
		value := ""
		for _, alias := range jsonAliases[field] {
			if v := parsed.Get(alias); v.Exists() {
				value = strings.TrimSpace(v.String())
				break
			}
		}
		if value == "" {
			return nil, false
		}
		out.set(field, value)
	}
	return out, true
}

type markerMatch struct {
	field string
	start int // marker start
	end   int // first content byte after the marker
}

// parseMarkers segments free text: each field's content runs from just
// after its marker to the next recognized marker of any field.
func parseMarkers(raw string) (*Sections, bool) {
	lower := strings.ToLower(raw)

	var matches []markerMatch
	for _, field := range fieldNames {
		best := -1
		bestEnd := 0
		for _, marker := range textMarkers[field] {
			idx := findMarker(lower, marker)
			if idx >= 0 && (best < 0 || idx < best) {
				best = idx
				bestEnd = idx + len(marker)
			}
		}
		if best >= 0 {
			matches = append(matches, markerMatch{field: field, start: best, end: bestEnd})
		}
	}
	if len(matches) < len(fieldNames) {
		return nil, false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	out := &Sections{}
	for i, m := range matches {
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		content := strings.TrimLeft(raw[m.end:end], ":-–—*# \t\r\n")
		content = strings.TrimSpace(content)
		if content == "" {
			return nil, false
		}
		out.set(m.field, content)
	}
	return out, true
}

// findMarker locates a marker occurrence. Numbered markers ("3.") must
// begin a line so ordinary prose numbers do not split sections.
func findMarker(lower, marker string) int {
	atLineStart := marker[0] >= '0' && marker[0] <= '9'
	from := 0
	for {
		idx := strings.Index(lower[from:], marker)
		if idx < 0 {
			return -1
		}
		idx += from
		if !atLineStart || idx == 0 || lower[idx-1] == '\n' {
			return idx
		}
		from = idx + len(marker)
	}
}

func (s *Sections) set(field, value string) {
	switch field {
	case "addressee":
		s.Addressee = value
	case "opening":
		s.Opening = value
	case "aboutMe":
		s.AboutMe = value
	case "whyMe":
		s.WhyMe = value
	case "whyCompany":
		s.WhyCompany = value
	}
}
