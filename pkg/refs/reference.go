// Package refs models outgoing cross-references captured from provision
// text, and the target-path classification rule used to bucket them for
// the downstream graph loader (spec.md §3 "Reference record").
package refs

import (
	"regexp"
	"strconv"
	"strings"
)

// Type classifies where a reference's target points, mirroring the
// three-way split the original pipeline's reference extractor produces
// (original_source/pipeline/silver/reference_extractor.go equivalent:
// extract_references_from_section / parse_usc_path).
type Type string

const (
	TypeInternal   Type = "internal"
	TypeCrossTitle Type = "cross_title"
	TypeExternal   Type = "external"
)

// Reference is a single outgoing cross-reference captured from a
// provision's text: an inline link-like construct with a target and
// display text.
type Reference struct {
	Target  string `json:"target"`
	Display string `json:"text"`
}

// usTitleSection matches a USC path of the form /us/usc/t{title}/s{section}
// optionally followed by a sub-provision path, e.g. /us/usc/t18/s922/a/1.
var usTitleSection = regexp.MustCompile(`^/us/usc/t(\d+)/s(\w[\w-]*)`)

// ParsedTarget is the decomposition of a reference target path.
type ParsedTarget struct {
	Title      int
	Section    string
	IsUSC      bool
	IsAnchor   bool
	IsExternal bool // /us/pl/... or /us/stat/...
}

// ParseTarget parses a reference target path. Targets starting with "#"
// are internal HTML anchors; targets starting with "/us/pl/" or
// "/us/stat/" are carried verbatim as external; USC paths are decomposed
// into title/section. Anything else is returned with none of the flags
// set (unknown shape, classified as internal by ClassifyType).
func ParseTarget(target string) ParsedTarget {
	if len(target) > 0 && target[0] == '#' {
		return ParsedTarget{IsAnchor: true}
	}
	if strings.HasPrefix(target, "/us/pl/") || strings.HasPrefix(target, "/us/stat/") {
		return ParsedTarget{IsExternal: true}
	}
	if m := usTitleSection.FindStringSubmatch(target); m != nil {
		title, _ := strconv.Atoi(m[1])
		return ParsedTarget{Title: title, Section: m[2], IsUSC: true}
	}
	return ParsedTarget{}
}

// ClassifyType decides the Type for a reference whose target resolved to
// parsed. sourceTitle is the title the referencing provision lives in
// (18, for this corpus). USC references into the same title are
// internal; USC references into a different title are cross_title; HTML
// anchors, Public Law/Statutes-at-Large links, and unrecognised shapes
// are all treated as internal, matching the original pipeline's
// "HTML anchors, Public Laws, etc. - treat as internal for now".
func ClassifyType(parsed ParsedTarget, sourceTitle int) Type {
	if parsed.IsUSC {
		if parsed.Title == sourceTitle {
			return TypeInternal
		}
		return TypeCrossTitle
	}
	return TypeInternal
}

// Record is the flat shape exposed to the graph loader (spec.md §3).
type Record struct {
	SourceSection     string `json:"source_section"`
	SourceProvisionID string `json:"source_provision_id"`
	TargetProvisionID string `json:"target_provision_id"`
	TargetTitle       *int   `json:"target_title,omitempty"`
	TargetSection     string `json:"target_section,omitempty"`
	DisplayText       string `json:"display_text"`
	RefType           Type   `json:"ref_type"`
}

// Flatten converts a single Reference captured at a given provision into a
// graph-ready Record.
func Flatten(sourceSection, sourceProvisionID string, ref Reference, sourceTitle int) Record {
	parsed := ParseTarget(ref.Target)
	rec := Record{
		SourceSection:     sourceSection,
		SourceProvisionID: sourceProvisionID,
		TargetProvisionID: ref.Target,
		DisplayText:       ref.Display,
		RefType:           ClassifyType(parsed, sourceTitle),
	}
	if parsed.IsUSC {
		title := parsed.Title
		rec.TargetTitle = &title
		rec.TargetSection = parsed.Section
	}
	return rec
}
