// Package fixups applies the declarative, section-keyed corrections table
// described in spec.md §4.4: known source anomalies that are cheaper to
// patch after the fact than to special-case in the extractors themselves.
package fixups

import (
	"strings"

	"github.com/uscorpus/title18/pkg/provision"
)

// Rule removes a root subsection whose id equals IDPattern and whose text
// satisfies the configured text match. Rules only ever act on the root
// subsection bucket, mirroring the original's `_remove_matching_provision`,
// which only ever filtered `parsed_section['subsections']`.
type Rule struct {
	IDPattern      string
	TextContains   string // empty means "not checked"
	TextStartsWith string
	Reason         string
}

func (r Rule) matches(p *provision.Provision) bool {
	if p.ID != r.IDPattern {
		return false
	}
	switch {
	case r.TextContains != "":
		return strings.Contains(p.Text, r.TextContains)
	case r.TextStartsWith != "":
		return strings.HasPrefix(p.Text, r.TextStartsWith)
	default:
		return true
	}
}

// sectionOverrides is the data table itself. Adding a rule is a one-line
// addition, per spec.md §4.4.
var sectionOverrides = map[string][]Rule{
	"922": {
		{
			IDPattern:    "/us/usc/t18/s922/v",
			TextContains: "Repealed",
			Reason:       "Duplicate (v) from repealed provision marker",
		},
		{
			IDPattern:      "/us/usc/t18/s922/C",
			TextStartsWith: "If a chief law enforcement officer",
			// Note: Correct location would need deeper investigation.
			// For now, just remove from root level.
			Reason: "Uppercase (C) incorrectly parsed as root subsection",
		},
	},
}

// Apply runs every rule registered for section against root's direct
// subsections, returning the reasons of every rule that actually removed
// something (useful for logging/diagnostics at the call site).
func Apply(root *provision.Provision, section string) []string {
	rules, ok := sectionOverrides[section]
	if !ok || root == nil {
		return nil
	}

	var applied []string
	kept := root.Subsections[:0:0]
	for _, sub := range root.Subsections {
		removed := false
		for _, rule := range rules {
			if rule.matches(sub) {
				applied = append(applied, rule.Reason)
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, sub)
		}
	}
	root.Subsections = kept

	return applied
}
