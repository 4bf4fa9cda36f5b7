// Package numbering implements the context-aware level classifier described
// in spec.md §4.1: given a numbering token and the parsing context, decide
// which of the five provision levels it belongs to.
package numbering

import "github.com/uscorpus/title18/pkg/provision"

// ParentStack tracks, for each populated level 5..9, whether an ancestor
// currently occupies that level. Pass2 of the formatb reconstructor owns
// the live instance; classification only reads it.
type ParentStack [provision.MaxLevel + 1]bool

// Populated reports whether the stack has an entry at lvl.
func (ps ParentStack) Populated(lvl provision.Level) bool {
	if lvl < 0 || int(lvl) >= len(ps) {
		return false
	}
	return ps[lvl]
}

// Empty returns a stack with nothing populated, used when classifying the
// first token of a combined number or a root-CSS-level token (spec.md §4.1
// exception and §4.3 "is_root_css" handling): prior deep nesting must not
// leak into the decision for what is clearly a shallow opener.
func Empty() ParentStack { return ParentStack{} }

func isLowercaseRomanAlphabet(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case 'i', 'v', 'x', 'l', 'c', 'd', 'm':
		default:
			return false
		}
	}
	return true
}

func isUppercaseRomanAlphabet(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isSingleLower(s string) bool {
	if len(s) != 1 {
		return false
	}
	r := rune(s[0])
	return r >= 'a' && r <= 'z'
}

func isSingleUpper(s string) bool {
	if len(s) != 1 {
		return false
	}
	r := rune(s[0])
	return r >= 'A' && r <= 'Z'
}

// Classify implements the decision order of spec.md §4.1.
//
//   - cleanNum: the unadorned numbering token, e.g. "a", "1", "iv".
//   - cssHint: the indentation-level hint observed in the source (5-9).
//   - parents: the current parent stack.
//   - prevCSSHint: the indentation-level hint of the previous element in
//     document order (0 if there was none).
func Classify(cleanNum string, cssHint provision.Level, parents ParentStack, prevCSSHint provision.Level) provision.Level {
	// Rule 1: pure digits are always a paragraph. Absolute — the legal
	// hierarchy mandates paragraphs are digits.
	if isAllDigits(cleanNum) {
		return provision.LevelParagraph
	}

	// Rule 2: a CSS decrease from the previous element means we are popping
	// back up the hierarchy; trust the indentation hint directly.
	if prevCSSHint > 0 && cssHint < prevCSSHint {
		return cssHint
	}

	// Rule 3: single lowercase letter - subsection vs. clause, disambiguated
	// by whether we're already nested under a subparagraph/clause/subclause.
	if isSingleLower(cleanNum) {
		if parents.Populated(provision.LevelSubparagraph) ||
			parents.Populated(provision.LevelClause) ||
			parents.Populated(provision.LevelSubclause) {
			return provision.LevelClause
		}
		return provision.LevelSubsection
	}

	// Rule 4: single uppercase letter - subparagraph vs. subclause, one
	// level deeper than rule 3's thresholds.
	if isSingleUpper(cleanNum) {
		if parents.Populated(provision.LevelClause) ||
			parents.Populated(provision.LevelSubclause) {
			return provision.LevelSubclause
		}
		return provision.LevelSubparagraph
	}

	// Rule 5: multi-character lowercase roman numeral -> clause.
	if len(cleanNum) > 1 && isLowercaseRomanAlphabet(cleanNum) {
		return provision.LevelClause
	}

	// Rule 6: multi-character uppercase roman numeral -> subclause.
	if len(cleanNum) > 1 && isUppercaseRomanAlphabet(cleanNum) {
		return provision.LevelSubclause
	}

	// Rule 7: fall back to the indentation hint.
	return cssHint
}
