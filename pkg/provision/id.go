package provision

import (
	"strconv"
	"strings"
)

func isStripRune(r rune) bool {
	switch r {
	case '(', ')', '§', '.', ',', ' ', ' ', ' ':
		// ')', '(' parens; section sign; period/comma separators; plain
		// space, non-breaking space, and narrow no-break space, all of
		// which the USC sources use around "§ 922." and between
		// combined numbering tokens.
		return true
	default:
		return false
	}
}

// Unadorned strips the decoration from a raw numbering token so it can be
// used as a path segment in a canonical id, e.g. "(a)" -> "a",
// "§ 922." -> "922".
func Unadorned(num string) string {
	return strings.TrimFunc(num, isStripRune)
}

// SectionBase builds the canonical root id for a section of a title, e.g.
// SectionBase(18, "922") -> "/us/usc/t18/s922".
func SectionBase(title int, section string) string {
	return "/us/usc/t" + strconv.Itoa(title) + "/s" + section
}

// ChildID builds a child's canonical id from its parent's id and its own
// raw numbering token.
func ChildID(parentID, num string) string {
	return parentID + "/" + Unadorned(num)
}
