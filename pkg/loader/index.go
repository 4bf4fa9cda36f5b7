package loader

import (
	"os"
	"regexp"
	"sort"
)

// sectionIndex answers "does source X contain section Y" in O(1) after a
// one-time cheap scan (identifier or heading match only — no full parse),
// per spec.md §4.5.
type sectionIndex struct {
	bySection map[string]map[int]bool // section -> set of years available
}

var (
	xmlIdentifierRe = regexp.MustCompile(`identifier="/us/usc/t\d+/s(\w[\w-]*)"`)
	xhtmlHeadingRe  = regexp.MustCompile(`section-head[^>]*>\s*(?:§|&#167;|&sect;)(?:\s|\x{00A0}|\x{202F}|&#160;|&nbsp;|&#8239;)*(\w[\w-]*)\.`)
)

// buildSectionIndex scans every configured source file once, recording
// which sections it mentions. A missing source file is treated as
// contributing no sections for that year, matching the "missing source ⇒
// absent for that year" failure policy in spec.md §4.5/§7.
func buildSectionIndex(cfg Config) *sectionIndex {
	idx := &sectionIndex{bySection: make(map[string]map[int]bool)}

	for _, src := range cfg.Sources {
		data, err := os.ReadFile(src.Filename)
		if err != nil {
			continue
		}

		var matches [][]string
		switch src.Format {
		case FormatXML:
			matches = xmlIdentifierRe.FindAllStringSubmatch(string(data), -1)
		case FormatXHTML:
			matches = xhtmlHeadingRe.FindAllStringSubmatch(string(data), -1)
		default:
			continue
		}

		for _, m := range matches {
			section := m[1]
			if idx.bySection[section] == nil {
				idx.bySection[section] = make(map[int]bool)
			}
			idx.bySection[section][src.Year] = true
		}
	}

	return idx
}

func (idx *sectionIndex) years(section string) []int {
	years := idx.bySection[section]
	out := make([]int, 0, len(years))
	for y := range years {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func (idx *sectionIndex) has(section string, year int) bool {
	years := idx.bySection[section]
	return years != nil && years[year]
}

func (idx *sectionIndex) sections() []string {
	out := make([]string, 0, len(idx.bySection))
	for s := range idx.bySection {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
