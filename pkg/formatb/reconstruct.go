// Package formatb parses the presentational XHTML source format described
// in spec.md §4.3: sections are delimited by "section-head" headings and
// provisions are distinguished only by CSS indentation classes and leading
// "(x)" numbering tokens, so the numbering classifier in pkg/numbering
// carries most of the disambiguation work.
package formatb

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/uscorpus/title18/pkg/provision"
)

// SectionNotFoundError is returned when no section-head heading for the
// requested section number is found in the document.
type SectionNotFoundError struct {
	Title   int
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("formatb: section %q not found (title %d)", e.Section, e.Title)
}

// Extract parses a presentational XHTML document for the given
// title/section and returns the uniform provision tree.
func Extract(r io.Reader, title int, section string, year int, sourceName string) (*provision.Provision, error) {
	content, err := decode(r)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("formatb: parse html: %w", err)
	}

	// The section sign may be followed by a plain, non-breaking, or narrow
	// no-break space before the number.
	marker := regexp.MustCompile(`§[\s\x{00A0}\x{202F}]*` + regexp.QuoteMeta(section) + `\.`)
	var header *goquery.Selection
	doc.Find("h3.section-head").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if marker.MatchString(s.Text()) {
			header = s
			return false
		}
		return true
	})
	if header == nil {
		return nil, &SectionNotFoundError{Title: title, Section: section}
	}

	sectionBase := provision.SectionBase(title, section)
	elements := flatten(header)
	subsections := fold(elements, sectionBase)

	heading := strings.TrimSpace(header.Text())
	heading = strings.ReplaceAll(heading, "§", "")
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, section+".")
	heading = strings.TrimSpace(heading)

	root := &provision.Provision{
		ID:      sectionBase,
		Tag:     provision.LevelSection.Tag(),
		Num:     "§ " + section + ".",
		Heading: heading,
		Level:   provision.LevelSection,
		Metadata: &provision.Metadata{
			Year:   year,
			Source: sourceName,
			Format: "xhtml",
		},
	}
	root.SetChildren(subsections)

	return root, nil
}
