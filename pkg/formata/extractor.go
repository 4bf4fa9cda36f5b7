// Package formata parses the native-markup (USLM-style XML) source format
// described in spec.md §4.2: an explicit identifier attribute locates each
// section, and direct-child chapeau/content elements carry a provision's
// own text.
package formata

import (
	"fmt"
	"io"
	"strings"

	"github.com/uscorpus/title18/pkg/provision"
	"github.com/uscorpus/title18/pkg/refs"
)

// SectionNotFoundError is returned when the identifier attribute for the
// requested section does not appear anywhere in the document.
type SectionNotFoundError struct {
	Title   int
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("formata: section %q not found (title %d)", e.Section, e.Title)
}

// structuralTags lists the five child levels in the order their buckets
// are populated, shallow to deep.
var structuralTags = []struct {
	tag   string
	level provision.Level
}{
	{"subsection", provision.LevelSubsection},
	{"paragraph", provision.LevelParagraph},
	{"subparagraph", provision.LevelSubparagraph},
	{"clause", provision.LevelClause},
	{"subclause", provision.LevelSubclause},
}

// Extract parses a native-markup document for the given title/section and
// returns the uniform provision tree. sourceName is recorded in the root's
// metadata for provenance.
func Extract(r io.Reader, title int, section string, year int, sourceName string) (*provision.Provision, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	id := provision.SectionBase(title, section)
	sectionNode := doc.findByIdentifier(id)
	if sectionNode == nil {
		return nil, &SectionNotFoundError{Title: title, Section: section}
	}

	root := buildProvision(sectionNode, provision.LevelSection)
	root.Metadata = &provision.Metadata{Year: year, Source: sourceName, Format: "xml"}
	return root, nil
}

// buildProvision recursively converts an XML element into a Provision,
// taking direct-child num/heading/chapeau/content only and recursing into
// direct structural children one level at a time (spec.md §4.2).
func buildProvision(n *node, level provision.Level) *provision.Provision {
	p := &provision.Provision{
		ID:    n.attrs["identifier"],
		Tag:   level.Tag(),
		Level: level,
	}

	if numNode := n.directChild("num"); numNode != nil {
		p.Num = strings.TrimSpace(numNode.allText())
	}
	if headingNode := n.directChild("heading"); headingNode != nil {
		p.Heading = strings.TrimSpace(headingNode.allText())
	}

	// Prefer chapeau (introductory text before children) over content
	// (leaf text); never both, and never text from nested structural
	// children.
	textNode := n.directChild("chapeau")
	if textNode == nil {
		textNode = n.directChild("content")
	}
	if textNode != nil {
		p.Text = strings.TrimSpace(textNode.allText())
		p.Refs = extractRefs(textNode)
	}

	for _, st := range structuralTags {
		children := n.directChildren(st.tag)
		if len(children) == 0 {
			continue
		}
		built := make([]*provision.Provision, 0, len(children))
		for _, c := range children {
			built = append(built, buildProvision(c, st.level))
		}
		p.SetChildren(built)
	}

	return p
}

// extractRefs finds every descendant "ref" element with an href attribute
// inside a text node (chapeau/content), matching the original's
// `.//uslm:ref[@href]` search scoped to that single text element.
func extractRefs(textNode *node) []refs.Reference {
	refElems := textNode.findAllByTag("ref")
	var out []refs.Reference
	for _, re := range refElems {
		href, ok := re.attrs["href"]
		if !ok || href == "" {
			continue
		}
		out = append(out, refs.Reference{
			Target:  href,
			Display: re.directText(),
		})
	}
	return out
}
