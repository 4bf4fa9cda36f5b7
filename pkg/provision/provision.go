// Package provision defines the recursive provision tree produced by the
// format extractors and consumed by the diff engines.
package provision

import "github.com/uscorpus/title18/pkg/refs"

// Level identifies a provision's depth in the USC hierarchy. The zero value
// is not a valid level; Section is the shallowest level this package models
// and is the level of the root node.
type Level int

const (
	LevelSection      Level = 4
	LevelSubsection   Level = 5
	LevelParagraph    Level = 6
	LevelSubparagraph Level = 7
	LevelClause       Level = 8
	LevelSubclause    Level = 9
)

// Tag returns the canonical lowercase name for a level, as used in the
// Provision.Tag field and in the JSON child-bucket keys.
func (lvl Level) Tag() string {
	switch lvl {
	case LevelSection:
		return "section"
	case LevelSubsection:
		return "subsection"
	case LevelParagraph:
		return "paragraph"
	case LevelSubparagraph:
		return "subparagraph"
	case LevelClause:
		return "clause"
	case LevelSubclause:
		return "subclause"
	default:
		return "unknown"
	}
}

// ChildBucketKey returns the JSON/field key used for a level's children
// when that level is used as a CHILD level (e.g. "subsections").
func (lvl Level) ChildBucketKey() string {
	switch lvl {
	case LevelSubsection:
		return "subsections"
	case LevelParagraph:
		return "paragraphs"
	case LevelSubparagraph:
		return "subparagraphs"
	case LevelClause:
		return "clauses"
	case LevelSubclause:
		return "subclauses"
	default:
		return ""
	}
}

// MaxLevel is the deepest level the hierarchy supports; subclauses never
// have children (spec.md §4.3, level-9 boundary).
const MaxLevel = LevelSubclause

// Metadata records provenance for a parsed tree's root.
type Metadata struct {
	Year   int    `json:"year"`
	Source string `json:"source"`
	Format string `json:"format"` // "xml" or "xhtml"
}

// Provision is one node of the recursive tree described in spec.md §3.
// SetChildren populates only the child bucket matching (Level+1);
// AppendChild populates the bucket matching the child's own level. The root
// node is a Provision at LevelSection.
type Provision struct {
	ID      string `json:"id"`
	Tag     string `json:"tag"`
	Num     string `json:"num"`
	Heading string `json:"heading,omitempty"`
	Text    string `json:"text"`
	Level   Level  `json:"-"`

	Refs []refs.Reference `json:"refs,omitempty"`

	Subsections   []*Provision `json:"subsections,omitempty"`
	Paragraphs    []*Provision `json:"paragraphs,omitempty"`
	Subparagraphs []*Provision `json:"subparagraphs,omitempty"`
	Clauses       []*Provision `json:"clauses,omitempty"`
	Subclauses    []*Provision `json:"subclauses,omitempty"`

	// Metadata is only set on the root (section) node.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Children returns this node's populated child bucket, i.e. the slice for
// Level+1. A leaf node (no children parsed) returns nil.
func (p *Provision) Children() []*Provision {
	switch p.Level + 1 {
	case LevelSubsection:
		return p.Subsections
	case LevelParagraph:
		return p.Paragraphs
	case LevelSubparagraph:
		return p.Subparagraphs
	case LevelClause:
		return p.Clauses
	case LevelSubclause:
		return p.Subclauses
	default:
		return nil
	}
}

// SetChildren replaces this node's child bucket for Level+1, leaving all
// other buckets nil. It is how extractors attach children without ever
// populating more than one bucket per node (spec.md invariant 3).
func (p *Provision) SetChildren(children []*Provision) {
	p.Subsections = nil
	p.Paragraphs = nil
	p.Subparagraphs = nil
	p.Clauses = nil
	p.Subclauses = nil

	switch p.Level + 1 {
	case LevelSubsection:
		p.Subsections = children
	case LevelParagraph:
		p.Paragraphs = children
	case LevelSubparagraph:
		p.Subparagraphs = children
	case LevelClause:
		p.Clauses = children
	case LevelSubclause:
		p.Subclauses = children
	}
}

// AppendChild appends a single child to the bucket for child.Level. When
// child.Level is not p.Level+1, that bucket is not the one Children (and so
// Walk) returns.
func (p *Provision) AppendChild(child *Provision) {
	switch child.Level {
	case LevelSubsection:
		p.Subsections = append(p.Subsections, child)
	case LevelParagraph:
		p.Paragraphs = append(p.Paragraphs, child)
	case LevelSubparagraph:
		p.Subparagraphs = append(p.Subparagraphs, child)
	case LevelClause:
		p.Clauses = append(p.Clauses, child)
	case LevelSubclause:
		p.Subclauses = append(p.Subclauses, child)
	}
}

// Walk visits p and every descendant in document order, depth-first.
func (p *Provision) Walk(visit func(*Provision)) {
	if p == nil {
		return
	}
	visit(p)
	for _, child := range p.Children() {
		child.Walk(visit)
	}
}
