// Package hierdiff implements the hierarchical diff engine of spec.md
// §4.7: a recursive parallel tree walk producing per-node status plus
// inline word/sentence diff spans for changed text.
package hierdiff

import (
	"strings"

	"github.com/uscorpus/title18/pkg/provision"
)

// Status classifies how a matched (or unmatched) node changed.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
)

// Node is one entry in the hierarchical diff output.
type Node struct {
	ID       string
	Level    provision.Level
	Num      string
	Heading  string
	Status   Status
	Inline   []Span // only set when Status == Modified and text changed
	Children []Node
}

// Granularity selects how inline text diffs are tokenized.
type Granularity string

const (
	GranularityWord     Granularity = "word"
	GranularitySentence Granularity = "sentence"
)

// Diff recursively compares old and new (the roots of two trees for the
// same section-year pair, or nil for a one-sided add/remove) and returns
// the matched node plus its aligned children.
func Diff(oldNode, newNode *provision.Provision, gran Granularity) Node {
	switch {
	case oldNode == nil && newNode != nil:
		return wholeSubtree(newNode, StatusAdded)
	case oldNode != nil && newNode == nil:
		return wholeSubtree(oldNode, StatusRemoved)
	case oldNode == nil && newNode == nil:
		return Node{}
	}

	status := StatusUnchanged
	var inline []Span
	oldText, newText := strings.TrimSpace(oldNode.Text), strings.TrimSpace(newNode.Text)
	if oldText != newText {
		status = StatusModified
		inline = diffText(oldText, newText, gran)
	}

	children := diffChildren(oldNode.Children(), newNode.Children(), gran)
	if status == StatusUnchanged {
		for _, c := range children {
			if c.Status != StatusUnchanged {
				status = StatusModified
				break
			}
		}
	}

	return Node{
		ID:       newNode.ID,
		Level:    newNode.Level,
		Num:      newNode.Num,
		Heading:  newNode.Heading,
		Status:   status,
		Inline:   inline,
		Children: children,
	}
}

// wholeSubtree builds a Node tree for a side with no counterpart: it
// recurses through every descendant, and each one gets the same status
// (spec.md §4.7). No text comparison or inline diff is made.
func wholeSubtree(n *provision.Provision, status Status) Node {
	children := n.Children()
	out := make([]Node, 0, len(children))
	for _, c := range children {
		out = append(out, wholeSubtree(c, status))
	}
	return Node{
		ID:       n.ID,
		Level:    n.Level,
		Num:      n.Num,
		Heading:  n.Heading,
		Status:   status,
		Children: out,
	}
}

// diffChildren aligns children by id: matched ids recurse, unmatched old
// children become whole-subtree removed entries, unmatched new children
// become whole-subtree added entries, all in the new-side's document order
// followed by any purely-old leftovers in the old-side's order.
func diffChildren(oldChildren, newChildren []*provision.Provision, gran Granularity) []Node {
	oldByID := make(map[string]*provision.Provision, len(oldChildren))
	for _, c := range oldChildren {
		oldByID[c.ID] = c
	}
	matchedOld := make(map[string]bool, len(oldChildren))

	var out []Node
	for _, nc := range newChildren {
		oc := oldByID[nc.ID]
		if oc != nil {
			matchedOld[nc.ID] = true
			out = append(out, Diff(oc, nc, gran))
		} else {
			out = append(out, Diff(nil, nc, gran))
		}
	}
	for _, oc := range oldChildren {
		if !matchedOld[oc.ID] {
			out = append(out, Diff(oc, nil, gran))
		}
	}
	return out
}
