// Package structdiff implements the flat, id-keyed structural diff engine
// of spec.md §4.6: no semantic alignment, just lexicographic comparison by
// canonical id.
package structdiff

import (
	"sort"
	"strings"

	"github.com/uscorpus/title18/pkg/provision"
	"github.com/uscorpus/title18/pkg/refs"
)

// Status classifies how an id's node changed between two trees.
type Status string

const (
	StatusAdded     Status = "added"
	StatusDeleted   Status = "deleted"
	StatusModified  Status = "modified"
	StatusUnchanged Status = "unchanged"
)

// summary is the flattened shape of one node, per spec.md §4.6 step 1.
type summary struct {
	id         string
	num        string
	tag        string
	text       string
	refs       []refs.Reference
	childLevel provision.Level
	childCount int
}

// Entry is one row of the diff output.
type Entry struct {
	Status Status
	ID     string
	Old    *provision.Provision
	New    *provision.Provision
}

// Stats is the companion statistics tuple for a Diff call.
type Stats struct {
	Added     int
	Deleted   int
	Modified  int
	Unchanged int
	Total     int
}

// flatten walks tree into an id -> summary map. A node with no id has one
// synthesized by walking from the section base and appending cleaned
// numbering tokens, so degenerate inputs still align deterministically
// (spec.md §4.6 step 1).
func flatten(root *provision.Provision) map[string]summaryNode {
	out := make(map[string]summaryNode)
	if root == nil {
		return out
	}

	var walk func(n *provision.Provision, fallbackID string)
	walk = func(n *provision.Provision, fallbackID string) {
		id := n.ID
		if id == "" {
			id = fallbackID
		}

		children := n.Children()

		out[id] = summaryNode{node: n, id: id}

		for _, c := range children {
			childFallback := id + "/" + provision.Unadorned(c.Num)
			walk(c, childFallback)
		}
	}
	walk(root, root.ID)

	return out
}

// summaryNode pairs a synthesized id with the original node, so callers
// retain the full node for reporting while diffing only compares the
// lightweight summary fields.
type summaryNode struct {
	node *provision.Provision
	id   string
}

func (sn summaryNode) toSummary() summary {
	n := sn.node
	children := n.Children()
	var childLevel provision.Level
	if len(children) > 0 {
		childLevel = children[0].Level
	}
	return summary{
		id:         sn.id,
		num:        n.Num,
		tag:        n.Tag,
		text:       n.Text,
		refs:       n.Refs,
		childLevel: childLevel,
		childCount: len(children),
	}
}

// Diff compares two trees and returns the ordered diff entries plus
// summary statistics (spec.md §4.6).
func Diff(t1, t2 *provision.Provision) ([]Entry, Stats) {
	m1 := flatten(t1)
	m2 := flatten(t2)

	keySet := make(map[string]bool, len(m1)+len(m2))
	for k := range m1 {
		keySet[k] = true
	}
	for k := range m2 {
		keySet[k] = true
	}
	ids := make([]string, 0, len(keySet))
	for k := range keySet {
		ids = append(ids, k)
	}
	sort.Strings(ids)

	var entries []Entry
	var stats Stats

	for _, id := range ids {
		n1, ok1 := m1[id]
		n2, ok2 := m2[id]

		switch {
		case !ok1 && ok2:
			entries = append(entries, Entry{Status: StatusAdded, ID: id, New: n2.node})
			stats.Added++
		case ok1 && !ok2:
			entries = append(entries, Entry{Status: StatusDeleted, ID: id, Old: n1.node})
			stats.Deleted++
		default:
			s1, s2 := n1.toSummary(), n2.toSummary()
			status := compare(s1, s2)
			entries = append(entries, Entry{Status: status, ID: id, Old: n1.node, New: n2.node})
			switch status {
			case StatusModified:
				stats.Modified++
			default:
				stats.Unchanged++
			}
		}
	}
	stats.Total = len(ids)

	return entries, stats
}

// compare implements spec.md §4.6 step 3: equal text still needs a
// structural check, broadened beyond the original's empty-text-only
// special case (SPEC_FULL.md §3) — a provision whose own text is
// identical but whose children were added or removed is a real
// structural change regardless of whether the text happens to be empty.
func compare(s1, s2 summary) Status {
	if strings.TrimSpace(s1.text) != strings.TrimSpace(s2.text) {
		return StatusModified
	}
	if s1.childLevel != s2.childLevel || s1.childCount != s2.childCount {
		return StatusModified
	}
	return StatusUnchanged
}
