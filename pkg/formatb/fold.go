package formatb

import (
	"github.com/uscorpus/title18/pkg/numbering"
	"github.com/uscorpus/title18/pkg/provision"
)

// parentStack tracks, per level, the deepest node currently open at that
// level. It backs both the id-building ("find nearest open ancestor") and
// the boolean occupancy numbering.Classify needs.
type parentStack [provision.MaxLevel + 1]*provision.Provision

// mask reduces the stack to the boolean shape numbering.Classify expects.
func (ps parentStack) mask() numbering.ParentStack {
	var m numbering.ParentStack
	for lvl, n := range ps {
		if n != nil {
			m[lvl] = true
		}
	}
	return m
}

// nearestParent returns the open node at the deepest populated level <=
// target, mirroring _find_parent's walk from target down to (but not
// including) the section root.
func (ps parentStack) nearestParent(target provision.Level) *provision.Provision {
	for lvl := target; lvl >= provision.LevelSubsection; lvl-- {
		if ps[lvl] != nil {
			return ps[lvl]
		}
	}
	return nil
}

// clearBelow drops every open node strictly deeper than lvl, since a new
// node at lvl closes off whatever subtree preceded it.
func (ps *parentStack) clearBelow(lvl provision.Level) {
	for l := lvl + 1; l <= provision.MaxLevel; l++ {
		ps[l] = nil
	}
}

func cleanToken(raw string) string {
	return provision.Unadorned(raw)
}

// fold runs Pass 2: turning the flat candidate list into a provision tree
// rooted at sectionBase, attaching every node to its nearest open ancestor
// as it goes (spec.md §4.3 Pass 2).
func fold(elements []rawElement, sectionBase string) []*provision.Provision {
	var root []*provision.Provision
	var stack parentStack
	var prevCSS provision.Level

	attach := func(n *provision.Provision) {
		if n.Level == provision.LevelSubsection {
			root = append(root, n)
		} else if parent := stack.nearestParent(n.Level - 1); parent != nil {
			parent.AppendChild(n)
		} else {
			root = append(root, n)
		}
		stack[n.Level] = n
		stack.clearBelow(n.Level)
	}

	for _, elem := range elements {
		if len(elem.nums) > 1 {
			nodes := foldCombined(elem, stack, sectionBase, prevCSS)
			for _, n := range nodes {
				attach(n)
			}
		} else {
			n := foldSingle(elem, stack, sectionBase, prevCSS)
			attach(n)
		}
		prevCSS = elem.cssLevel
	}

	return root
}

// foldSingle builds the one node for an element carrying a single
// numbering token, trusting a root-CSS-level token's number pattern but
// ignoring ancestry context for it (spec.md §4.3: "root CSS level" escape
// hatch, grounded in `_handle_single_number`'s is_root_css branch).
func foldSingle(elem rawElement, stack parentStack, sectionBase string, prevCSS provision.Level) *provision.Provision {
	raw := ""
	if len(elem.nums) > 0 {
		raw = elem.nums[0]
	}
	clean := cleanToken(raw)

	var level provision.Level
	if elem.isRootCSS {
		level = numbering.Classify(clean, elem.cssLevel, numbering.Empty(), prevCSS)
	} else {
		level = numbering.Classify(clean, elem.cssLevel, stack.mask(), prevCSS)
	}

	id := sectionBase
	if parent := stack.nearestParent(level - 1); parent != nil && clean != "" {
		id = parent.ID + "/" + clean
	} else if clean != "" {
		id = sectionBase + "/" + clean
	}

	return &provision.Provision{
		ID:    id,
		Tag:   level.Tag(),
		Num:   raw,
		Text:  elem.text,
		Level: level,
		Refs:  elem.refs,
	}
}

// foldCombined builds the chain of nodes for a combined numbering token
// like "(p)(1)" (subsequent numbers are children of the previous one) or a
// repealed run like "[(v), (w)]" (subsequent numbers are siblings at the
// same level), per spec.md §4.3 and `_handle_combined_number`.
func foldCombined(elem rawElement, stack parentStack, sectionBase string, prevCSS provision.Level) []*provision.Provision {
	var nodes []*provision.Provision

	for i, raw := range elem.nums {
		clean := cleanToken(raw)

		var level provision.Level
		switch {
		case i == 0:
			level = numbering.Classify(clean, elem.cssLevel, numbering.Empty(), prevCSS)
		case elem.isRepealed:
			level = numbering.Classify(clean, elem.cssLevel, numbering.Empty(), prevCSS)
		default:
			level = nodes[i-1].Level + 1
			if level > provision.MaxLevel {
				level = provision.MaxLevel
			}
		}

		text := ""
		if elem.isRepealed {
			text = elem.text
		} else if i == len(elem.nums)-1 {
			text = elem.text
		}

		var id string
		if i == 0 || elem.isRepealed {
			if parent := stack.nearestParent(level - 1); parent != nil {
				id = parent.ID + "/" + clean
			} else {
				id = sectionBase + "/" + clean
			}
		} else {
			id = nodes[i-1].ID + "/" + clean
		}

		node := &provision.Provision{
			ID:    id,
			Tag:   level.Tag(),
			Num:   raw,
			Text:  text,
			Level: level,
			Refs:  elem.refs,
		}
		nodes = append(nodes, node)
	}

	return nodes
}
