package formatb

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/uscorpus/title18/pkg/provision"
	"github.com/uscorpus/title18/pkg/refs"
)

// rawElement is one candidate provision surfaced by Pass 1, before the
// numbering tokens have been resolved into a hierarchy (spec.md §4.3
// Pass 1).
type rawElement struct {
	cssLevel   provision.Level
	nums       []string // raw tokens, e.g. "(a)", "(1)"
	text       string
	refs       []refs.Reference
	isRootCSS  bool
	isRepealed bool
}

var classToLevel = map[string]provision.Level{
	"statutory-body":     provision.LevelSubsection,
	"statutory-body-1em": provision.LevelParagraph,
	"statutory-body-2em": provision.LevelSubparagraph,
	"statutory-body-3em": provision.LevelClause,
	"statutory-body-4em": provision.LevelSubclause,
}

// cssLevelFromClass maps a paragraph's leading CSS class to its
// indentation-level hint (spec.md §4.3 "CSS hint"). Unrecognized classes
// default to the shallowest level, matching the original's
// CLASS_TO_LEVEL.get(css_class, 5).
func cssLevelFromClass(class string) provision.Level {
	if lvl, ok := classToLevel[firstClass(class)]; ok {
		return lvl
	}
	return provision.LevelSubsection
}

// firstClass returns the first whitespace-separated class name, mirroring
// bs4's `css_class[0]` over its already-split class list.
func firstClass(class string) string {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// numberToken matches a single leading "(x)" provision number, optionally
// followed by a comma/space separator, mirroring
// `re.match(r'^[\(]([a-zA-Z0-9]+)[\)][\s,]*', text)`.
var numberToken = regexp.MustCompile(`^\(([a-zA-Z0-9]+)\)[\s,]*`)

// parseProvisionNumbers extracts every consecutive leading "(x)" token from
// text, reporting whether the run opened with a repealed-provision "["
// bracket (spec.md §4.3, combined/repealed numbering).
func parseProvisionNumbers(text string) (nums []string, remaining string, isRepealed bool) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "[") {
		text = strings.TrimSpace(text[1:])
		isRepealed = true
	}

	for {
		m := numberToken.FindStringSubmatchIndex(text)
		if m == nil {
			break
		}
		nums = append(nums, "("+text[m[2]:m[3]]+")")
		text = strings.TrimSpace(text[m[1]:])
	}

	return nums, text, isRepealed
}

// directTextOnly concatenates a paragraph's own direct text nodes plus the
// text of direct inline em/a/span children, skipping any nested <p> child
// provisions (spec.md §4.3 "direct text only"; grounded in
// original_source's `_extract_direct_text_only`).
func directTextOnly(sel *goquery.Selection) string {
	var parts []string
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		n := c.Nodes[0]
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
		case html.ElementNode:
			switch n.Data {
			case "em", "a", "span":
				parts = append(parts, c.Text())
			}
		}
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}

// extractRefsFromSelection finds every <a href> descendant of sel (spec.md
// §9 open question (c): only the anchor's own text is captured, not text
// from elements nested inside it).
func extractRefsFromSelection(sel *goquery.Selection) []refs.Reference {
	var out []refs.Reference
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		out = append(out, refs.Reference{Target: href, Display: a.Text()})
	})
	return out
}

// flatten runs Pass 1 over every <p> sibling following header until the
// next section-head h3, producing the flat candidate list consumed by
// fold (Pass 2).
func flatten(header *goquery.Selection) []rawElement {
	var elements []rawElement

	header.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node := s.Nodes[0]
		if node.Type != html.ElementNode {
			return true
		}
		if node.Data == "h3" && s.HasClass("section-head") {
			return false
		}
		if node.Data != "p" {
			return true
		}

		class, _ := s.Attr("class")
		cssLevel := cssLevelFromClass(class)
		isRootCSS := firstClass(class) == "statutory-body"

		textContent := directTextOnly(s)
		nums, cleanText, isRepealed := parseProvisionNumbers(textContent)
		if len(nums) == 0 {
			// Continuation text, not a new provision.
			return true
		}

		elements = append(elements, rawElement{
			cssLevel:   cssLevel,
			nums:       nums,
			text:       cleanText,
			refs:       extractRefsFromSelection(s),
			isRootCSS:  isRootCSS,
			isRepealed: isRepealed,
		})
		return true
	})

	return elements
}
