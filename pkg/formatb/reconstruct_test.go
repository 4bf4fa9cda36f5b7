package formatb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uscorpus/title18/pkg/provision"
)

func loadFixture(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "section_999_2022.xhtml"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func extractFixture(t *testing.T) *provision.Provision {
	t.Helper()
	root, err := Extract(loadFixture(t), 18, "999", 2022, "section_999_2022.xhtml")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return root
}

func findSubsection(root *provision.Provision, num string) *provision.Provision {
	for _, s := range root.Subsections {
		if s.Num == "("+num+")" {
			return s
		}
	}
	return nil
}

func TestExtractStopsAtNextSectionHeader(t *testing.T) {
	root := extractFixture(t)
	for _, s := range root.Subsections {
		if s.Text == "text that belongs to the next section and must not be captured." {
			t.Fatalf("leaked content from the following section: %+v", s)
		}
	}
}

func TestExtractSingleOpenerWithRef(t *testing.T) {
	root := extractFixture(t)
	a := findSubsection(root, "a")
	if a == nil {
		t.Fatal("subsection (a) not found")
	}
	if len(a.Paragraphs) != 1 {
		t.Fatalf("len(a.Paragraphs) = %d, want 1", len(a.Paragraphs))
	}
	if len(a.Refs) != 1 || a.Refs[0].Target != "/us/usc/t18/s921" {
		t.Errorf("a.Refs = %+v", a.Refs)
	}
}

func TestExtractCombinedNumberNestsChild(t *testing.T) {
	root := extractFixture(t)
	p := findSubsection(root, "p")
	if p == nil {
		t.Fatal("subsection (p) not found")
	}
	if len(p.Paragraphs) != 1 {
		t.Fatalf("len(p.Paragraphs) = %d, want 1", len(p.Paragraphs))
	}
	if p.Text != "" {
		t.Errorf("combined opener (p) should have empty text, got %q", p.Text)
	}
	if p.Paragraphs[0].Text == "" {
		t.Errorf("combined child (1) should carry the text")
	}
}

func TestExtractRepealedSiblingsShareLevel(t *testing.T) {
	root := extractFixture(t)
	v := findSubsection(root, "v")
	w := findSubsection(root, "w")
	if v == nil || w == nil {
		t.Fatalf("repealed siblings not found: v=%v w=%v", v, w)
	}
	if v.Level != provision.LevelSubsection || w.Level != provision.LevelSubsection {
		t.Errorf("repealed siblings not at subsection level: v=%v w=%v", v.Level, w.Level)
	}
	if v.Text != w.Text {
		t.Errorf("repealed siblings should share text: v=%q w=%q", v.Text, w.Text)
	}
}

func TestExtractGapPatternRecognizesNewRootSubsection(t *testing.T) {
	root := extractFixture(t)
	x := findSubsection(root, "x")
	if x == nil {
		t.Fatal("subsection (x) not recognized as a new root subsection after the repeal gap")
	}
	if x.Level != provision.LevelSubsection {
		t.Errorf("(x).Level = %v, want subsection", x.Level)
	}
}

func TestExtractDeepCombinedNesting(t *testing.T) {
	root := extractFixture(t)
	z := findSubsection(root, "z")
	if z == nil {
		t.Fatal("subsection (z) not found")
	}
	p3 := z.Paragraphs[0]
	subC := p3.Subparagraphs[0]
	clauseI := subC.Clauses[0]
	if len(clauseI.Subclauses) != 1 {
		t.Fatalf("len(clauseI.Subclauses) = %d, want 1", len(clauseI.Subclauses))
	}
	if clauseI.ID != "/us/usc/t18/s999/z/3/C/i" {
		t.Errorf("clauseI.ID = %q", clauseI.ID)
	}
}

func TestExtractCSSDecreasePopsUpWithoutRecursingIntoDeepContext(t *testing.T) {
	root := extractFixture(t)
	z := findSubsection(root, "z")
	p3 := z.Paragraphs[0]
	subC := p3.Subparagraphs[0]

	if len(subC.Clauses) != 2 {
		t.Fatalf("len(subC.Clauses) = %d, want 2 (i) and (B)", len(subC.Clauses))
	}
	b := subC.Clauses[1]
	if b.Num != "(B)" {
		t.Errorf("second clause Num = %q, want (B)", b.Num)
	}
	if b.Level != provision.LevelClause {
		t.Errorf("(B) after css decrease = %v, want clause", b.Level)
	}
}
