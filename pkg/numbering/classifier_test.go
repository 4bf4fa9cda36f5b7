package numbering

import (
	"testing"

	"github.com/uscorpus/title18/pkg/provision"
)

func TestClassifyDigitsAreAlwaysParagraph(t *testing.T) {
	lvl := Classify("1", provision.LevelSubsection, Empty(), 0)
	if lvl != provision.LevelParagraph {
		t.Fatalf("Classify(%q) = %v, want paragraph", "1", lvl)
	}
}

func TestClassifySingleLowercaseLetter(t *testing.T) {
	// No deep nesting: shallow subsection.
	if lvl := Classify("a", provision.LevelSubsection, Empty(), 0); lvl != provision.LevelSubsection {
		t.Errorf("shallow (a) = %v, want subsection", lvl)
	}

	// Parent populated at subparagraph: ambiguous letter resolves to clause.
	var parents ParentStack
	parents[provision.LevelSubparagraph] = true
	if lvl := Classify("i", provision.LevelClause, parents, 0); lvl != provision.LevelClause {
		t.Errorf("nested (i) = %v, want clause", lvl)
	}
}

func TestClassifySingleUppercaseLetter(t *testing.T) {
	if lvl := Classify("A", provision.LevelSubparagraph, Empty(), 0); lvl != provision.LevelSubparagraph {
		t.Errorf("shallow (A) = %v, want subparagraph", lvl)
	}

	var parents ParentStack
	parents[provision.LevelClause] = true
	if lvl := Classify("I", provision.LevelSubclause, parents, 0); lvl != provision.LevelSubclause {
		t.Errorf("nested (I) = %v, want subclause", lvl)
	}
}

func TestClassifyCSSDecreaseOverridesContext(t *testing.T) {
	var parents ParentStack
	parents[provision.LevelClause] = true
	parents[provision.LevelSubclause] = true

	// (B) would normally resolve to subclause given this parent stack, but
	// a CSS decrease from the previous element (subclause -> clause) must
	// win and trust the indentation hint directly.
	lvl := Classify("B", provision.LevelClause, parents, provision.LevelSubclause)
	if lvl != provision.LevelClause {
		t.Fatalf("Classify with CSS decrease = %v, want clause", lvl)
	}
}

func TestClassifyMultiCharRoman(t *testing.T) {
	if lvl := Classify("iv", provision.LevelSubsection, Empty(), 0); lvl != provision.LevelClause {
		t.Errorf("(iv) = %v, want clause", lvl)
	}
	if lvl := Classify("IV", provision.LevelSubsection, Empty(), 0); lvl != provision.LevelSubclause {
		t.Errorf("(IV) = %v, want subclause", lvl)
	}
}

func TestClassifyFallsBackToCSSHint(t *testing.T) {
	if lvl := Classify("!!", provision.LevelParagraph, Empty(), 0); lvl != provision.LevelParagraph {
		t.Errorf("fallback = %v, want the css hint (paragraph)", lvl)
	}
}
