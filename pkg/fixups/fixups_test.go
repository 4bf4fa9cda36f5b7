package fixups

import (
	"testing"

	"github.com/uscorpus/title18/pkg/provision"
)

func TestApplyRemovesDuplicateRepealedV(t *testing.T) {
	root := &provision.Provision{ID: "/us/usc/t18/s922", Level: provision.LevelSection}
	kept := &provision.Provision{ID: "/us/usc/t18/s922/u", Level: provision.LevelSubsection}
	duplicate := &provision.Provision{ID: "/us/usc/t18/s922/v", Level: provision.LevelSubsection, Text: "Repealed. Pub. L. 90-618."}
	root.SetChildren([]*provision.Provision{kept, duplicate})

	reasons := Apply(root, "922")

	if len(reasons) != 1 {
		t.Fatalf("Apply returned %d reasons, want 1: %v", len(reasons), reasons)
	}
	if len(root.Subsections) != 1 || root.Subsections[0].ID != kept.ID {
		t.Fatalf("Subsections after Apply = %+v", root.Subsections)
	}
}

func TestApplyRemovesMisplacedRootC(t *testing.T) {
	root := &provision.Provision{ID: "/us/usc/t18/s922", Level: provision.LevelSection}
	misplaced := &provision.Provision{
		ID:    "/us/usc/t18/s922/C",
		Level: provision.LevelSubsection,
		Text:  "If a chief law enforcement officer of the locality certifies that the applicant has a need.",
	}
	root.SetChildren([]*provision.Provision{misplaced})

	Apply(root, "922")

	if len(root.Subsections) != 0 {
		t.Fatalf("Subsections after Apply = %+v, want empty", root.Subsections)
	}
}

func TestApplyNoRulesForUnknownSection(t *testing.T) {
	root := &provision.Provision{ID: "/us/usc/t18/s1", Level: provision.LevelSection}
	sub := &provision.Provision{ID: "/us/usc/t18/s1/a", Level: provision.LevelSubsection}
	root.SetChildren([]*provision.Provision{sub})

	reasons := Apply(root, "1")

	if reasons != nil {
		t.Fatalf("Apply returned reasons for unconfigured section: %v", reasons)
	}
	if len(root.Subsections) != 1 {
		t.Fatalf("Subsections mutated for unconfigured section: %+v", root.Subsections)
	}
}

func TestApplyDoesNotRemoveUnrelatedVWithoutRepealedText(t *testing.T) {
	root := &provision.Provision{ID: "/us/usc/t18/s922", Level: provision.LevelSection}
	notRepealed := &provision.Provision{ID: "/us/usc/t18/s922/v", Level: provision.LevelSubsection, Text: "Definitions for this subsection."}
	root.SetChildren([]*provision.Provision{notRepealed})

	Apply(root, "922")

	if len(root.Subsections) != 1 {
		t.Fatalf("rule removed a (v) that did not contain 'Repealed': %+v", root.Subsections)
	}
}
