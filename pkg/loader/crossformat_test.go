package loader

import (
	"os"
	"sort"
	"testing"

	"github.com/uscorpus/title18/pkg/formata"
	"github.com/uscorpus/title18/pkg/formatb"
	"github.com/uscorpus/title18/pkg/provision"
)

// idSet collects the canonical id of every node in a tree (spec.md S4).
func idSet(root *provision.Provision) []string {
	var ids []string
	root.Walk(func(p *provision.Provision) { ids = append(ids, p.ID) })
	sort.Strings(ids)
	return ids
}

func TestCrossFormatIDSetsAreEqualForEquivalentContent(t *testing.T) {
	xmlFile, err := os.Open("testdata/crossformat/111.xml")
	if err != nil {
		t.Fatalf("open xml fixture: %v", err)
	}
	defer xmlFile.Close()
	xmlTree, err := formata.Extract(xmlFile, 18, "111", 2022, "111.xml")
	if err != nil {
		t.Fatalf("formata.Extract: %v", err)
	}

	xhtmlFile, err := os.Open("testdata/crossformat/111.xhtml")
	if err != nil {
		t.Fatalf("open xhtml fixture: %v", err)
	}
	defer xhtmlFile.Close()
	xhtmlTree, err := formatb.Extract(xhtmlFile, 18, "111", 2018, "111.xhtml")
	if err != nil {
		t.Fatalf("formatb.Extract: %v", err)
	}

	xmlIDs := idSet(xmlTree)
	xhtmlIDs := idSet(xhtmlTree)

	if len(xmlIDs) != len(xhtmlIDs) {
		t.Fatalf("id count mismatch: xml = %v, xhtml = %v", xmlIDs, xhtmlIDs)
	}
	for i := range xmlIDs {
		if xmlIDs[i] != xhtmlIDs[i] {
			t.Fatalf("id sets differ: xml = %v, xhtml = %v", xmlIDs, xhtmlIDs)
		}
	}
}
