// Package loader implements the section loader contracts of spec.md §4.5:
// year-to-format dispatch, at-most-once parsing per (section, year), and a
// cheap section-number index for O(1) availability checks.
package loader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/uscorpus/title18/pkg/fixups"
	"github.com/uscorpus/title18/pkg/formata"
	"github.com/uscorpus/title18/pkg/formatb"
	"github.com/uscorpus/title18/pkg/provision"
)

type cacheKey struct {
	section string
	year    int
}

// Loader owns the two pieces of shared mutable state spec.md §5 names:
// the parse cache and the section index. Parse-cache access is serialised
// per (section, year) via singleflight so concurrent requests for the same
// pair observe at-most-one actual parse; the section index is built once
// and read without locking afterward.
type Loader struct {
	cfg Config

	mu    sync.RWMutex
	cache map[cacheKey]*provision.Provision
	sf    singleflight.Group

	indexOnce sync.Once
	index     *sectionIndex
}

// New constructs a Loader over cfg. The section index is built lazily on
// first use, not eagerly here, so that constructing a Loader never touches
// the filesystem.
func New(cfg Config) *Loader {
	return &Loader{
		cfg:   cfg,
		cache: make(map[cacheKey]*provision.Provision),
	}
}

func (l *Loader) ensureIndex() *sectionIndex {
	l.indexOnce.Do(func() {
		l.index = buildSectionIndex(l.cfg)
	})
	return l.index
}

func (l *Loader) sourceFor(year int) (SourceConfig, bool) {
	for _, src := range l.cfg.Sources {
		if src.Year == year {
			return src, true
		}
	}
	return SourceConfig{}, false
}

// GetSection returns the parsed tree for (section, year), parsing at most
// once per pair for the Loader's lifetime.
func (l *Loader) GetSection(section string, year int) (*provision.Provision, error) {
	key := cacheKey{section: section, year: year}

	l.mu.RLock()
	if tree, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return tree, nil
	}
	l.mu.RUnlock()

	sfKey := section + "|" + strconv.Itoa(year)
	v, err, _ := l.sf.Do(sfKey, func() (interface{}, error) {
		// Re-check under the singleflight key in case another caller
		// already populated it while we were waiting to enter Do.
		l.mu.RLock()
		if tree, ok := l.cache[key]; ok {
			l.mu.RUnlock()
			return tree, nil
		}
		l.mu.RUnlock()

		tree, err := l.parse(section, year)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[key] = tree
		l.mu.Unlock()

		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*provision.Provision), nil
}

func (l *Loader) parse(section string, year int) (*provision.Provision, error) {
	src, ok := l.sourceFor(year)
	if !ok {
		return nil, &SourceUnavailableError{Year: year}
	}

	if !l.ensureIndex().has(section, year) {
		if _, statErr := os.Stat(src.Filename); statErr != nil {
			return nil, &SourceUnavailableError{Year: year}
		}
		return nil, &SectionNotFoundError{Section: section, Year: year}
	}

	f, err := os.Open(src.Filename)
	if err != nil {
		return nil, &SourceUnavailableError{Year: year}
	}
	defer f.Close()

	var tree *provision.Provision
	switch src.Format {
	case FormatXML:
		tree, err = formata.Extract(f, l.cfg.Title, section, year, src.Filename)
	case FormatXHTML:
		tree, err = formatb.Extract(f, l.cfg.Title, section, year, src.Filename)
	default:
		return nil, &ParseFailureError{Section: section, Year: year, Reason: fmt.Sprintf("unknown format %q", src.Format)}
	}
	if err != nil {
		return nil, &ParseFailureError{Section: section, Year: year, Reason: err.Error()}
	}

	fixups.Apply(tree, section)

	return tree, nil
}

// GetVersions assembles every year → tree the section index knows about
// for section, skipping (not erroring on) years that fail to parse, per
// spec.md §4.5/§7's "parser exception on one section ⇒ return absent for
// that section, continue".
func (l *Loader) GetVersions(section string) map[int]*provision.Provision {
	years := l.ensureIndex().years(section)
	out := make(map[int]*provision.Provision, len(years))
	for _, year := range years {
		tree, err := l.GetSection(section, year)
		if err != nil {
			continue
		}
		out[year] = tree
	}
	return out
}

// SectionSummary is one row of ListSections' output.
type SectionSummary struct {
	Section        string
	YearsAvailable []int
}

// YearRange formats the available years as "oldest-newest" ("2022-2024")
// when more than one year is available, or the single year otherwise; gaps
// between the available years are not shown. It mirrors the
// original loader's `get_available_years`/`list_all_sections` year_range
// field (original_source data_loader.py).
func (s SectionSummary) YearRange() string {
	if len(s.YearsAvailable) == 0 {
		return ""
	}
	if len(s.YearsAvailable) == 1 {
		return strconv.Itoa(s.YearsAvailable[0])
	}
	sorted := append([]int(nil), s.YearsAvailable...)
	sort.Ints(sorted)
	return fmt.Sprintf("%d-%d", sorted[0], sorted[len(sorted)-1])
}

// ListSections returns every section the index knows about, newest years
// first, using only the cheap index — no parsing.
func (l *Loader) ListSections() []SectionSummary {
	idx := l.ensureIndex()
	sections := idx.sections()
	out := make([]SectionSummary, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionSummary{Section: s, YearsAvailable: idx.years(s)})
	}
	return out
}
