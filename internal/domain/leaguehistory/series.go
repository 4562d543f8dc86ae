package leaguehistory

import (
	"slices"
	"sort"
)

// SeriesMap maps participant names to their period entries. Participants keep
// insertion order; entries keep upstream order and may be unsorted or sparse.
type SeriesMap struct {
	names   []string
	entries map[string][]PeriodEntry
}

func NewSeriesMap() *SeriesMap {
	return &SeriesMap{entries: make(map[string][]PeriodEntry)}
}

// Set stores a copy of entries for name, keeping the first position of name.
func (s *SeriesMap) Set(name string, entries []PeriodEntry) {
	if s.entries == nil {
		s.entries = make(map[string][]PeriodEntry)
	}
	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}
	s.entries[name] = cloneEntries(entries)
}

func (s *SeriesMap) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[name]
	return ok
}

// Names returns participants in insertion order.
func (s *SeriesMap) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.names)
}

func (s *SeriesMap) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Entries returns the stored entries for name. Callers must not modify them.
func (s *SeriesMap) Entries(name string) []PeriodEntry {
	if s == nil {
		return nil
	}
	return s.entries[name]
}

// Lookup returns name's entry for period.
func (s *SeriesMap) Lookup(name string, period int) (PeriodEntry, bool) {
	if s == nil {
		return PeriodEntry{}, false
	}
	for _, entry := range s.entries[name] {
		if entry.Period == period {
			return entry, true
		}
	}
	return PeriodEntry{}, false
}

// Periods returns the sorted union of periods across all participants.
func (s *SeriesMap) Periods() []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]struct{})
	for _, name := range s.names {
		for _, entry := range s.entries[name] {
			seen[entry.Period] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for period := range seen {
		out = append(out, period)
	}
	sort.Ints(out)
	return out
}

// LatestPeriod returns the highest period across all participants, or 0.
func (s *SeriesMap) LatestPeriod() int {
	if s == nil {
		return 0
	}
	latest := 0
	for _, name := range s.names {
		for _, entry := range s.entries[name] {
			latest = max(latest, entry.Period)
		}
	}
	return latest
}

// Clone returns a deep copy.
func (s *SeriesMap) Clone() *SeriesMap {
	out := NewSeriesMap()
	if s == nil {
		return out
	}
	for _, name := range s.names {
		out.Set(name, s.entries[name])
	}
	return out
}

// AsMap returns a name-keyed copy for serialization.
func (s *SeriesMap) AsMap() map[string][]PeriodEntry {
	out := make(map[string][]PeriodEntry, s.Len())
	if s == nil {
		return out
	}
	for _, name := range s.names {
		out[name] = cloneEntries(s.entries[name])
	}
	return out
}

// UpsertPeriod sets name's entry for entry.Period, appending it and re-sorting
// by period when none existed. It reports whether a new entry was appended.
func (s *SeriesMap) UpsertPeriod(name string, entry PeriodEntry) bool {
	if s.entries == nil {
		s.entries = make(map[string][]PeriodEntry)
	}
	if _, ok := s.entries[name]; !ok {
		s.names = append(s.names, name)
	}

	current := s.entries[name]
	for i := range current {
		if current[i].Period == entry.Period {
			current[i] = entry
			return false
		}
	}

	current = append(current, entry)
	sort.SliceStable(current, func(i, j int) bool {
		return current[i].Period < current[j].Period
	})
	s.entries[name] = current
	return true
}

// DedupePeriods keeps the last occurrence of each period, preserving the
// relative order of the surviving entries.
func DedupePeriods(entries []PeriodEntry) []PeriodEntry {
	if len(entries) < 2 {
		return cloneEntries(entries)
	}
	last := make(map[int]int, len(entries))
	for i, entry := range entries {
		last[entry.Period] = i
	}
	out := make([]PeriodEntry, 0, len(last))
	for i, entry := range entries {
		if last[entry.Period] == i {
			out = append(out, entry)
		}
	}
	return out
}

func cloneEntries(entries []PeriodEntry) []PeriodEntry {
	if entries == nil {
		return []PeriodEntry{}
	}
	out := make([]PeriodEntry, len(entries))
	for i, entry := range entries {
		out[i] = entry.clone()
	}
	return out
}

func (e PeriodEntry) clone() PeriodEntry {
	e.Rank = clonePtr(e.Rank)
	e.OverallRank = clonePtr(e.OverallRank)
	e.Value = clonePtr(e.Value)
	e.PointsOnBench = clonePtr(e.PointsOnBench)
	return e
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
