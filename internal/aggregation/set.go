package aggregation

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	core "github.com/aevon-lab/fleetwise/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// ErrUnknownTable is returned for a table with no aggregate definition.
var ErrUnknownTable = errors.New("unknown aggregate table")

// Set owns one OrderedAggregate per table and keeps them in step with record
// mutations. It is built once at startup and injected wherever aggregates are
// read or maintained.
//
// Record mutations run under Mutate (shared); backfill and verification run
// exclusively, so a rebuild never interleaves with a half-applied mutation.
// Readers are never blocked by the gate.
type Set struct {
	gate sync.RWMutex
	defs map[string]core.Definition
	aggs map[string]*core.OrderedAggregate
}

// NewSet creates empty aggregates for the given definitions.
func NewSet(defs []core.Definition) *Set {
	s := &Set{
		defs: make(map[string]core.Definition, len(defs)),
		aggs: make(map[string]*core.OrderedAggregate, len(defs)),
	}
	for _, def := range defs {
		s.defs[def.Table] = def
		s.aggs[def.Table] = core.NewOrderedAggregate(def.Name, def.Shape)
	}
	return s
}

// Tables returns the aggregated tables in name order.
func (s *Set) Tables() []string {
	out := make([]string, 0, len(s.defs))
	for t := range s.defs {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Definition returns the definition aggregating table.
func (s *Set) Definition(table string) (core.Definition, error) {
	def, ok := s.defs[table]
	if !ok {
		return core.Definition{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return def, nil
}

func (s *Set) aggregate(table string) (*core.OrderedAggregate, error) {
	agg, ok := s.aggs[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return agg, nil
}

// Summarize returns count and sum over bounds from one consistent snapshot.
func (s *Set) Summarize(table string, b core.Bounds) (core.Summary, error) {
	agg, err := s.aggregate(table)
	if err != nil {
		return core.Summary{Sum: decimal.Zero}, err
	}
	return agg.Summarize(b)
}

// Sum returns the value sum of a table's entries within bounds.
func (s *Set) Sum(table string, b core.Bounds) (decimal.Decimal, error) {
	agg, err := s.aggregate(table)
	if err != nil {
		return decimal.Zero, err
	}
	return agg.Sum(b)
}

// Count returns the number of a table's entries within bounds.
func (s *Set) Count(table string, b core.Bounds) (int64, error) {
	agg, err := s.aggregate(table)
	if err != nil {
		return 0, err
	}
	return agg.Count(b)
}

// Mutate runs fn while holding the gate shared. Record mutations and their
// aggregate maintenance go inside fn.
func (s *Set) Mutate(fn func() error) error {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return fn()
}

func (s *Set) exclusive(fn func() error) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	return fn()
}

func (s *Set) entryFor(table string, rec v1.Record) (*core.OrderedAggregate, core.Entry, error) {
	def, err := s.Definition(table)
	if err != nil {
		return nil, core.Entry{}, err
	}
	entry, err := def.EntryFor(rec.AggregateFields())
	if err != nil {
		return nil, core.Entry{}, err
	}
	return s.aggs[table], entry, nil
}

// OnInsert adds the entry derived from a newly inserted record. The returned
// undo removes it again.
func (s *Set) OnInsert(table string, rec v1.Record) (func(), error) {
	agg, entry, err := s.entryFor(table, rec)
	if err != nil {
		return nil, err
	}
	if err := agg.Insert(entry); err != nil {
		return nil, err
	}
	return func() {
		if err := agg.Remove(entry); err != nil {
			slog.Error("[Aggregates] Undo insert failed", "table", table, "entry", entry.String(), "error", err)
		}
	}, nil
}

// OnUpdate replaces the entry of old with the entry of updated. Nothing
// happens when neither key nor value changed.
func (s *Set) OnUpdate(table string, old, updated v1.Record) (func(), error) {
	agg, oldEntry, err := s.entryFor(table, old)
	if err != nil {
		return nil, err
	}
	_, newEntry, err := s.entryFor(table, updated)
	if err != nil {
		return nil, err
	}
	if oldEntry.Equal(newEntry) {
		return func() {}, nil
	}
	if err := agg.Replace(oldEntry, newEntry); err != nil {
		return nil, err
	}
	return func() {
		if err := agg.Replace(newEntry, oldEntry); err != nil {
			slog.Error("[Aggregates] Undo replace failed", "table", table, "entry", newEntry.String(), "error", err)
		}
	}, nil
}

// OnDelete removes the entry of a deleted record. A missing entry is a desync
// and returns ErrNotFound.
func (s *Set) OnDelete(table string, rec v1.Record) (func(), error) {
	agg, entry, err := s.entryFor(table, rec)
	if err != nil {
		return nil, err
	}
	if err := agg.Remove(entry); err != nil {
		return nil, err
	}
	return func() {
		if err := agg.Insert(entry); err != nil {
			slog.Error("[Aggregates] Undo delete failed", "table", table, "entry", entry.String(), "error", err)
		}
	}, nil
}
