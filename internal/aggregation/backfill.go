package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	core "github.com/aevon-lab/fleetwise/internal/core/aggregation"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultChunkSize = 1000

// BackfillOptions controls a rebuild.
type BackfillOptions struct {
	// ChunkSize is the number of records fetched per page.
	ChunkSize int
}

// DefaultBackfillOptions returns safe defaults for startup and admin rebuilds.
func DefaultBackfillOptions() BackfillOptions {
	return BackfillOptions{ChunkSize: defaultChunkSize}
}

func (o BackfillOptions) normalized() BackfillOptions {
	n := o
	if n.ChunkSize <= 0 {
		n.ChunkSize = defaultChunkSize
	}
	return n
}

// TableResult is the outcome of rebuilding one table's aggregate.
type TableResult struct {
	Table      string          `json:"table"`
	Definition string          `json:"definition"`
	Entries    int64           `json:"entries"`
	Total      decimal.Decimal `json:"total"`
	Pages      int             `json:"pages"`
}

// BackfillResult is the outcome of one full rebuild.
type BackfillResult struct {
	Tables     []TableResult `json:"tables"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	// Shared is set when this caller joined a rebuild already in flight.
	Shared bool `json:"shared"`
}

// Backfiller rebuilds every aggregate of a Set from the record store.
type Backfiller struct {
	set   *Set
	src   Source
	opts  BackfillOptions
	group singleflight.Group
	nowFn func() time.Time
}

// NewBackfiller creates a backfiller for set reading from src.
func NewBackfiller(set *Set, src Source, opts BackfillOptions) *Backfiller {
	return &Backfiller{
		set:   set,
		src:   src,
		opts:  opts.normalized(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Run clears and replays every aggregate. Concurrent calls share one rebuild.
//
// Each table is replayed into a fresh tree; the fresh trees are swapped in
// only after every table replayed successfully, so readers see either the
// old state or the complete new one. Record mutations wait for the whole run.
// A failed run leaves the previous aggregates in place; run again to recover.
func (b *Backfiller) Run(ctx context.Context) (BackfillResult, error) {
	v, err, shared := b.group.Do("backfill", func() (interface{}, error) {
		return b.run(ctx)
	})
	if err != nil {
		return BackfillResult{}, err
	}
	res := v.(BackfillResult)
	res.Shared = shared
	return res, nil
}

func (b *Backfiller) run(ctx context.Context) (BackfillResult, error) {
	var result BackfillResult

	err := b.set.exclusive(func() error {
		result.StartedAt = b.nowFn()
		tables := b.set.Tables()

		slog.Info("[Backfill] Starting rebuild",
			"tables", tables,
			"chunk_size", b.opts.ChunkSize,
		)

		fresh := make([]*core.OrderedAggregate, len(tables))
		results := make([]TableResult, len(tables))

		g, gctx := errgroup.WithContext(ctx)
		for i, table := range tables {
			g.Go(func() error {
				agg, res, err := b.replay(gctx, table)
				if err != nil {
					return fmt.Errorf("replay %s: %w", table, err)
				}
				fresh[i], results[i] = agg, res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, table := range tables {
			if err := b.set.aggs[table].Swap(fresh[i]); err != nil {
				return fmt.Errorf("swap %s: %w", table, err)
			}
		}

		result.Tables = results
		result.FinishedAt = b.nowFn()
		return nil
	})
	if err != nil {
		slog.Error("[Backfill] Rebuild failed, previous aggregates kept", "error", err)
		return BackfillResult{}, err
	}

	for _, res := range result.Tables {
		def, _ := b.set.Definition(res.Table)
		run := storage.BackfillRun{
			Table:       res.Table,
			Definition:  def.Name,
			Fingerprint: def.Fingerprint,
			Entries:     res.Entries,
			Total:       res.Total,
			StartedAt:   result.StartedAt,
			FinishedAt:  result.FinishedAt,
		}
		if err := b.src.SaveBackfillRun(ctx, run); err != nil {
			slog.Warn("[Backfill] Could not record run", "table", res.Table, "error", err)
		}
	}

	slog.Info("[Backfill] Rebuild complete",
		"tables", len(result.Tables),
		"duration", result.FinishedAt.Sub(result.StartedAt),
	)
	return result, nil
}

// replay pages through one table and builds its aggregate from scratch.
func (b *Backfiller) replay(ctx context.Context, table string) (*core.OrderedAggregate, TableResult, error) {
	def, err := b.set.Definition(table)
	if err != nil {
		return nil, TableResult{}, err
	}
	next, err := pagerFor(b.src, table)
	if err != nil {
		return nil, TableResult{}, err
	}

	agg := core.NewOrderedAggregate(def.Name, def.Shape)
	res := TableResult{Table: table, Definition: def.Name}
	cursor := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, TableResult{}, err
		}
		p, err := next(ctx, cursor, b.opts.ChunkSize)
		if err != nil {
			return nil, TableResult{}, err
		}
		if len(p.records) == 0 {
			break
		}
		for _, rec := range p.records {
			entry, err := def.EntryFor(rec.AggregateFields())
			if err != nil {
				return nil, TableResult{}, err
			}
			if err := agg.Insert(entry); err != nil {
				return nil, TableResult{}, err
			}
		}
		res.Pages++
		cursor = p.lastID
		if len(p.records) < b.opts.ChunkSize {
			break
		}
	}

	res.Entries = agg.Len()
	res.Total = agg.Total()
	slog.Debug("[Backfill] Table replayed", "table", table, "entries", res.Entries, "pages", res.Pages)
	return agg, res, nil
}

// LatestRuns returns the last recorded rebuild per table.
func (b *Backfiller) LatestRuns(ctx context.Context) ([]storage.BackfillRun, error) {
	return b.src.LatestBackfillRuns(ctx)
}
