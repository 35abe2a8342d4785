package aggregation

import (
	"context"
	"fmt"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
)

// Source is what backfill and drift checks need from the record store.
//
// Contract: ScanX pages are ordered by ID and contain only IDs greater than the
// cursor, so replaying page after page visits every live record exactly once
// as long as no writes happen in between (guaranteed by Set's gate).
type Source interface {
	storage.RecordScanner
	storage.BackfillLog
	TableTotals(ctx context.Context, table, sumColumn string) (storage.Totals, error)
}

// page is one chunk of a table scan.
type page struct {
	records []v1.Record
	lastID  string
}

type pager func(ctx context.Context, afterID string, limit int) (page, error)

func pagerFor(src Source, table string) (pager, error) {
	switch table {
	case v1.TableVehicles:
		return func(ctx context.Context, afterID string, limit int) (page, error) {
			rows, err := src.ScanVehicles(ctx, afterID, limit)
			if err != nil || len(rows) == 0 {
				return page{}, err
			}
			p := page{records: make([]v1.Record, len(rows)), lastID: rows[len(rows)-1].ID}
			for i, r := range rows {
				p.records[i] = r
			}
			return p, nil
		}, nil
	case v1.TableBookings:
		return func(ctx context.Context, afterID string, limit int) (page, error) {
			rows, err := src.ScanBookings(ctx, afterID, limit)
			if err != nil || len(rows) == 0 {
				return page{}, err
			}
			p := page{records: make([]v1.Record, len(rows)), lastID: rows[len(rows)-1].ID}
			for i, r := range rows {
				p.records[i] = r
			}
			return p, nil
		}, nil
	case v1.TableMaintenance:
		return func(ctx context.Context, afterID string, limit int) (page, error) {
			rows, err := src.ScanMaintenance(ctx, afterID, limit)
			if err != nil || len(rows) == 0 {
				return page{}, err
			}
			p := page{records: make([]v1.Record, len(rows)), lastID: rows[len(rows)-1].ID}
			for i, r := range rows {
				p.records[i] = r
			}
			return p, nil
		}, nil
	}
	return nil, fmt.Errorf("%w: no scanner for %q", ErrUnknownTable, table)
}
