package aggregation

import (
	"context"
	"errors"
	"testing"

	v1 "github.com/aevon-lab/fleetwise/internal/api/v1"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/aevon-lab/fleetwise/internal/core/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// failingSource fails booking scans after the first page.
type failingSource struct {
	*memory.Store
	calls int
}

func (f *failingSource) ScanBookings(ctx context.Context, afterID string, limit int) ([]*v1.Booking, error) {
	f.calls++
	if f.calls > 1 {
		return nil, errors.New("connection reset")
	}
	return f.Store.ScanBookings(ctx, afterID, limit)
}

func TestBackfiller_RunRebuildsFromStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store, 5)

	set := newTestSet(t)
	b := NewBackfiller(set, store, BackfillOptions{ChunkSize: 2})

	res, err := b.Run(ctx)
	require.NoError(t, err)
	require.False(t, res.Shared)
	require.Len(t, res.Tables, 3)

	bookings := res.Tables[0]
	require.Equal(t, v1.TableBookings, bookings.Table)
	require.Equal(t, int64(5), bookings.Entries)
	require.Equal(t, 3, bookings.Pages)
	require.True(t, decimal.NewFromInt(150).Equal(bookings.Total))

	// b000, b002, b004 are completed: 10 + 30 + 50.
	require.True(t, decimal.NewFromInt(90).Equal(completedSum(t, set)))

	count, err := set.Count(v1.TableMaintenance, Bounds{})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	runs, err := b.LatestRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestBackfiller_RunReplacesStaleEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store, 2)

	set := newTestSet(t)
	// An entry with no backing record.
	_, err := set.OnInsert(v1.TableBookings, testBooking("ghost", base, 999, v1.BookingCompleted))
	require.NoError(t, err)

	_, err = NewBackfiller(set, store, DefaultBackfillOptions()).Run(ctx)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10).Equal(completedSum(t, set)))
}

func TestBackfiller_ExactChunkStillTerminates(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, 4)

	res, err := NewBackfiller(newTestSet(t), store, BackfillOptions{ChunkSize: 4}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Tables[0].Pages)
	require.Equal(t, int64(4), res.Tables[0].Entries)
}

func TestBackfiller_FailedRunKeepsPreviousAggregates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store, 5)

	set := newTestSet(t)
	_, err := NewBackfiller(set, store, DefaultBackfillOptions()).Run(ctx)
	require.NoError(t, err)
	before := completedSum(t, set)

	src := &failingSource{Store: store}
	_, err = NewBackfiller(set, src, BackfillOptions{ChunkSize: 2}).Run(ctx)
	require.ErrorContains(t, err, "connection reset")
	require.True(t, before.Equal(completedSum(t, set)))
}

func TestBackfiller_CancelledContext(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBackfiller(newTestSet(t), store, DefaultBackfillOptions()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBackfiller_VerifyDetectsDrift(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store, 3)

	set := newTestSet(t)
	b := NewBackfiller(set, store, DefaultBackfillOptions())
	_, err := b.Run(ctx)
	require.NoError(t, err)

	report, err := b.Verify(ctx)
	require.NoError(t, err)
	require.False(t, report.Drifted)
	for _, d := range report.Tables {
		require.True(t, d.InSync, d.Table)
	}

	// A write that skipped aggregate maintenance.
	require.NoError(t, store.WithTx(ctx, func(tx storage.RecordTx) error {
		return tx.DeleteBooking(ctx, "b000")
	}))

	report, err = b.Verify(ctx)
	require.NoError(t, err)
	require.True(t, report.Drifted)
	require.Equal(t, v1.TableBookings, report.Tables[0].Table)
	require.False(t, report.Tables[0].InSync)
	require.Equal(t, int64(3), report.Tables[0].AggregateCount)
	require.Equal(t, int64(2), report.Tables[0].StoreCount)

	// The drift checker rebuilds.
	NewDriftChecker(0, b).check(ctx)
	report, err = b.Verify(ctx)
	require.NoError(t, err)
	require.False(t, report.Drifted)
}

func TestBackfiller_RunTwiceEqualsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store, 7)

	set := newTestSet(t)
	b := NewBackfiller(set, store, BackfillOptions{ChunkSize: 3})

	snapshot := func() map[string]Summary {
		out := make(map[string]Summary)
		for _, table := range set.Tables() {
			s, err := set.Summarize(table, Bounds{})
			require.NoError(t, err)
			out[table] = s
		}
		for _, status := range v1.BookingStatuses {
			s, err := set.Summarize(v1.TableBookings, WithPrefix(String(string(status))))
			require.NoError(t, err)
			out["bookings/"+string(status)] = s
		}
		return out
	}

	_, err := b.Run(ctx)
	require.NoError(t, err)
	once := snapshot()

	_, err = b.Run(ctx)
	require.NoError(t, err)
	twice := snapshot()

	require.Len(t, twice, len(once))
	for key, want := range once {
		got := twice[key]
		require.Equal(t, want.Count, got.Count, key)
		require.True(t, want.Sum.Equal(got.Sum), "%s: want=%s got=%s", key, want.Sum, got.Sum)
	}
	require.Equal(t, int64(7), once[v1.TableBookings].Count)
}
