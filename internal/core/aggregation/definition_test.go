package aggregation

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		"bookings": {
			"status":       KindString,
			"end_date":     KindNumber,
			"start_date":   KindNumber,
			"total_amount": KindNumber,
		},
		"maintenance": {
			"date": KindNumber,
			"cost": KindNumber,
		},
		"vehicles": {
			"last_location_update": KindNumber,
			"acquisition_cost":     KindNumber,
			"status":               KindString,
		},
	}
}

func writeDefinition(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefinitionRepository_DefaultsWhenDirMissing(t *testing.T) {
	repo, err := NewFileSystemDefinitionRepository(filepath.Join(t.TempDir(), "absent"), testCatalog())
	require.NoError(t, err)

	defs := repo.List()
	require.Len(t, defs, 3)
	require.Equal(t, "bookings", defs[0].Table)
	require.Equal(t, "maintenance", defs[1].Table)
	require.Equal(t, "vehicles", defs[2].Table)

	bookings, err := repo.Get("bookings")
	require.NoError(t, err)
	require.Equal(t, []string{"status", "end_date"}, bookings.SortKey)
	require.Equal(t, Shape{KindString, KindNumber}, bookings.Shape)
	require.NotEmpty(t, bookings.Fingerprint)
}

func TestDefinitionRepository_DefaultsWhenDirEmpty(t *testing.T) {
	repo, err := NewFileSystemDefinitionRepository(t.TempDir(), testCatalog())
	require.NoError(t, err)
	require.Len(t, repo.List(), 3)
}

func TestDefinitionRepository_LoadsFromDir(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "bookings.yaml", `
name: bookings_by_start
table: bookings
sort_key: [start_date]
sum_value: total_amount
`)
	writeDefinition(t, dir, "maintenance.yml", `
name: maintenance_by_date
table: maintenance
sort_key: [date]
sum_value: cost
`)
	writeDefinition(t, dir, "vehicles.yaml", `
name: vehicles_by_status_update
table: vehicles
sort_key: [status, last_location_update]
sum_value: acquisition_cost
`)
	writeDefinition(t, dir, "notes.txt", "ignored")

	repo, err := NewFileSystemDefinitionRepository(dir, testCatalog())
	require.NoError(t, err)

	def, err := repo.Get("bookings")
	require.NoError(t, err)
	require.Equal(t, "bookings_by_start", def.Name)
	require.Equal(t, Shape{KindNumber}, def.Shape)

	def, err = repo.Get("vehicles")
	require.NoError(t, err)
	require.Equal(t, Shape{KindString, KindNumber}, def.Shape)

	_, err = repo.Get("payments")
	require.Error(t, err)
}

func TestDefinitionRepository_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown table", content: "name: x\ntable: payments\nsort_key: [date]\nsum_value: cost\n"},
		{name: "empty sort key", content: "name: x\ntable: maintenance\nsort_key: []\nsum_value: cost\n"},
		{name: "unknown sort field", content: "name: x\ntable: maintenance\nsort_key: [vendor]\nsum_value: cost\n"},
		{name: "missing sum value", content: "name: x\ntable: maintenance\nsort_key: [date]\n"},
		{name: "string sum value", content: "name: x\ntable: vehicles\nsort_key: [last_location_update]\nsum_value: status\n"},
		{name: "invalid yaml", content: "name: [unclosed\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeDefinition(t, dir, "def.yaml", tc.content)
			_, err := NewFileSystemDefinitionRepository(dir, testCatalog())
			require.Error(t, err)
		})
	}
}

func TestDefinitionRepository_RejectsDuplicateTableAndMissingTable(t *testing.T) {
	dir := t.TempDir()
	writeDefinition(t, dir, "a.yaml", "name: a\ntable: maintenance\nsort_key: [date]\nsum_value: cost\n")
	writeDefinition(t, dir, "b.yaml", "name: b\ntable: maintenance\nsort_key: [date]\nsum_value: cost\n")
	_, err := NewFileSystemDefinitionRepository(dir, testCatalog())
	require.ErrorContains(t, err, "already aggregated")

	dir = t.TempDir()
	writeDefinition(t, dir, "a.yaml", "name: a\ntable: maintenance\nsort_key: [date]\nsum_value: cost\n")
	_, err = NewFileSystemDefinitionRepository(dir, testCatalog())
	require.ErrorContains(t, err, "no aggregate definition")
}

func TestDefinition_EntryFor(t *testing.T) {
	repo, err := NewFileSystemDefinitionRepository("", testCatalog())
	require.NoError(t, err)
	def, err := repo.Get("bookings")
	require.NoError(t, err)

	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entry, err := def.EntryFor(map[string]interface{}{
		"status":       "completed",
		"end_date":     end,
		"total_amount": decimal.RequireFromString("149.99"),
	})
	require.NoError(t, err)
	require.Equal(t, Key{String("completed"), Millis(end)}, entry.Key)
	require.True(t, decimal.RequireFromString("149.99").Equal(entry.Value))

	_, err = def.EntryFor(map[string]interface{}{"status": "completed"})
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = def.EntryFor(map[string]interface{}{"status": 3, "end_date": end})
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = def.EntryFor(map[string]interface{}{"status": "completed", "end_date": math.NaN(), "total_amount": decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidKey)
}
