package aggregation

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Definition fixes how one table's records map to aggregate entries.
// Definitions are loaded at startup and fingerprinted so a changed key scheme
// can be detected and the aggregate rebuilt.
type Definition struct {
	Name        string
	Table       string
	SortKey     []string
	SumValue    string
	Shape       Shape
	Fingerprint string // SHA-256 of the raw YAML (or of the built-in definition)
}

// Catalog lists, per table, the fields usable in a sort key and their kinds.
type Catalog map[string]map[string]Kind

// rawDefinition is the on-disk YAML shape.
type rawDefinition struct {
	Name     string   `yaml:"name"`
	Table    string   `yaml:"table"`
	SortKey  []string `yaml:"sort_key"`
	SumValue string   `yaml:"sum_value"`
}

// defaultDefinitions are used when no definitions directory exists. Bookings
// are keyed by (status, end_date) so per-status windows are prefix ranges.
func defaultDefinitions() []rawDefinition {
	return []rawDefinition{
		{Name: "bookings_by_status_end", Table: "bookings", SortKey: []string{"status", "end_date"}, SumValue: "total_amount"},
		{Name: "maintenance_by_date", Table: "maintenance", SortKey: []string{"date"}, SumValue: "cost"},
		{Name: "vehicles_by_location_update", Table: "vehicles", SortKey: []string{"last_location_update"}, SumValue: "acquisition_cost"},
	}
}

// DefinitionRepository holds one validated definition per table.
type DefinitionRepository struct {
	dir     string
	catalog Catalog
	byTable map[string]Definition
}

// NewFileSystemDefinitionRepository loads every *.yaml definition in dir.
// A missing or empty directory falls back to the built-in definitions. Every catalog table
// must end up with exactly one definition.
func NewFileSystemDefinitionRepository(dir string, catalog Catalog) (*DefinitionRepository, error) {
	repo := &DefinitionRepository{
		dir:     dir,
		catalog: catalog,
		byTable: make(map[string]Definition),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	for table := range catalog {
		if _, ok := repo.byTable[table]; !ok {
			return nil, fmt.Errorf("no aggregate definition for table %q", table)
		}
	}
	return repo, nil
}

func (r *DefinitionRepository) load() error {
	info, err := os.Stat(r.dir)
	if r.dir == "" || os.IsNotExist(err) {
		return r.loadDefaults()
	}
	if err != nil {
		return fmt.Errorf("aggregate definition dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("aggregate definition path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading aggregate definition dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading definition file %s: %w", path, err)
		}

		var raw rawDefinition
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing definition file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // comment-only file
		}
		if err := r.add(raw, data); err != nil {
			return err
		}
	}
	if len(r.byTable) == 0 {
		return r.loadDefaults()
	}
	return nil
}

func (r *DefinitionRepository) loadDefaults() error {
	for _, raw := range defaultDefinitions() {
		data, _ := yaml.Marshal(raw)
		if err := r.add(raw, data); err != nil {
			return err
		}
	}
	return nil
}

func (r *DefinitionRepository) add(raw rawDefinition, data []byte) error {
	fields, ok := r.catalog[raw.Table]
	if !ok {
		return fmt.Errorf("definition %q: unknown table %q", raw.Name, raw.Table)
	}
	if len(raw.SortKey) == 0 {
		return fmt.Errorf("definition %q: sort_key must not be empty", raw.Name)
	}
	shape := make(Shape, 0, len(raw.SortKey))
	for _, f := range raw.SortKey {
		kind, ok := fields[f]
		if !ok {
			return fmt.Errorf("definition %q: table %q has no sortable field %q", raw.Name, raw.Table, f)
		}
		shape = append(shape, kind)
	}
	if raw.SumValue == "" {
		return fmt.Errorf("definition %q: sum_value must not be empty", raw.Name)
	}
	if kind, ok := fields[raw.SumValue]; !ok || kind != KindNumber {
		return fmt.Errorf("definition %q: sum_value %q is not a numeric field of %q", raw.Name, raw.SumValue, raw.Table)
	}
	if prev, exists := r.byTable[raw.Table]; exists {
		return fmt.Errorf("definition %q: table %q already aggregated by %q", raw.Name, raw.Table, prev.Name)
	}

	r.byTable[raw.Table] = Definition{
		Name:        raw.Name,
		Table:       raw.Table,
		SortKey:     raw.SortKey,
		SumValue:    raw.SumValue,
		Shape:       shape,
		Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
	}
	return nil
}

// Get returns the definition for a table.
func (r *DefinitionRepository) Get(table string) (Definition, error) {
	def, ok := r.byTable[table]
	if !ok {
		return Definition{}, fmt.Errorf("no aggregate definition for table %q", table)
	}
	return def, nil
}

// List returns all definitions ordered by table name.
func (r *DefinitionRepository) List() []Definition {
	out := make([]Definition, 0, len(r.byTable))
	for _, def := range r.byTable {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out
}

// EntryFor derives the aggregate entry of a record from its field map.
func (d Definition) EntryFor(fields map[string]interface{}) (Entry, error) {
	key := make(Key, 0, len(d.SortKey))
	for _, f := range d.SortKey {
		c, err := componentOf(fields[f])
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalidKey, d.Table, f, err)
		}
		key = append(key, c)
	}
	if err := d.Shape.Match(key); err != nil {
		return Entry{}, err
	}
	value, err := valueOf(fields, d.SumValue)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %v", ErrInvalidKey, d.Table, err)
	}
	return Entry{Key: key, Value: value}, nil
}

func componentOf(v interface{}) (Component, error) {
	switch val := v.(type) {
	case time.Time:
		return Millis(val), nil
	case decimal.Decimal:
		return Number(val.InexactFloat64()), nil
	case string:
		return String(val), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return Component{}, fmt.Errorf("non-finite number %v", val)
		}
		return Number(val), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case fmt.Stringer:
		return String(val.String()), nil
	case nil:
		return Component{}, fmt.Errorf("field is missing")
	}
	return Component{}, fmt.Errorf("unsupported field type %T", v)
}
