// Package migration runs and tracks schema migrations.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20250101000000_create_products_table", &CreateProductsTable{})
//	}
//
// and are applied in name order, one batch per Run. Rollback reverses the
// most recent batch.
package migration

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

type entry struct {
	name string
	m    Migration
}

var (
	mu       sync.Mutex
	registry = map[string]Migration{}
)

// Register adds a migration to the global registry. Names must be unique and
// should carry a sortable timestamp prefix.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("migration: %q registered twice", name))
	}
	registry[name] = m
}

func registered() []entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]entry, 0, len(registry))
	for name, m := range registry {
		out = append(out, entry{name: name, m: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner backed by db that reports progress to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) applied() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: load applied: %w", err)
	}
	out := make(map[string]record, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// Pending returns the names of registered migrations not yet applied.
func (r *Runner) Pending() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.applied()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range registered() {
		if _, ok := done[e.name]; !ok {
			names = append(names, e.name)
		}
	}
	return names, nil
}

// Run applies all pending migrations as one batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	done, err := r.applied()
	if err != nil {
		return 0, err
	}

	batch := r.lastBatch() + 1
	ran := 0
	for _, e := range registered() {
		if _, ok := done[e.name]; ok {
			continue
		}
		fmt.Fprintf(r.out, "  migrating  %s\n", e.name)
		if err := e.m.Up(r.db); err != nil {
			return ran, fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return ran, fmt.Errorf("migration: record %s: %w", e.name, err)
		}
		ran++
	}

	if ran == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}
	logger.Info("migration: done", "ran", ran, "batch", batch)
	return ran, nil
}

// Rollback reverses every migration in the most recent batch.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).Order("name desc").Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration)
	for _, e := range registered() {
		byName[e.name] = e.m
	}

	for i, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return i, fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}
		fmt.Fprintf(r.out, "  rolling back  %s\n", row.Name)
		if err := m.Down(r.db); err != nil {
			return i, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&record{}, row.ID).Error; err != nil {
			return i, fmt.Errorf("migration: forget %s: %w", row.Name, err)
		}
	}

	logger.Info("migration: rolled back", "count", len(rows), "batch", batch)
	return len(rows), nil
}

// Status writes a table of registered migrations and their batch.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.applied()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
	fmt.Fprintln(w, strings.Repeat("-", 9)+"\t"+strings.Repeat("-", 6)+"\t"+strings.Repeat("-", 5))
	for _, e := range registered() {
		if rec, ok := done[e.name]; ok {
			fmt.Fprintf(w, "%s\tRan\t%d\n", e.name, rec.Batch)
		} else {
			fmt.Fprintf(w, "%s\tPending\t-\n", e.name)
		}
	}
	return w.Flush()
}

func (r *Runner) lastBatch() int {
	var latest struct{ Batch int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) AS batch").Scan(&latest)
	return latest.Batch
}
