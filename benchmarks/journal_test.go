package benchmarks

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/randalmurphal/eventmesh/pkg/eventmesh/journal"
)

func benchEntry(i int) journal.Entry {
	return journal.Entry{
		EventID:   "evt-bench",
		EventType: "com.pay.charge",
		Source:    "payment.service",
		Outcome:   journal.OutcomeOK,
		Outbound:  i % 3,
		Recorded:  time.Now().UTC(),
	}
}

// BenchmarkMemoryStore_Append measures in-memory journal appends.
func BenchmarkMemoryStore_Append(b *testing.B) {
	store := journal.NewMemoryStore()
	defer store.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Append(context.Background(), benchEntry(i))
	}
}

// BenchmarkSQLiteStore_Append measures SQLite journal appends.
func BenchmarkSQLiteStore_Append(b *testing.B) {
	store, err := journal.NewSQLiteStore(filepath.Join(b.TempDir(), "journal.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Append(context.Background(), benchEntry(i))
	}
}

// BenchmarkSQLiteStore_ByEvent measures journal lookups against a
// populated store.
func BenchmarkSQLiteStore_ByEvent(b *testing.B) {
	store, err := journal.NewSQLiteStore(filepath.Join(b.TempDir(), "journal.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	for i := 0; i < 100; i++ {
		if err := store.Append(context.Background(), benchEntry(i)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.ByEvent(context.Background(), "evt-bench")
	}
}
