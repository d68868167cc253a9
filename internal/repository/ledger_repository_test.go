package repository

import (
    "context"
    "errors"
    "strings"
    "testing"
    "time"

    "github.com/iliyamo/cabin-rental/internal/model"
    "github.com/iliyamo/cabin-rental/internal/store"
)

func sampleRecord(code string) model.BookingRecord {
    return model.BookingRecord{
        Code:               code,
        Name:               "Ana Rojas",
        Email:              "ana@example.com",
        Phone:              "+56 9 1234 5678",
        CheckIn:            "2025-01-10",
        CheckOut:           "2025-01-13",
        Nights:             3,
        PricePerNightCents: 55000,
        TotalCents:         165000,
        CreatedAt:          time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC),
    }
}

func TestAppendPersistsFullLedger(t *testing.T) {
    ctx := context.Background()
    kv := store.NewMemory()
    repo := NewLedgerRepo(kv)
    if err := repo.Load(ctx); err != nil {
        t.Fatalf("Load: %v", err)
    }
    if err := repo.Append(ctx, sampleRecord("R-2025-0001")); err != nil {
        t.Fatalf("Append: %v", err)
    }
    if err := repo.Append(ctx, sampleRecord("R-2025-0002")); err != nil {
        t.Fatalf("Append: %v", err)
    }
    raw, ok, _ := kv.Get(ctx, LedgerKey)
    if !ok {
        t.Fatal("ledger was not persisted")
    }
    if !strings.Contains(raw, `"code":"R-2025-0001"`) || !strings.Contains(raw, `"code":"R-2025-0002"`) {
        t.Errorf("persisted ledger missing records: %s", raw)
    }
    // A fresh repo reading the same store must see both records in order.
    reread := NewLedgerRepo(kv)
    if err := reread.Load(ctx); err != nil {
        t.Fatalf("reload: %v", err)
    }
    all := reread.All()
    if len(all) != 2 || all[0].Code != "R-2025-0001" || all[1].Code != "R-2025-0002" {
        t.Errorf("reloaded ledger = %+v", all)
    }
}

func TestExportAllEmptyLedger(t *testing.T) {
    repo := NewLedgerRepo(store.NewMemory())
    if _, err := repo.ExportAll(); !errors.Is(err, ErrNothingToExport) {
        t.Errorf("ExportAll on empty ledger = %v, want ErrNothingToExport", err)
    }
}

func TestExportAllReturnsCopy(t *testing.T) {
    ctx := context.Background()
    repo := NewLedgerRepo(store.NewMemory())
    if err := repo.Append(ctx, sampleRecord("R-2025-0003")); err != nil {
        t.Fatalf("Append: %v", err)
    }
    out, err := repo.ExportAll()
    if err != nil {
        t.Fatalf("ExportAll: %v", err)
    }
    out[0].Code = "mutated"
    if repo.All()[0].Code != "R-2025-0003" {
        t.Error("ExportAll must return a copy, not the backing slice")
    }
}

func TestLedgerClear(t *testing.T) {
    ctx := context.Background()
    kv := store.NewMemory()
    repo := NewLedgerRepo(kv)
    if err := repo.Append(ctx, sampleRecord("R-2025-0004")); err != nil {
        t.Fatalf("Append: %v", err)
    }
    if err := repo.Clear(ctx); err != nil {
        t.Fatalf("Clear: %v", err)
    }
    if repo.Count() != 0 {
        t.Errorf("Count after clear = %d, want 0", repo.Count())
    }
    if _, ok, _ := kv.Get(ctx, LedgerKey); ok {
        t.Error("Clear left the persisted key behind")
    }
}
