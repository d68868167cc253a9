package export

import (
    "bytes"
    "encoding/csv"
    "strings"
    "testing"
    "time"

    "github.com/iliyamo/cabin-rental/internal/model"
)

func TestFilename(t *testing.T) {
    now := time.Date(2025, time.August, 24, 15, 30, 0, 0, time.UTC)
    if got := Filename(now); got != "reservas_2025-08-24.csv" {
        t.Errorf("Filename = %q", got)
    }
}

func TestWriteCSV(t *testing.T) {
    records := []model.BookingRecord{
        {
            Code:               "R-2025-0123",
            Name:               "Ana Rojas",
            Email:              "ana@example.com",
            Phone:              "+56 9 1234 5678",
            CheckIn:            "2025-01-10",
            CheckOut:           "2025-01-13",
            Nights:             3,
            PricePerNightCents: 55000,
            TotalCents:         165000,
            Notes:              "late arrival, has dog",
            CreatedAt:          time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC),
        },
    }
    var buf bytes.Buffer
    if err := WriteCSV(&buf, records); err != nil {
        t.Fatalf("WriteCSV: %v", err)
    }
    out := buf.String()
    if !strings.HasPrefix(out, "code,name,email,phone,checkIn,checkOut,nights,price,total,notes,createdAt\n") {
        t.Errorf("unexpected header: %s", out)
    }

    // A comma inside the notes field must survive a round trip, so the
    // writer has to quote it.
    rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
    if err != nil {
        t.Fatalf("re-read: %v", err)
    }
    if len(rows) != 2 {
        t.Fatalf("rows = %d, want 2", len(rows))
    }
    row := rows[1]
    if row[0] != "R-2025-0123" || row[6] != "3" || row[7] != "55000" || row[8] != "165000" {
        t.Errorf("row = %v", row)
    }
    if row[9] != "late arrival, has dog" {
        t.Errorf("notes field corrupted: %q", row[9])
    }
    if row[10] != "2025-01-02T12:00:00Z" {
        t.Errorf("createdAt = %q", row[10])
    }
}
