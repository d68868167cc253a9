// Package export serializes the booking ledger to CSV for download.
// Fields are written through encoding/csv so embedded delimiters,
// quotes and newlines are escaped properly.
package export

import (
    "encoding/csv"
    "io"
    "strconv"
    "time"

    "github.com/iliyamo/cabin-rental/internal/model"
)

// MIMEType is the content type served with a ledger export.
const MIMEType = "text/csv"

// header defines the column order of an export.  It mirrors the
// persisted field order of BookingRecord.
var header = []string{
    "code", "name", "email", "phone",
    "checkIn", "checkOut", "nights",
    "price", "total", "notes", "createdAt",
}

// Filename returns the suggested download name for an export generated
// on the given day, e.g. "reservas_2025-08-24.csv".
func Filename(now time.Time) string {
    return "reservas_" + now.UTC().Format("2006-01-02") + ".csv"
}

// WriteCSV writes the header row followed by one row per record.  The
// caller is responsible for ensuring the record list is non-empty; an
// empty ledger must be reported to the user instead of exported.
func WriteCSV(w io.Writer, records []model.BookingRecord) error {
    cw := csv.NewWriter(w)
    if err := cw.Write(header); err != nil {
        return err
    }
    for _, rec := range records {
        row := []string{
            rec.Code,
            rec.Name,
            rec.Email,
            rec.Phone,
            string(rec.CheckIn),
            string(rec.CheckOut),
            strconv.FormatUint(uint64(rec.Nights), 10),
            strconv.FormatUint(uint64(rec.PricePerNightCents), 10),
            strconv.FormatUint(rec.TotalCents, 10),
            rec.Notes,
            rec.CreatedAt.UTC().Format(time.RFC3339),
        }
        if err := cw.Write(row); err != nil {
            return err
        }
    }
    cw.Flush()
    return cw.Error()
}
