package model

import (
    "time"

    "github.com/iliyamo/cabin-rental/internal/calendar"
)

// BookingRecord is an immutable confirmed booking.  Records are
// created once at confirmation time, appended to the ledger and never
// edited or deleted afterwards.  The json tags define the persisted
// shape of the ledger entries; the CSV export reuses the same field
// order.
//
// Fields:
//  Code               - human-readable confirmation code, "R-<year>-<4 digits>".
//                       Best-effort identifier only: collisions are possible
//                       and it must not be treated as a unique key.
//  Name               - guest name.
//  Email              - guest contact email.
//  Phone              - guest contact phone.
//  CheckIn            - first occupied day.
//  CheckOut           - departure day, excluded from the occupied range.
//  Nights             - number of nights, always >= 1 for a confirmed booking.
//  PricePerNightCents - nightly rate in minor currency units.
//  TotalCents         - Nights * PricePerNightCents.
//  Notes              - free-form guest notes, may be empty.
//  CreatedAt          - confirmation timestamp in UTC.
type BookingRecord struct {
    Code               string           `json:"code"`
    Name               string           `json:"name"`
    Email              string           `json:"email"`
    Phone              string           `json:"phone"`
    CheckIn            calendar.DateKey `json:"checkIn"`
    CheckOut           calendar.DateKey `json:"checkOut"`
    Nights             uint32           `json:"nights"`
    PricePerNightCents uint32           `json:"pricePerNight"`
    TotalCents         uint64           `json:"total"`
    Notes              string           `json:"notes"`
    CreatedAt          time.Time        `json:"createdAt"`
}
