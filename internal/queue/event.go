// Package queue defines message payloads exchanged over the message
// broker together with the publisher and background consumer for the
// booking.confirmed queue.
package queue

// BookingConfirmedEvent is published when a cabin booking is
// successfully confirmed.  It carries enough information for
// downstream consumers to log or notify without reading the primary
// store.
type BookingConfirmedEvent struct {
    Code        string `json:"code"`
    GuestName   string `json:"guest_name"`
    GuestEmail  string `json:"guest_email"`
    CheckIn     string `json:"check_in"`
    CheckOut    string `json:"check_out"`
    Nights      uint32 `json:"nights"`
    PriceCents  uint32 `json:"price_per_night_cents"`
    TotalCents  uint64 `json:"total_cents"`
    ConfirmedAt string `json:"confirmed_at"`
}
