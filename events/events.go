// Package events publishes booking lifecycle events to RabbitMQ.
package events

import (
	"context"
	"time"
)

const Exchange = "cinemaverse.events"

const (
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingExpired   = "booking.expired"
)

type BookingEvent struct {
	BookingId  uint      `json:"bookingId"`
	Code       string    `json:"code"`
	UserId     uint      `json:"userId"`
	ShowtimeId uint      `json:"showtimeId"`
	MovieTitle string    `json:"movieTitle"`
	Hall       string    `json:"hall"`
	StartsAt   time.Time `json:"startsAt"`
	Seats      []string  `json:"seats"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event BookingEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, BookingEvent) error { return nil }
func (NoopPublisher) Close() error                                        { return nil }
