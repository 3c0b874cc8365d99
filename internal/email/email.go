package email

import (
	"context"
	"log"

	"github.com/Domenick1991/flightbook/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	log.Printf("send email to %s: booking %s %s, flight %d, %d seat(s)", event.Email, event.Reference, event.Type, event.FlightID, event.Seats)
	return nil
}
