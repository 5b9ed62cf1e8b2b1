package email

import (
	"context"

	"github.com/Domenick1991/airportapi/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers order notifications to users. Actual mail transport is
// not wired; the worker logs the notification instead.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	s.log.WithFields(logrus.Fields{
		"event":    event.Type,
		"order_id": event.OrderID,
		"user_id":  event.UserID,
		"tickets":  len(event.Tickets),
	}).Info("notify user about order")
	return nil
}
