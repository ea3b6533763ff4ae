package email

import (
	"context"
	"fmt"

	"github.com/voyago/tripengine/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TripEvent) error {
	if event.Email == "" {
		return nil
	}
	fmt.Printf("send email to %s about %s for trip %s\n", event.Email, event.Type, event.TripID)
	return nil
}
