package request

import (
	"homeclean/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentWebhookRequest struct {
	OrderID    string `json:"orderId" binding:"required"`
	NextStatus string `json:"nextStatus"`
	Event      string `json:"event"`
	OccurredAt string `json:"occurredAt"`
}

func (r PaymentWebhookRequest) ToEvent() (commands.PaymentEvent, error) {
	id, err := uuid.Parse(r.OrderID)
	if err != nil {
		return commands.PaymentEvent{}, err
	}
	return commands.PaymentEvent{
		OrderID:    id,
		NextStatus: r.NextStatus,
		Event:      r.Event,
		OccurredAt: r.OccurredAt,
	}, nil
}
