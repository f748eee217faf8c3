package request

import (
	"strings"

	"homeclean/internal/domain/order"
	"homeclean/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	ScheduledDate  string   `json:"scheduledDate" binding:"required"`
	ScheduledTime  string   `json:"scheduledTime" binding:"required"`
	EstimatedHours float64  `json:"estimatedHours" binding:"required"`
	ServiceType    string   `json:"serviceType"`
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	CustomerPhone  string   `json:"customerPhone"`
	Address        string   `json:"address"`
	Notes          string   `json:"notes"`
	PriceCents     int64    `json:"priceCents"`
	Extras         []string `json:"extras"`
}

// ToInput leaves field validation to the order domain so every caller gets the same rules.
func (r CreateOrderRequest) ToInput(userID *uuid.UUID) commands.CreateOrderInput {
	return commands.CreateOrderInput{
		ScheduledDate:  strings.TrimSpace(r.ScheduledDate),
		ScheduledTime:  strings.TrimSpace(r.ScheduledTime),
		EstimatedHours: r.EstimatedHours,
		UserID:         userID,
		Details: order.Details{
			ServiceType:   strings.TrimSpace(r.ServiceType),
			CustomerName:  strings.TrimSpace(r.CustomerName),
			CustomerEmail: strings.TrimSpace(r.CustomerEmail),
			CustomerPhone: strings.TrimSpace(r.CustomerPhone),
			Address:       strings.TrimSpace(r.Address),
			Notes:         strings.TrimSpace(r.Notes),
			PriceCents:    r.PriceCents,
			Extras:        r.Extras,
		},
	}
}

type ClaimOrderRequest struct {
	PendingToken string `json:"pendingToken" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
