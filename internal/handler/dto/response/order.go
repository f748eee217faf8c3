package response

import (
	"time"

	"homeclean/internal/usecase/commands"
	"homeclean/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateOrderResponse struct {
	OrderID      uuid.UUID `json:"orderId"`
	PendingToken string    `json:"pendingToken"`
	Status       string    `json:"status"`
}

type OrderResponse struct {
	ID             uuid.UUID              `json:"id"`
	UserID         *uuid.UUID             `json:"userId,omitempty"`
	ScheduledDate  string                 `json:"scheduledDate"`
	ScheduledTime  string                 `json:"scheduledTime"`
	EndTime        string                 `json:"endTime"`
	EstimatedHours float64                `json:"estimatedHours"`
	Status         string                 `json:"status"`
	StoredStatus   string                 `json:"storedStatus"`
	AllowedNext    []string               `json:"allowedNext"`
	ServiceType    string                 `json:"serviceType"`
	CustomerName   string                 `json:"customerName"`
	CustomerEmail  string                 `json:"customerEmail"`
	CustomerPhone  string                 `json:"customerPhone"`
	Address        string                 `json:"address"`
	Notes          string                 `json:"notes"`
	PriceCents     int64                  `json:"priceCents"`
	Extras         []string               `json:"extras"`
	CreatedAt      time.Time              `json:"createdAt"`
	PaymentDueAt   time.Time              `json:"paymentDueAt"`
	PaidAt         *time.Time             `json:"paidAt,omitempty"`
	ConfirmedAt    *time.Time             `json:"confirmedAt,omitempty"`
	CompletedAt    *time.Time             `json:"completedAt,omitempty"`
	CancelledAt    *time.Time             `json:"cancelledAt,omitempty"`
	UpdatedAt      time.Time              `json:"updatedAt"`
	History        []*StatusEventResponse `json:"history,omitempty"`
}

type StatusEventResponse struct {
	FromStatus *string   `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurredAt"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

type TransitionResponse struct {
	OK         bool      `json:"ok"`
	OrderID    uuid.UUID `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Idempotent bool      `json:"idempotent"`
}

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityResponse struct {
	Date         string         `json:"date"`
	WorkdayStart string         `json:"workdayStart"`
	WorkdayEnd   string         `json:"workdayEnd"`
	Busy         []SlotResponse `json:"busy"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	if resp.Extras == nil {
		resp.Extras = []string{}
	}
	if resp.AllowedNext == nil {
		resp.AllowedNext = []string{}
	}
	return &resp, nil
}

func FromOrderViews(views []*queries.OrderView, next *queries.Cursor) (*OrderListResponse, error) {
	out := &OrderListResponse{Orders: make([]*OrderResponse, 0, len(views))}
	for _, v := range views {
		r, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		out.Orders = append(out.Orders, r)
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out, nil
}

func FromCreateResult(r *commands.CreateOrderResult) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:      r.OrderID,
		PendingToken: r.PendingToken,
		Status:       r.Status.String(),
	}
}

func FromTransitionResult(r *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		OK:         true,
		OrderID:    r.OrderID,
		From:       r.From.String(),
		To:         r.To.String(),
		Idempotent: r.Idempotent,
	}
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	if resp.Busy == nil {
		resp.Busy = []SlotResponse{}
	}
	return &resp, nil
}
