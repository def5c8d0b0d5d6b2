package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest body para POST /api/services.
type CreateServiceRequest struct {
	CustomerID       string          `json:"customer_id"`
	WatchBrand       string          `json:"watchBrand"`
	WatchModel       string          `json:"watchModel,omitempty"`
	WatchDescription string          `json:"watchDescription,omitempty"`
	Issue            string          `json:"issue"`
	Cost             decimal.Decimal `json:"cost"`
}

// UpdateStatusRequest body para PATCH /api/services/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CompleteServiceRequest body para POST /api/services/:id/complete.
type CompleteServiceRequest struct {
	Description    string           `json:"description"`
	FinalCost      *decimal.Decimal `json:"finalCost,omitempty"`
	WarrantyMonths int              `json:"warrantyPeriod"` // 0..60 meses
	ActualDelivery *time.Time       `json:"actualDelivery,omitempty"`
}

// ReassignRequest body para POST /api/services/:id/reassign.
type ReassignRequest struct {
	CustomerID string `json:"customer_id"`
}

// AddNoteRequest body para POST /api/services/:id/notes.
type AddNoteRequest struct {
	Text string `json:"text"`
}

// ServiceNoteResponse nota en respuestas.
type ServiceNoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ServiceResponse orden de servicio en respuestas.
type ServiceResponse struct {
	ID                    string                `json:"id"`
	CustomerID            string                `json:"customer_id"`
	WatchBrand            string                `json:"watchBrand"`
	WatchModel            string                `json:"watchModel,omitempty"`
	WatchDescription      string                `json:"watchDescription,omitempty"`
	Issue                 string                `json:"issue"`
	Cost                  decimal.Decimal       `json:"cost"`
	Status                string                `json:"status"`
	FinalCost             *decimal.Decimal      `json:"finalCost,omitempty"`
	WarrantyMonths        int                   `json:"warrantyPeriod,omitempty"`
	ActualDelivery        *time.Time            `json:"actualDelivery,omitempty"`
	CompletionDescription string                `json:"completionDescription,omitempty"`
	Notes                 []ServiceNoteResponse `json:"notes,omitempty"`
	CreatedAt             time.Time             `json:"createdAt"`
}
