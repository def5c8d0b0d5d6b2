package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory.
type CreateItemRequest struct {
	Code     string          `json:"code"`
	Type     string          `json:"type"`
	Brand    string          `json:"brand"`
	Model    string          `json:"model"`
	Size     string          `json:"size,omitempty"` // obligatorio si type == strap
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Outlet   string          `json:"outlet"`
}

// UpdateItemRequest body para PUT /api/inventory/:id.
// Code es inmutable y no aparece aquí; quantity se muta solo vía ledger.
type UpdateItemRequest struct {
	Brand *string          `json:"brand,omitempty"`
	Model *string          `json:"model,omitempty"`
	Size  *string          `json:"size,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// QuantityRequest body para POST /api/inventory/:id/decrease|increase.
type QuantityRequest struct {
	Amount int `json:"amount"`
}

// AdjustRequest body para POST /api/inventory/:id/adjust (corrección manual).
type AdjustRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

// MoveRequest body para POST /api/inventory/:id/move.
type MoveRequest struct {
	ToOutlet string `json:"to_outlet"`
	Reason   string `json:"reason,omitempty"`
}

// ItemResponse artículo en respuestas.
type ItemResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Size         string          `json:"size,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Outlet       string          `json:"outlet"`
	Status       string          `json:"status"`
	TotalSold    int             `json:"totalSold"`
	LastSaleDate *time.Time      `json:"lastSaleDate,omitempty"`
}

// MovementResponse entrada del historial de movimientos.
type MovementResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	FromOutlet *string   `json:"fromOutlet"`
	ToOutlet   string    `json:"toOutlet"`
	Reason     string    `json:"reason"`
	MovedBy    string    `json:"movedBy"`
	Date       time.Time `json:"date"`
	Timestamp  time.Time `json:"timestamp"`
}
