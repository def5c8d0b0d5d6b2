package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string          `json:"customer_id"`
	ItemID        string          `json:"inventory_id"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	DiscountType  string          `json:"discountType,omitempty"` // none | percentage | amount
	DiscountValue decimal.Decimal `json:"discountValue,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Campos nil = sin cambio.
// Cambiar quantity/inventory_id revierte el efecto anterior sobre el stock y
// aplica el nuevo; cambiar customer_id recomputa ambos clientes.
type UpdateSaleRequest struct {
	CustomerID    *string          `json:"customer_id,omitempty"`
	ItemID        *string          `json:"inventory_id,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DiscountType  *string          `json:"discountType,omitempty"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	ItemID         string          `json:"inventory_id"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentMethod  string          `json:"paymentMethod"`
	SoldBy         string          `json:"soldBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}
