package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
// Solo datos de contacto: los campos derivados no se editan directamente.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas. Los nombres de campo derivados
// (netValue, purchases, serviceCount) se preservan tal cual en el JSON.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address,omitempty"`
	Purchases    int             `json:"purchases"`
	ServiceCount int             `json:"serviceCount"`
	NetValue     decimal.Decimal `json:"netValue"`
}

// AccountSummaryResponse resultado de POST /api/customers/:id/recompute.
type AccountSummaryResponse struct {
	NetValue     decimal.Decimal `json:"netValue"`
	Purchases    int             `json:"purchases"`
	ServiceCount int             `json:"serviceCount"`
}
