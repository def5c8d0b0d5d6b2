package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"` // vacío = hoy
}

// UpdateExpenseRequest body para PUT /api/expenses/:id. Campos nil = sin cambio.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	RegisteredBy string          `json:"registeredBy"`
}

// ExpenseSummaryResponse totales por categoría en un período.
type ExpenseSummaryResponse struct {
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	Total      decimal.Decimal        `json:"total"`
	Categories []CategoryTotalItemDTO `json:"categories"`
}

// CategoryTotalItemDTO total de una categoría.
type CategoryTotalItemDTO struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
