package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la relojería.
//
// Purchases, ServiceCount y NetValue son estado derivado (vista materializada):
// la verdad está en las filas de ventas y servicios; estos campos se mantienen
// con Recompute y nunca son autoritativos por sí mismos.
type Customer struct {
	ID           string
	Name         string
	Email        string // único
	Phone        string // único
	Address      string
	Purchases    int
	ServiceCount int
	NetValue     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountSummary resultado de recomputar la cuenta de un cliente.
type AccountSummary struct {
	NetValue     decimal.Decimal
	Purchases    int
	ServiceCount int
}
