package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento aplicables a una venta.
const (
	DiscountNone       = "none"
	DiscountPercentage = "percentage"
	DiscountAmount     = "amount"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale es un evento financiero inmutable una vez creado: solo puede
// eliminarse (revirtiendo sus efectos) o actualizarse vía la orquestación
// de ventas, que revierte y reaplica los efectos sobre inventario y cliente.
type Sale struct {
	ID             string
	CustomerID     string
	ItemID         string
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountType   string
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal // derivado, nunca mayor que Subtotal
	TotalAmount    decimal.Decimal // Subtotal - DiscountAmount, nunca negativo
	PaymentMethod  string
	SoldBy         string // UserID del vendedor
	CreatedAt      time.Time
}

// ValidDiscountType verifica pertenencia al enum de descuentos.
func ValidDiscountType(t string) bool {
	switch t {
	case DiscountNone, DiscountPercentage, DiscountAmount:
		return true
	}
	return false
}

// ValidPaymentMethod verifica pertenencia al enum de métodos de pago.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}
