// Package sale contiene la lógica pura de cálculo de una venta
// (servicio de dominio, sin dependencias de persistencia).
package sale

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// DiscountSpec par {tipo, valor} recibido del caller.
// percentage: valor en puntos porcentuales (10 = 10%).
// amount: valor absoluto en moneda.
type DiscountSpec struct {
	Type  string
	Value decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeDiscount calcula el monto de descuento sobre un subtotal.
// El resultado queda acotado al subtotal: un porcentaje mayor a 100% o un
// monto fijo mayor al subtotal producen exactamente el subtotal (total 0),
// nunca un total negativo. Un valor negativo de descuento es entrada inválida.
func ComputeDiscount(subtotal decimal.Decimal, spec DiscountSpec) (decimal.Decimal, error) {
	if !entity.ValidDiscountType(spec.Type) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if spec.Value.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}

	var amount decimal.Decimal
	switch spec.Type {
	case entity.DiscountNone:
		return decimal.Zero, nil
	case entity.DiscountPercentage:
		amount = subtotal.Mul(spec.Value).Div(oneHundred)
	case entity.DiscountAmount:
		amount = spec.Value
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount, nil
}

// ComputeTotals calcula subtotal, descuento y total de una venta.
// Subtotal = precio × cantidad; Total = Subtotal - Descuento (>= 0 siempre).
func ComputeTotals(unitPrice decimal.Decimal, quantity int, spec DiscountSpec) (subtotal, discount, total decimal.Decimal, err error) {
	subtotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount, err = ComputeDiscount(subtotal, spec)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	total = subtotal.Sub(discount)
	return subtotal, discount, total, nil
}
