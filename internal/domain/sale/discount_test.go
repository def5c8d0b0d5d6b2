package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/sale"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestComputeDiscount_SinDescuento(t *testing.T) {
	amount, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{Type: entity.DiscountNone})
	require.NoError(t, err)
	assert.True(t, amount.IsZero(), "descuento none debe ser cero")
}

func TestComputeDiscount_Porcentaje(t *testing.T) {
	amount, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{
		Type:  entity.DiscountPercentage,
		Value: d("10"),
	})
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("20")), "10%% de 200 debe ser 20, fue %s", amount)
}

func TestComputeDiscount_MontoFijo(t *testing.T) {
	amount, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{
		Type:  entity.DiscountAmount,
		Value: d("50"),
	})
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("50")))
}

// El descuento siempre queda acotado al subtotal: 150% o un monto fijo mayor
// al subtotal producen total exactamente cero, nunca negativo.
func TestComputeDiscount_PorcentajeMayorA100SeAcota(t *testing.T) {
	amount, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{
		Type:  entity.DiscountPercentage,
		Value: d("150"),
	})
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("200")), "descuento acotado al subtotal exacto")
}

func TestComputeDiscount_MontoMayorAlSubtotalSeAcota(t *testing.T) {
	amount, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{
		Type:  entity.DiscountAmount,
		Value: d("350"),
	})
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("200")))
}

func TestComputeDiscount_TipoInvalido(t *testing.T) {
	_, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{Type: "bogus"})
	assert.Error(t, err)
}

func TestComputeDiscount_ValorNegativoEsInvalido(t *testing.T) {
	_, err := sale.ComputeDiscount(d("200"), sale.DiscountSpec{
		Type:  entity.DiscountAmount,
		Value: d("-5"),
	})
	assert.Error(t, err)
}

func TestComputeTotals_VentaSimple(t *testing.T) {
	subtotal, discount, total, err := sale.ComputeTotals(d("100"), 2, sale.DiscountSpec{Type: entity.DiscountNone})
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(d("200")))
	assert.True(t, discount.IsZero())
	assert.True(t, total.Equal(d("200")))
}

func TestComputeTotals_DescuentoTotalDejaCero(t *testing.T) {
	_, discount, total, err := sale.ComputeTotals(d("100"), 3, sale.DiscountSpec{
		Type:  entity.DiscountPercentage,
		Value: d("150"),
	})
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("300")))
	assert.True(t, total.IsZero(), "el total nunca debe ser negativo")
}
