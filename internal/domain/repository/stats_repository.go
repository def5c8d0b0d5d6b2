package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados globales del inventario activo.
type InventoryTotals struct {
	Items     int             // artículos distintos no borrados
	Units     int             // unidades en stock
	Valuation decimal.Decimal // sum(price * quantity)
	SoldOut   int             // artículos en sold/out-of-stock
}

// LowStockItem artículo por debajo del umbral de stock.
type LowStockItem struct {
	ItemID   string
	Code     string
	Brand    string
	Model    string
	Outlet   string
	Quantity int
}

// SalesSummary agregados de ventas en un período.
type SalesSummary struct {
	Count         int
	UnitsSold     int
	GrossRevenue  decimal.Decimal // sum(subtotal)
	DiscountTotal decimal.Decimal
	NetRevenue    decimal.Decimal // sum(total_amount)
}

// TopCustomer cliente por valor neto acumulado.
type TopCustomer struct {
	CustomerID string
	Name       string
	Purchases  int
	NetValue   decimal.Decimal
}

// StatsRepository consultas de solo lectura para el dashboard.
type StatsRepository interface {
	GetInventoryTotals(ctx context.Context) (*InventoryTotals, error)
	GetLowStock(ctx context.Context, threshold, limit int) ([]LowStockItem, error)
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
}
