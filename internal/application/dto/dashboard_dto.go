package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen agregado para GET /api/dashboard.
type DashboardResponse struct {
	Inventory    InventoryTotalsDTO `json:"inventory"`
	LowStock     []LowStockItemDTO  `json:"low_stock"`
	Sales        SalesSummaryDTO    `json:"sales"`
	TopCustomers []TopCustomerDTO   `json:"top_customers"`
	CachedAt     string             `json:"cached_at,omitempty"`
}

// InventoryTotalsDTO agregados del inventario activo.
type InventoryTotalsDTO struct {
	Items     int             `json:"items"`
	Units     int             `json:"units"`
	Valuation decimal.Decimal `json:"valuation"`
	SoldOut   int             `json:"sold_out"`
}

// LowStockItemDTO artículo por debajo del umbral.
type LowStockItemDTO struct {
	ItemID   string `json:"item_id"`
	Code     string `json:"code"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Outlet   string `json:"outlet"`
	Quantity int    `json:"quantity"`
}

// SalesSummaryDTO agregados de ventas del período consultado.
type SalesSummaryDTO struct {
	Count         int             `json:"count"`
	UnitsSold     int             `json:"units_sold"`
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	NetRevenue    decimal.Decimal `json:"net_revenue"`
}

// TopCustomerDTO cliente por valor neto.
type TopCustomerDTO struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Purchases  int             `json:"purchases"`
	NetValue   decimal.Decimal `json:"netValue"`
}
