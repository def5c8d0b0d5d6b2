package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo manejados por la relojería.
const (
	ItemTypeWatch     = "watch"
	ItemTypeClock     = "clock"
	ItemTypeTimepiece = "timepiece"
	ItemTypeStrap     = "strap"
	ItemTypeBattery   = "battery"
)

// Puntos de venta fijos del negocio (tres locales físicos).
const (
	OutletPrincipal = "principal"
	OutletNorte     = "norte"
	OutletCentro    = "centro"
)

// Estados de stock de un artículo.
// "sold" se alcanza únicamente cuando una venta deja la cantidad en cero;
// "out-of-stock" cuando llega a cero por cualquier otra vía (ajuste manual).
const (
	ItemStatusAvailable  = "available"
	ItemStatusOutOfStock = "out-of-stock"
	ItemStatusSold       = "sold"
)

// InventoryItem representa un artículo del inventario. Code es la clave de
// negocio (única, mayúsculas, inmutable); Status se deriva de Quantity y se
// mantiene de forma incremental en cada operación del ledger.
type InventoryItem struct {
	ID           string
	Code         string
	Type         string
	Brand        string
	Model        string
	Size         string // obligatorio solo cuando Type == strap
	Price        decimal.Decimal
	Quantity     int
	Outlet       string
	Status       string
	TotalSold    int
	LastSaleDate *time.Time
	IsDeleted    bool // borrado lógico: conserva historial de movimientos y ventas
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidItemType verifica pertenencia al enum de tipos.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeWatch, ItemTypeClock, ItemTypeTimepiece, ItemTypeStrap, ItemTypeBattery:
		return true
	}
	return false
}

// ValidOutlet verifica pertenencia al enum de puntos de venta.
func ValidOutlet(o string) bool {
	switch o {
	case OutletPrincipal, OutletNorte, OutletCentro:
		return true
	}
	return false
}

// InitialStatus estado de un artículo recién creado según su cantidad.
func InitialStatus(quantity int) string {
	if quantity > 0 {
		return ItemStatusAvailable
	}
	return ItemStatusOutOfStock
}
