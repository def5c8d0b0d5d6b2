package repository

import (
	"time"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// ItemFilter criterios de listado de inventario.
type ItemFilter struct {
	Outlet         string
	Status         string
	Type           string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// ItemRepository define el puerto de persistencia para artículos de inventario.
//
// DecrementForSale e Increment son actualizaciones condicionales atómicas
// (un solo UPDATE con predicado sobre quantity), no read-modify-write: dos
// ventas concurrentes sobre el mismo artículo nunca pueden sobrevender.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCode(code string) (*entity.InventoryItem, error)
	List(filter ItemFilter) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	SoftDelete(id string) error

	// DecrementForSale resta amount si quantity >= amount; si la cantidad
	// resultante es 0 marca status = sold; acumula TotalSold y LastSaleDate.
	// Devuelve domain.ErrInsufficientStock si el predicado no afecta filas.
	DecrementForSale(id string, amount int, saleDate time.Time) (*entity.InventoryItem, error)
	// Increment suma amount; si el estado era sold/out-of-stock y la cantidad
	// resultante es > 0, vuelve a available.
	Increment(id string, amount int) (*entity.InventoryItem, error)
	// SetQuantity fija la cantidad (ajuste manual); 0 marca out-of-stock,
	// nunca sold.
	SetQuantity(id string, quantity int) (*entity.InventoryItem, error)
	// UpdateOutlet cambia el punto de venta actual del artículo.
	UpdateOutlet(id, outlet string) error
}
