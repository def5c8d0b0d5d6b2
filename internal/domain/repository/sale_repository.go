package repository

import (
	"time"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas.
type SaleFilter struct {
	CustomerID string
	From, To   *time.Time
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
}
