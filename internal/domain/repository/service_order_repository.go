package repository

import "github.com/jhoicas/relojeria-api/internal/domain/entity"

// ServiceOrderFilter criterios de listado de órdenes de servicio.
type ServiceOrderFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// ServiceOrderRepository define el puerto de persistencia para órdenes de
// servicio. Las notas son append-only.
type ServiceOrderRepository interface {
	Create(order *entity.ServiceOrder) error
	GetByID(id string) (*entity.ServiceOrder, error)
	List(filter ServiceOrderFilter) ([]*entity.ServiceOrder, error)
	Update(order *entity.ServiceOrder) error
	Delete(id string) error
	AddNote(note *entity.ServiceNote) error
	ListNotes(serviceID string) ([]entity.ServiceNote, error)
}
