package repository

import "github.com/jhoicas/relojeria-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
//
// RecomputeSummary es la operación central del agregador de cuenta: deriva
// net_value, purchases y service_count desde las filas de ventas/servicios
// en una sola sentencia (snapshot consistente, idempotente) y persiste los
// tres campos juntos.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Search(normalizedQuery string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error

	RecomputeSummary(id string) (*entity.AccountSummary, error)
	// AddPurchases / AddServices: ajustes incrementales de contador (delta
	// puede ser negativo). Solo optimización de latencia; no tocan net_value
	// y deben ir seguidos de RecomputeSummary antes de considerarse durables.
	AddPurchases(id string, delta int) error
	AddServices(id string, delta int) error
	// CountReferences cuenta ventas y servicios que referencian al cliente
	// (guardia de borrado).
	CountReferences(id string) (sales, services int, err error)
}
