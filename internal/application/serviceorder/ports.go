package serviceorder

import (
	"context"

	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// ServiceTxRunner abre una transacción con los repositorios que participan en
// una transición de servicio con efecto sobre la cuenta del cliente
// (completar, eliminar, reasignar).
type ServiceTxRunner interface {
	RunService(ctx context.Context, fn func(
		serviceRepo repository.ServiceOrderRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
