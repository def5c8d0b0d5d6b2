package customer

import (
	"context"

	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// AggregatorUseCase mantiene netValue, purchases y serviceCount de un cliente
// consistentes con las filas autoritativas de ventas y servicios.
//
// Contrato: Recompute deriva siempre desde la verdad (las filas), nunca
// aritmética incremental sobre el valor cacheado — así no hay deriva. Los
// nudges de contador existen solo como optimización de latencia de UI y deben
// ir seguidos de un Recompute antes de considerar el valor durable.
type AggregatorUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewAggregatorUseCase construye el agregador.
func NewAggregatorUseCase(customerRepo repository.CustomerRepository) *AggregatorUseCase {
	return &AggregatorUseCase{customerRepo: customerRepo}
}

// Recompute recalcula y persiste los tres campos derivados en una sola
// escritura: netValue = sum(ventas.totalAmount) + sum(servicios completados,
// finalCost si existe, cost en su defecto); purchases = count(ventas);
// serviceCount = count(servicios, cualquier estado). Idempotente.
func (uc *AggregatorUseCase) Recompute(ctx context.Context, customerID string) (*entity.AccountSummary, error) {
	c, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.customerRepo.RecomputeSummary(customerID)
}

// RecomputeInTx variante para orquestadores que ya abrieron una transacción:
// usa el repositorio atado a esa tx para que el recálculo lea el snapshot de
// la misma transacción que mutó ventas/servicios.
func (uc *AggregatorUseCase) RecomputeInTx(customerRepo repository.CustomerRepository, customerID string) (*entity.AccountSummary, error) {
	summary, err := customerRepo.RecomputeSummary(customerID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, domain.ErrNotFound
	}
	return summary, nil
}

// IncrementPurchases / DecrementPurchases: nudge de contador. No toca netValue.
func (uc *AggregatorUseCase) IncrementPurchases(ctx context.Context, customerID string) error {
	return uc.customerRepo.AddPurchases(customerID, 1)
}

func (uc *AggregatorUseCase) DecrementPurchases(ctx context.Context, customerID string) error {
	return uc.customerRepo.AddPurchases(customerID, -1)
}

// IncrementServices / DecrementServices: nudge de contador. No toca netValue.
func (uc *AggregatorUseCase) IncrementServices(ctx context.Context, customerID string) error {
	return uc.customerRepo.AddServices(customerID, 1)
}

func (uc *AggregatorUseCase) DecrementServices(ctx context.Context, customerID string) error {
	return uc.customerRepo.AddServices(customerID, -1)
}
