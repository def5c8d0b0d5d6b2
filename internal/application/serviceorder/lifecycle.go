package serviceorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// Garantía máxima en meses para un servicio completado.
const maxWarrantyMonths = 60

// LifecycleUseCase gobierna la máquina de estados del taller:
// pending -> in-progress <-> on-hold -> completed, con cancelled alcanzable
// desde cualquier estado no terminal. Solo la transición a completed aporta
// el costo a la cuenta del cliente, vía recálculo del agregador.
type LifecycleUseCase struct {
	txRunner     ServiceTxRunner
	aggregator   *customer.AggregatorUseCase
	serviceRepo  repository.ServiceOrderRepository
	customerRepo repository.CustomerRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner ServiceTxRunner,
	aggregator *customer.AggregatorUseCase,
	serviceRepo repository.ServiceOrderRepository,
	customerRepo repository.CustomerRepository,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:     txRunner,
		aggregator:   aggregator,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
	}
}

// Create recibe una orden de servicio en estado pending. El contador
// serviceCount del cliente cuenta servicios en cualquier estado, así que la
// creación ya recomputa la cuenta.
func (uc *LifecycleUseCase) Create(ctx context.Context, actorID string, in dto.CreateServiceRequest) (*entity.ServiceOrder, error) {
	if strings.TrimSpace(in.WatchBrand) == "" || strings.TrimSpace(in.Issue) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cust, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.ServiceOrder{
		ID:               uuid.New().String(),
		CustomerID:       in.CustomerID,
		WatchBrand:       in.WatchBrand,
		WatchModel:       in.WatchModel,
		WatchDescription: in.WatchDescription,
		Issue:            in.Issue,
		Cost:             in.Cost,
		Status:           entity.ServiceStatusPending,
		ReceivedBy:       actorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunService(ctx, func(serviceRepo repository.ServiceOrderRepository, customerRepo repository.CustomerRepository) error {
		if err := serviceRepo.Create(order); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, in.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus aplica una transición simple de estado. Un cambio que no sea
// una completación no tiene efecto sobre netValue. Completar exige pasar por
// Complete, que valida los campos de cierre.
func (uc *LifecycleUseCase) UpdateStatus(ctx context.Context, serviceID, newStatus, actorID string) (*entity.ServiceOrder, error) {
	if !entity.ValidServiceStatus(newStatus) {
		return nil, domain.ErrInvalidStatus
	}
	if newStatus == entity.ServiceStatusCompleted {
		// la completación lleva campos obligatorios; usar Complete
		return nil, domain.ErrInvalidTransition
	}
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := uc.serviceRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Complete cierra la orden: valida descripción, costo final y garantía
// (0..60 meses), fija los campos de cierre, anota la completación y recalcula
// la cuenta del cliente en la misma transacción para incorporar FinalCost
// (o Cost en su defecto) al netValue.
func (uc *LifecycleUseCase) Complete(ctx context.Context, serviceID, actorID string, in dto.CompleteServiceRequest) (*entity.ServiceOrder, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FinalCost != nil && in.FinalCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.WarrantyMonths < 0 || in.WarrantyMonths > maxWarrantyMonths {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, entity.ServiceStatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	order.Status = entity.ServiceStatusCompleted
	order.FinalCost = in.FinalCost
	order.WarrantyMonths = in.WarrantyMonths
	order.ActualDelivery = in.ActualDelivery
	if order.ActualDelivery == nil {
		order.ActualDelivery = &now
	}
	order.CompletionDescription = in.Description
	order.UpdatedAt = now

	note := &entity.ServiceNote{
		ID:        uuid.New().String(),
		ServiceID: order.ID,
		Text:      fmt.Sprintf("servicio completado: %s", in.Description),
		AddedBy:   actorID,
		CreatedAt: now,
	}

	err = uc.txRunner.RunService(ctx, func(serviceRepo repository.ServiceOrderRepository, customerRepo repository.CustomerRepository) error {
		if err := serviceRepo.Update(order); err != nil {
			return err
		}
		if err := serviceRepo.AddNote(note); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, order.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	order.Notes = append(order.Notes, *note)
	return order, nil
}

// AddNote agrega una anotación append-only a la orden.
func (uc *LifecycleUseCase) AddNote(ctx context.Context, serviceID, text, actorID string) (*entity.ServiceNote, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	note := &entity.ServiceNote{
		ID:        uuid.New().String(),
		ServiceID: serviceID,
		Text:      text,
		AddedBy:   actorID,
		CreatedAt: time.Now(),
	}
	if err := uc.serviceRepo.AddNote(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete elimina una orden por acción administrativa explícita y recomputa la
// cuenta del cliente en la misma transacción: si la orden estaba completada,
// su aporte al netValue se retrae automáticamente al derivar desde las filas
// restantes.
func (uc *LifecycleUseCase) Delete(ctx context.Context, serviceID, _ string) error {
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunService(ctx, func(serviceRepo repository.ServiceOrderRepository, customerRepo repository.CustomerRepository) error {
		if err := serviceRepo.Delete(serviceID); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, order.CustomerID)
		return err
	})
}

// Reassign mueve la orden a otro cliente y recomputa ambas cuentas en la
// misma transacción (re-atribución del aporte si estaba completada).
func (uc *LifecycleUseCase) Reassign(ctx context.Context, serviceID, newCustomerID string) (*entity.ServiceOrder, error) {
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CustomerID == newCustomerID {
		return order, nil
	}
	cust, err := uc.customerRepo.GetByID(newCustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, domain.ErrNotFound
	}

	oldCustomerID := order.CustomerID
	order.CustomerID = newCustomerID
	order.UpdatedAt = time.Now()

	err = uc.txRunner.RunService(ctx, func(serviceRepo repository.ServiceOrderRepository, customerRepo repository.CustomerRepository) error {
		if err := serviceRepo.Update(order); err != nil {
			return err
		}
		if _, err := uc.aggregator.RecomputeInTx(customerRepo, oldCustomerID); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, newCustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get obtiene una orden con sus notas.
func (uc *LifecycleUseCase) Get(ctx context.Context, serviceID string) (*entity.ServiceOrder, error) {
	order, err := uc.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	notes, err := uc.serviceRepo.ListNotes(serviceID)
	if err != nil {
		return nil, err
	}
	order.Notes = notes
	return order, nil
}

// List lista órdenes según filtro.
func (uc *LifecycleUseCase) List(ctx context.Context, filter repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Status != "" && !entity.ValidServiceStatus(filter.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return uc.serviceRepo.List(filter)
}
