package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// LedgerUseCase es la única autoridad sobre cantidad, estado y procedencia
// (historial de movimientos) de cada artículo del inventario.
//
// Las mutaciones de cantidad son UPDATEs condicionales atómicos en el
// repositorio ("resta donde quantity >= amount"), nunca read-modify-write:
// dos ventas concurrentes sobre el mismo artículo no pueden sobrevender.
type LedgerUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// CreateItem da de alta un artículo con su registro sintético de movimiento
// inicial (FromOutlet = nil). Code se normaliza a mayúsculas y es inmutable.
func (uc *LedgerUseCase) CreateItem(ctx context.Context, actorID string, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || !entity.ValidItemType(in.Type) || in.Brand == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.ItemTypeStrap && strings.TrimSpace(in.Size) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.GreaterThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidOutlet(in.Outlet) {
		return nil, domain.ErrInvalidOutlet
	}
	if existing, _ := uc.itemRepo.GetByCode(code); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		Code:      code,
		Type:      in.Type,
		Brand:     in.Brand,
		Model:     in.Model,
		Size:      in.Size,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Outlet:    in.Outlet,
		Status:    entity.InitialStatus(in.Quantity),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			ToOutlet:  item.Outlet,
			Reason:    entity.MovementReasonInitialStock,
			MovedBy:   actorID,
			Date:      now,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Decrease descuenta stock por venta. Falla con ErrNotFound si el artículo no
// existe (o está borrado) y con ErrInsufficientStock si amount supera la
// cantidad actual. Al llegar a cero por esta vía el estado queda en "sold".
func (uc *LedgerUseCase) Decrease(ctx context.Context, itemID string, amount int, _ string) (*entity.InventoryItem, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.DecrementForSale(itemID, amount, time.Now())
}

// DecreaseInTx variante para orquestadores que ya abrieron una transacción
// (ventas): usa el repositorio atado a esa tx.
func (uc *LedgerUseCase) DecreaseInTx(itemRepo repository.ItemRepository, itemID string, amount int, saleDate time.Time) (*entity.InventoryItem, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return itemRepo.DecrementForSale(itemID, amount, saleDate)
}

// Increase suma stock (devolución o reposición). Si el estado era sold u
// out-of-stock y la cantidad resultante es positiva, vuelve a available.
// Sin cota superior.
func (uc *LedgerUseCase) Increase(ctx context.Context, itemID string, amount int) (*entity.InventoryItem, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.Increment(itemID, amount)
}

// IncreaseInTx variante transaccional de Increase (compensaciones de ventas).
func (uc *LedgerUseCase) IncreaseInTx(itemRepo repository.ItemRepository, itemID string, amount int) (*entity.InventoryItem, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return itemRepo.Increment(itemID, amount)
}

// Adjust corrección manual de cantidad. Llegar a cero por esta vía deja el
// estado en "out-of-stock" (no "sold": la distinción es el motivo explícito
// de la transición, no el call site). Registra un movimiento dentro del
// mismo punto de venta con el motivo dado.
func (uc *LedgerUseCase) Adjust(ctx context.Context, itemID string, quantity int, reason, actorID string) (*entity.InventoryItem, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if reason == "" {
		reason = entity.MovementReasonAdjustment
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}

	var updated *entity.InventoryItem
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		var err error
		updated, err = itemRepo.SetQuantity(itemID, quantity)
		if err != nil {
			return err
		}
		from := item.Outlet
		return movRepo.Create(&entity.Movement{
			ID:         uuid.New().String(),
			ItemID:     itemID,
			FromOutlet: &from,
			ToOutlet:   item.Outlet,
			Reason:     reason,
			MovedBy:    actorID,
			Date:       now,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MoveToOutlet traslada el artículo a otro punto de venta: valida el destino,
// registra el movimiento y actualiza el outlet en la misma transacción.
func (uc *LedgerUseCase) MoveToOutlet(ctx context.Context, itemID, newOutlet, reason, actorID string) (*entity.InventoryItem, error) {
	if !entity.ValidOutlet(newOutlet) {
		return nil, domain.ErrInvalidOutlet
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if item.Outlet == newOutlet {
		return nil, domain.ErrSameOutlet
	}
	if reason == "" {
		reason = entity.MovementReasonTransfer
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		from := item.Outlet
		if err := movRepo.Create(&entity.Movement{
			ID:         uuid.New().String(),
			ItemID:     itemID,
			FromOutlet: &from,
			ToOutlet:   newOutlet,
			Reason:     reason,
			MovedBy:    actorID,
			Date:       now,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		return itemRepo.UpdateOutlet(itemID, newOutlet)
	})
	if err != nil {
		return nil, err
	}
	item.Outlet = newOutlet
	item.UpdatedAt = now
	return item, nil
}

// RecordMovement registro de bajo nivel en el historial. No cambia el outlet
// del artículo: eso es responsabilidad del caller (MoveToOutlet es la
// operación de alto nivel que hace ambas cosas).
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, itemID string, from *string, to, reason, actorID string) error {
	if to != "" && !entity.ValidOutlet(to) {
		return domain.ErrInvalidOutlet
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	return uc.movRepo.Create(&entity.Movement{
		ID:         uuid.New().String(),
		ItemID:     itemID,
		FromOutlet: from,
		ToOutlet:   to,
		Reason:     reason,
		MovedBy:    actorID,
		Date:       now,
		CreatedAt:  now,
	})
}

// Movements devuelve el historial de un artículo (más reciente primero).
func (uc *LedgerUseCase) Movements(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// GetItem obtiene un artículo por ID.
func (uc *LedgerUseCase) GetItem(ctx context.Context, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista artículos según filtro.
func (uc *LedgerUseCase) ListItems(ctx context.Context, filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.itemRepo.List(filter)
}

// UpdateItem edita campos descriptivos. Code es inmutable y la cantidad solo
// se muta por las operaciones del ledger.
func (uc *LedgerUseCase) UpdateItem(ctx context.Context, itemID string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if in.Brand != nil {
		if *in.Brand == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Brand = *in.Brand
	}
	if in.Model != nil {
		item.Model = *in.Model
	}
	if in.Size != nil {
		if item.Type == entity.ItemTypeStrap && strings.TrimSpace(*in.Size) == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Size = *in.Size
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem borrado lógico: el artículo deja de listarse y venderse pero
// conserva historial de movimientos y ventas que lo referencian.
func (uc *LedgerUseCase) DeleteItem(ctx context.Context, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.itemRepo.SoftDelete(itemID)
}
