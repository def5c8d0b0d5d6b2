package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/application/inventory"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
	domsale "github.com/jhoicas/relojeria-api/internal/domain/sale"
)

// UseCase orquesta el efecto multi-entidad de una venta: descuento de stock,
// fila de venta y recálculo de la cuenta del cliente, todo en una transacción.
type UseCase struct {
	txRunner     SalesTxRunner
	ledger       *inventory.LedgerUseCase
	aggregator   *customer.AggregatorUseCase
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	saleRepo     repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner SalesTxRunner,
	ledger *inventory.LedgerUseCase,
	aggregator *customer.AggregatorUseCase,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		aggregator:   aggregator,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		saleRepo:     saleRepo,
	}
}

// Create registra una venta. Dentro de la transacción: descuento condicional
// de stock (ErrInsufficientStock aborta sin crear nada), inserción de la fila
// de venta y recálculo del cliente sobre el snapshot de la misma tx.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.Quantity <= 0 || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	discountType := in.DiscountType
	if discountType == "" {
		discountType = entity.DiscountNone
	}

	// Validaciones de existencia fuera de la tx (solo lectura)
	cust, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}

	subtotal, discountAmount, total, err := domsale.ComputeTotals(in.Price, in.Quantity, domsale.DiscountSpec{
		Type:  discountType,
		Value: in.DiscountValue,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		ItemID:         in.ItemID,
		Quantity:       in.Quantity,
		UnitPrice:      in.Price,
		Subtotal:       subtotal,
		DiscountType:   discountType,
		DiscountValue:  in.DiscountValue,
		DiscountAmount: discountAmount,
		TotalAmount:    total,
		PaymentMethod:  in.PaymentMethod,
		SoldBy:         actorID,
		CreatedAt:      now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if _, err := uc.ledger.DecreaseInTx(itemRepo, in.ItemID, in.Quantity, now); err != nil {
			return err
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, in.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Delete revierte una venta: restaura el stock y recomputa al cliente sobre
// las ventas restantes (nunca resta a ciegas, para no derivar), y elimina la
// fila. Todo dentro de la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, saleID, _ string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if _, err := uc.ledger.IncreaseInTx(itemRepo, sale.ItemID, sale.Quantity); err != nil {
			return err
		}
		if err := saleRepo.Delete(saleID); err != nil {
			return err
		}
		_, err := uc.aggregator.RecomputeInTx(customerRepo, sale.CustomerID)
		return err
	})
}

// Update modifica una venta revirtiendo y reaplicando efectos: si cambian
// cantidad o artículo, devuelve el stock anterior y descuenta el nuevo (si el
// nuevo artículo no alcanza, la tx se revierte y el estado previo queda
// intacto); si cambia el cliente, recomputa al anterior y al nuevo.
func (uc *UseCase) Update(ctx context.Context, saleID string, in dto.UpdateSaleRequest) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	oldItemID, oldQuantity, oldCustomerID := sale.ItemID, sale.Quantity, sale.CustomerID

	if in.CustomerID != nil && *in.CustomerID != sale.CustomerID {
		c, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		sale.CustomerID = *in.CustomerID
	}
	if in.ItemID != nil && *in.ItemID != sale.ItemID {
		item, err := uc.itemRepo.GetByID(*in.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.IsDeleted {
			return nil, domain.ErrNotFound
		}
		sale.ItemID = *in.ItemID
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		sale.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		sale.UnitPrice = *in.Price
	}
	if in.DiscountType != nil {
		sale.DiscountType = *in.DiscountType
	}
	if in.DiscountValue != nil {
		sale.DiscountValue = *in.DiscountValue
	}
	if in.PaymentMethod != nil {
		if !entity.ValidPaymentMethod(*in.PaymentMethod) {
			return nil, domain.ErrInvalidInput
		}
		sale.PaymentMethod = *in.PaymentMethod
	}

	subtotal, discountAmount, total, err := domsale.ComputeTotals(sale.UnitPrice, sale.Quantity, domsale.DiscountSpec{
		Type:  sale.DiscountType,
		Value: sale.DiscountValue,
	})
	if err != nil {
		return nil, err
	}
	sale.Subtotal = subtotal
	sale.DiscountAmount = discountAmount
	sale.TotalAmount = total

	inventoryChanged := sale.ItemID != oldItemID || sale.Quantity != oldQuantity

	err = uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if inventoryChanged {
			if _, err := uc.ledger.IncreaseInTx(itemRepo, oldItemID, oldQuantity); err != nil {
				return err
			}
			if _, err := uc.ledger.DecreaseInTx(itemRepo, sale.ItemID, sale.Quantity, sale.CreatedAt); err != nil {
				return err
			}
		}
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		if _, err := uc.aggregator.RecomputeInTx(customerRepo, oldCustomerID); err != nil {
			return err
		}
		if sale.CustomerID != oldCustomerID {
			if _, err := uc.aggregator.RecomputeInTx(customerRepo, sale.CustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Get obtiene una venta por ID.
func (uc *UseCase) Get(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List lista ventas según filtro.
func (uc *UseCase) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.saleRepo.List(filter)
}
