package sales

import (
	"context"

	"github.com/jhoicas/relojeria-api/internal/domain"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	sales     *UseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales *UseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator}
}

// Generate carga venta, cliente y artículo y produce los bytes del PDF.
// El artículo puede estar borrado lógicamente (venta histórica): se usa igual.
func (uc *ReceiptUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	cust, err := uc.sales.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	item, err := uc.sales.itemRepo.GetByID(sale.ItemID)
	if err != nil {
		return nil, err
	}
	if cust == nil || item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceipt(ctx, sale, cust, item)
}
