package sales

import (
	"context"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// SalesTxRunner abre una transacción con los repositorios que participan en
// una venta. El rollback de la tx es el mecanismo de compensación: si la
// escritura de la venta o el recálculo del cliente fallan, el descuento de
// stock se revierte con ellos y ningún estado parcial escapa.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una venta (adaptador de
// infraestructura).
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, customer *entity.Customer, item *entity.InventoryItem) ([]byte, error)
}
