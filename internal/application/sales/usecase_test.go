package sales_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/application/inventory"
	"github.com/jhoicas/relojeria-api/internal/application/sales"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/testutil"
)

type fixture struct {
	uc       *sales.UseCase
	store    *testutil.MemStore
	item     *entity.InventoryItem
	customer *entity.Customer
}

func newFixture(t *testing.T, quantity int, price string) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	runner := testutil.NewTxRunner(store)
	itemRepo := &testutil.ItemRepo{S: store}
	custRepo := &testutil.CustomerRepo{S: store}
	saleRepo := &testutil.SaleRepo{S: store}

	ledger := inventory.NewLedgerUseCase(runner, itemRepo, &testutil.MovementRepo{S: store})
	aggregator := customer.NewAggregatorUseCase(custRepo)
	uc := sales.NewUseCase(runner, ledger, aggregator, custRepo, itemRepo, saleRepo)

	item := &entity.InventoryItem{
		ID:       uuid.New().String(),
		Code:     "REL-001",
		Type:     entity.ItemTypeWatch,
		Brand:    "Casio",
		Model:    "F-91W",
		Price:    d(price),
		Quantity: quantity,
		Outlet:   entity.OutletPrincipal,
		Status:   entity.InitialStatus(quantity),
	}
	store.SeedItem(item)

	cust := &entity.Customer{
		ID:    uuid.New().String(),
		Name:  "María Pérez",
		Email: "maria@example.com",
		Phone: "3001234567",
	}
	store.SeedCustomer(cust)

	return &fixture{uc: uc, store: store, item: item, customer: cust}
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// Escenario base: venta de 2 unidades sin descuento. Debe descontar stock,
// crear la fila de venta y dejar la cuenta del cliente recomputada, todo
// como un solo efecto.
func TestCreate_VentaSimple(t *testing.T) {
	f := newFixture(t, 5, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(d("200")))
	assert.True(t, sale.TotalAmount.Equal(d("200")))
	assert.Equal(t, entity.DiscountNone, sale.DiscountType)

	item := f.store.Item(f.item.ID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 2, item.TotalSold)

	cust := f.store.Customer(f.customer.ID)
	assert.Equal(t, 1, cust.Purchases)
	assert.True(t, cust.NetValue.Equal(d("200")), "netValue = total de la venta, fue %s", cust.NetValue)
}

func TestCreate_DescuentoPorcentaje(t *testing.T) {
	f := newFixture(t, 5, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: d("10"),
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)
	assert.True(t, sale.DiscountAmount.Equal(d("20")))
	assert.True(t, sale.TotalAmount.Equal(d("180")))
	assert.True(t, f.store.Customer(f.customer.ID).NetValue.Equal(d("180")),
		"el netValue usa el total con descuento")
}

// Un descuento mayor al subtotal se acota y el total queda exactamente en
// cero; la venta sigue siendo válida y cuenta como compra.
func TestCreate_DescuentoAcotadoAlSubtotal(t *testing.T) {
	f := newFixture(t, 5, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      1,
		Price:         d("100"),
		DiscountType:  entity.DiscountAmount,
		DiscountValue: d("500"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, sale.DiscountAmount.Equal(d("100")))
	assert.True(t, sale.TotalAmount.IsZero())

	cust := f.store.Customer(f.customer.ID)
	assert.Equal(t, 1, cust.Purchases)
	assert.True(t, cust.NetValue.IsZero())
}

// Vender la última unidad deja el artículo en sold (no out-of-stock).
func TestCreate_UltimaUnidadMarcaSold(t *testing.T) {
	f := newFixture(t, 1, "100")

	_, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      1,
		Price:         d("100"),
		PaymentMethod: entity.PaymentTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusSold, f.store.Item(f.item.ID).Status)
}

func TestCreate_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t, 1, "100")

	_, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      5,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	assert.Equal(t, domain.ErrInsufficientStock, err)

	assert.Equal(t, 1, f.store.Item(f.item.ID).Quantity, "el stock queda intacto")
	assert.Equal(t, 0, f.store.SaleCount(), "no se crea fila de venta")
	cust := f.store.Customer(f.customer.ID)
	assert.Equal(t, 0, cust.Purchases)
	assert.True(t, cust.NetValue.IsZero())
}

// Si la escritura de la venta falla después del descuento de stock, la
// transacción revierte todo: el descuento no puede quedar huérfano.
func TestCreate_FalloEnMedioDeLaTxRevierteElStock(t *testing.T) {
	f := newFixture(t, 5, "100")
	f.store.FailSaleCreate = true

	_, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)

	item := f.store.Item(f.item.ID)
	assert.Equal(t, 5, item.Quantity, "el descuento de stock se revierte con la tx")
	assert.Equal(t, 0, item.TotalSold)
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t, 5, "100")

	_, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    uuid.New().String(),
		ItemID:        f.item.ID,
		Quantity:      1,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	assert.Equal(t, domain.ErrNotFound, err)
	assert.Equal(t, 5, f.store.Item(f.item.ID).Quantity)
}

func TestCreate_MetodoDePagoInvalido(t *testing.T) {
	f := newFixture(t, 5, "100")

	_, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      1,
		Price:         d("100"),
		PaymentMethod: "cheque",
	})
	assert.Equal(t, domain.ErrInvalidInput, err)
}

// Ida y vuelta: crear y eliminar una venta debe devolver inventario y cuenta
// del cliente exactamente al estado original.
func TestDelete_RestauraEstadoOriginal(t *testing.T) {
	f := newFixture(t, 3, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), sale.ID, "admin-1"))

	item := f.store.Item(f.item.ID)
	assert.Equal(t, 3, item.Quantity, "el stock vuelve al valor original")
	assert.Equal(t, entity.ItemStatusAvailable, item.Status)

	cust := f.store.Customer(f.customer.ID)
	assert.Equal(t, 0, cust.Purchases)
	assert.True(t, cust.NetValue.IsZero(), "el recálculo retrae el aporte, fue %s", cust.NetValue)
	assert.Equal(t, 0, f.store.SaleCount())
}

func TestDelete_VentaInexistente(t *testing.T) {
	f := newFixture(t, 3, "100")
	err := f.uc.Delete(context.Background(), uuid.New().String(), "admin-1")
	assert.Equal(t, domain.ErrNotFound, err)
}

// Editar la cantidad revierte el stock anterior y aplica el nuevo; los
// totales se recalculan y la cuenta del cliente se recomputa.
func TestUpdate_CambioDeCantidadReviertesYReaplica(t *testing.T) {
	f := newFixture(t, 5, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.store.Item(f.item.ID).Quantity)

	newQty := 4
	updated, err := f.uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(d("400")))

	assert.Equal(t, 1, f.store.Item(f.item.ID).Quantity, "5 - 4 tras revertir las 2 originales")
	assert.True(t, f.store.Customer(f.customer.ID).NetValue.Equal(d("400")))
}

// Si la nueva cantidad no alcanza, la tx se revierte y la venta original
// queda intacta con su efecto sobre el stock.
func TestUpdate_NuevaCantidadSinStockNoCambiaNada(t *testing.T) {
	f := newFixture(t, 3, "100")

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      2,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	newQty := 10
	_, err = f.uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	assert.Equal(t, domain.ErrInsufficientStock, err)

	assert.Equal(t, 1, f.store.Item(f.item.ID).Quantity, "queda el efecto de la venta original")
	stored := f.store.Sale(sale.ID)
	assert.Equal(t, 2, stored.Quantity, "la fila de venta conserva la cantidad original")
	assert.True(t, f.store.Customer(f.customer.ID).NetValue.Equal(d("200")))
}

// Cambiar el cliente recomputa al anterior (retrae) y al nuevo (atribuye).
func TestUpdate_CambioDeClienteRecomputaAmbos(t *testing.T) {
	f := newFixture(t, 5, "100")
	otro := &entity.Customer{
		ID:    uuid.New().String(),
		Name:  "José Gómez",
		Email: "jose@example.com",
		Phone: "3017654321",
	}
	f.store.SeedCustomer(otro)

	sale, err := f.uc.Create(context.Background(), "vendedor-1", dto.CreateSaleRequest{
		CustomerID:    f.customer.ID,
		ItemID:        f.item.ID,
		Quantity:      1,
		Price:         d("100"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{CustomerID: &otro.ID})
	require.NoError(t, err)

	anterior := f.store.Customer(f.customer.ID)
	assert.Equal(t, 0, anterior.Purchases)
	assert.True(t, anterior.NetValue.IsZero(), "el cliente anterior pierde el aporte")

	nuevo := f.store.Customer(otro.ID)
	assert.Equal(t, 1, nuevo.Purchases)
	assert.True(t, nuevo.NetValue.Equal(d("100")))

	assert.Equal(t, 4, f.store.Item(f.item.ID).Quantity, "sin cambio de cantidad el stock no se toca dos veces")
}
