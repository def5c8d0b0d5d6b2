package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/application/inventory"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/testutil"
)

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	uc := inventory.NewLedgerUseCase(
		testutil.NewTxRunner(store),
		&testutil.ItemRepo{S: store},
		&testutil.MovementRepo{S: store},
	)
	return uc, store
}

func seedItem(store *testutil.MemStore, quantity int) *entity.InventoryItem {
	item := &entity.InventoryItem{
		ID:       uuid.New().String(),
		Code:     "REL-001",
		Type:     entity.ItemTypeWatch,
		Brand:    "Casio",
		Model:    "F-91W",
		Price:    decimal.NewFromInt(150),
		Quantity: quantity,
		Outlet:   entity.OutletPrincipal,
		Status:   entity.InitialStatus(quantity),
	}
	store.SeedItem(item)
	return item
}

func TestCreateItem_RegistraMovimientoInicial(t *testing.T) {
	uc, store := newLedger(t)

	item, err := uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Code:     "rel-010",
		Type:     entity.ItemTypeWatch,
		Brand:    "Citizen",
		Model:    "Eco-Drive",
		Price:    decimal.NewFromInt(400),
		Quantity: 3,
		Outlet:   entity.OutletNorte,
	})
	require.NoError(t, err)
	assert.Equal(t, "REL-010", item.Code, "el código se normaliza a mayúsculas")
	assert.Equal(t, entity.ItemStatusAvailable, item.Status)
	assert.Equal(t, 1, store.MovementCount(item.ID), "alta registra movimiento de stock inicial")
}

func TestCreateItem_CantidadCeroNaceOutOfStock(t *testing.T) {
	uc, _ := newLedger(t)

	item, err := uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Code:     "REL-011",
		Type:     entity.ItemTypeClock,
		Brand:    "Seiko",
		Price:    decimal.NewFromInt(90),
		Quantity: 0,
		Outlet:   entity.OutletCentro,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusOutOfStock, item.Status, "cantidad cero sin venta nunca es sold")
}

func TestCreateItem_CorreaSinTalleEsInvalida(t *testing.T) {
	uc, _ := newLedger(t)

	_, err := uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Code:     "COR-001",
		Type:     entity.ItemTypeStrap,
		Brand:    "Hirsch",
		Price:    decimal.NewFromInt(30),
		Quantity: 5,
		Outlet:   entity.OutletPrincipal,
	})
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestCreateItem_CodigoDuplicado(t *testing.T) {
	uc, store := newLedger(t)
	seedItem(store, 2)

	_, err := uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Code:     "rel-001",
		Type:     entity.ItemTypeWatch,
		Brand:    "Otro",
		Price:    decimal.NewFromInt(10),
		Quantity: 1,
		Outlet:   entity.OutletPrincipal,
	})
	assert.Equal(t, domain.ErrDuplicate, err, "la comparación de código ignora mayúsculas")
}

func TestCreateItem_PuntoDeVentaInvalido(t *testing.T) {
	uc, _ := newLedger(t)

	_, err := uc.CreateItem(context.Background(), "user-1", dto.CreateItemRequest{
		Code:     "REL-012",
		Type:     entity.ItemTypeWatch,
		Brand:    "Casio",
		Price:    decimal.NewFromInt(100),
		Quantity: 1,
		Outlet:   "sucursal-sur",
	})
	assert.Equal(t, domain.ErrInvalidOutlet, err)
}

func TestDecrease_AlLlegarACeroQuedaSold(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 2)

	updated, err := uc.Decrease(context.Background(), item.ID, 2, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, entity.ItemStatusSold, updated.Status, "agotarse por venta marca sold")
	assert.Equal(t, 2, updated.TotalSold)
	assert.NotNil(t, updated.LastSaleDate)
}

func TestDecrease_StockInsuficienteNoMuta(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 1)

	_, err := uc.Decrease(context.Background(), item.ID, 3, "user-1")
	assert.Equal(t, domain.ErrInsufficientStock, err)
	assert.Equal(t, 1, store.Item(item.ID).Quantity, "un descuento rechazado no toca la cantidad")
}

func TestDecrease_ArticuloInexistente(t *testing.T) {
	uc, _ := newLedger(t)

	_, err := uc.Decrease(context.Background(), uuid.New().String(), 1, "user-1")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestIncrease_DesdeSoldVuelveAAvailable(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 1)

	_, err := uc.Decrease(context.Background(), item.ID, 1, "user-1")
	require.NoError(t, err)
	require.Equal(t, entity.ItemStatusSold, store.Item(item.ID).Status)

	updated, err := uc.Increase(context.Background(), item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, entity.ItemStatusAvailable, updated.Status, "reponer stock restaura available")
}

func TestAdjust_ACeroQuedaOutOfStockNoSold(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 5)

	updated, err := uc.Adjust(context.Background(), item.ID, 0, "conteo físico", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, entity.ItemStatusOutOfStock, updated.Status,
		"llegar a cero por ajuste manual es out-of-stock, no sold")
	assert.Equal(t, 1, store.MovementCount(item.ID), "el ajuste queda en el historial")
}

func TestAdjust_CantidadNegativaEsInvalida(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 5)

	_, err := uc.Adjust(context.Background(), item.ID, -1, "", "user-1")
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestMoveToOutlet_RegistraMovimientoYActualizaOutlet(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 2)

	moved, err := uc.MoveToOutlet(context.Background(), item.ID, entity.OutletNorte, "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OutletNorte, moved.Outlet)
	assert.Equal(t, entity.OutletNorte, store.Item(item.ID).Outlet)
	assert.Equal(t, 1, store.MovementCount(item.ID))
}

func TestMoveToOutlet_MismoDestinoEsError(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 2)

	_, err := uc.MoveToOutlet(context.Background(), item.ID, entity.OutletPrincipal, "", "user-1")
	assert.Equal(t, domain.ErrSameOutlet, err)
	assert.Equal(t, 0, store.MovementCount(item.ID), "un traslado rechazado no registra movimiento")
}

func TestMoveToOutlet_DestinoInvalido(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 2)

	_, err := uc.MoveToOutlet(context.Background(), item.ID, "bodega", "", "user-1")
	assert.Equal(t, domain.ErrInvalidOutlet, err)
}

func TestDeleteItem_BorradoLogicoConservaHistorial(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 2)
	_, err := uc.MoveToOutlet(context.Background(), item.ID, entity.OutletCentro, "", "user-1")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(context.Background(), item.ID))

	_, err = uc.GetItem(context.Background(), item.ID)
	assert.Equal(t, domain.ErrNotFound, err, "un artículo borrado no se sirve por GetItem")
	assert.Equal(t, 1, store.MovementCount(item.ID), "el historial sobrevive al borrado lógico")

	_, err = uc.Decrease(context.Background(), item.ID, 1, "user-1")
	assert.Equal(t, domain.ErrNotFound, err, "un artículo borrado no se vende")
}

// Dos ventas concurrentes sobre un artículo con una sola unidad: exactamente
// una debe ganar el descuento condicional y la otra recibir stock
// insuficiente. Nunca puede haber sobreventa.
func TestDecrease_ConcurrenteNoSobrevende(t *testing.T) {
	uc, store := newLedger(t)
	item := seedItem(store, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Decrease(context.Background(), item.ID, 1, "user-1")
		}(i)
	}
	wg.Wait()

	var oks, insufficient int
	for _, err := range errs {
		switch err {
		case nil:
			oks++
		case domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks, "exactamente una venta debe ganar")
	assert.Equal(t, 1, insufficient, "la otra debe recibir stock insuficiente")

	final := store.Item(item.ID)
	assert.Equal(t, 0, final.Quantity, "la cantidad nunca baja de cero")
	assert.Equal(t, entity.ItemStatusSold, final.Status)
	assert.Equal(t, 1, final.TotalSold)
}
