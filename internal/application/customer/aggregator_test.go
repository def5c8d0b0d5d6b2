package customer_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/testutil"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func newAggregator(t *testing.T) (*customer.AggregatorUseCase, *testutil.MemStore, *entity.Customer) {
	t.Helper()
	store := testutil.NewMemStore()
	uc := customer.NewAggregatorUseCase(&testutil.CustomerRepo{S: store})
	cust := &entity.Customer{
		ID:    uuid.New().String(),
		Name:  "Ramón Núñez",
		Email: "ramon@example.com",
		Phone: "3109876543",
	}
	store.SeedCustomer(cust)
	return uc, store, cust
}

func seedSale(store *testutil.MemStore, customerID, total string) {
	repo := &testutil.SaleRepo{S: store}
	_ = repo.Create(&entity.Sale{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ItemID:      uuid.New().String(),
		Quantity:    1,
		TotalAmount: d(total),
		CreatedAt:   time.Now(),
	})
}

func seedService(store *testutil.MemStore, customerID, status, cost string, finalCost *string) {
	repo := &testutil.ServiceRepo{S: store}
	order := &entity.ServiceOrder{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		WatchBrand: "Rolex",
		Issue:      "no da la hora",
		Cost:       d(cost),
		Status:     status,
	}
	if finalCost != nil {
		fc := d(*finalCost)
		order.FinalCost = &fc
	}
	_ = repo.Create(order)
}

func TestRecompute_SumaVentasYServiciosCompletados(t *testing.T) {
	uc, store, cust := newAggregator(t)
	seedSale(store, cust.ID, "200")
	seedSale(store, cust.ID, "150")
	seedService(store, cust.ID, entity.ServiceStatusCompleted, "80", nil)

	summary, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.True(t, summary.NetValue.Equal(d("430")), "200 + 150 + 80, fue %s", summary.NetValue)
	assert.Equal(t, 2, summary.Purchases)
	assert.Equal(t, 1, summary.ServiceCount)

	stored := store.Customer(cust.ID)
	assert.True(t, stored.NetValue.Equal(d("430")), "el recálculo persiste los campos derivados")
}

// Solo los servicios completados aportan al netValue; los demás estados
// cuentan en serviceCount pero no suman.
func TestRecompute_ServiciosNoCompletadosNoSuman(t *testing.T) {
	uc, store, cust := newAggregator(t)
	seedService(store, cust.ID, entity.ServiceStatusPending, "50", nil)
	seedService(store, cust.ID, entity.ServiceStatusInProgress, "60", nil)
	seedService(store, cust.ID, entity.ServiceStatusCancelled, "70", nil)
	seedService(store, cust.ID, entity.ServiceStatusCompleted, "40", nil)

	summary, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.True(t, summary.NetValue.Equal(d("40")), "solo el completado aporta, fue %s", summary.NetValue)
	assert.Equal(t, 4, summary.ServiceCount, "serviceCount cuenta todos los estados")
	assert.Equal(t, 0, summary.Purchases)
}

// Cuando hay costo final fijado al completar, prevalece sobre el estimado.
func TestRecompute_CostoFinalPrevaleceSobreEstimado(t *testing.T) {
	uc, store, cust := newAggregator(t)
	fc := "120"
	seedService(store, cust.ID, entity.ServiceStatusCompleted, "80", &fc)

	summary, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.True(t, summary.NetValue.Equal(d("120")), "finalCost reemplaza a cost, fue %s", summary.NetValue)
}

// Recompute deriva siempre desde las filas: llamarlo dos veces seguidas da
// exactamente el mismo resultado (sin deriva incremental).
func TestRecompute_Idempotente(t *testing.T) {
	uc, store, cust := newAggregator(t)
	seedSale(store, cust.ID, "300")
	seedService(store, cust.ID, entity.ServiceStatusCompleted, "100", nil)

	first, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	second, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)

	assert.True(t, first.NetValue.Equal(second.NetValue))
	assert.Equal(t, first.Purchases, second.Purchases)
	assert.Equal(t, first.ServiceCount, second.ServiceCount)
}

// Un nudge de contador descuadra el valor cacheado; el siguiente Recompute
// lo corrige porque deriva desde las filas, no desde el contador.
func TestRecompute_CorrigeNudgesDeContador(t *testing.T) {
	uc, store, cust := newAggregator(t)
	seedSale(store, cust.ID, "100")

	require.NoError(t, uc.IncrementPurchases(context.Background(), cust.ID))
	require.NoError(t, uc.IncrementPurchases(context.Background(), cust.ID))
	require.Equal(t, 2, store.Customer(cust.ID).Purchases, "el nudge es aritmética ciega")

	summary, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Purchases, "el recálculo restaura la verdad de las filas")
}

func TestRecompute_SinFilasDejaTodoEnCero(t *testing.T) {
	uc, _, cust := newAggregator(t)

	summary, err := uc.Recompute(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.True(t, summary.NetValue.IsZero())
	assert.Equal(t, 0, summary.Purchases)
	assert.Equal(t, 0, summary.ServiceCount)
}

func TestRecompute_ClienteInexistente(t *testing.T) {
	uc, _, _ := newAggregator(t)

	_, err := uc.Recompute(context.Background(), uuid.New().String())
	assert.Equal(t, domain.ErrNotFound, err)
}
