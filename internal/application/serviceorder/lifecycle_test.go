package serviceorder_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/application/serviceorder"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/testutil"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func newLifecycle(t *testing.T) (*serviceorder.LifecycleUseCase, *testutil.MemStore, *entity.Customer) {
	t.Helper()
	store := testutil.NewMemStore()
	custRepo := &testutil.CustomerRepo{S: store}
	uc := serviceorder.NewLifecycleUseCase(
		testutil.NewTxRunner(store),
		customer.NewAggregatorUseCase(custRepo),
		&testutil.ServiceRepo{S: store},
		custRepo,
	)
	cust := &entity.Customer{
		ID:    uuid.New().String(),
		Name:  "Andrés López",
		Email: "andres@example.com",
		Phone: "3150001122",
	}
	store.SeedCustomer(cust)
	return uc, store, cust
}

func createPending(t *testing.T, uc *serviceorder.LifecycleUseCase, customerID, cost string) *entity.ServiceOrder {
	t.Helper()
	order, err := uc.Create(context.Background(), "relojero-1", dto.CreateServiceRequest{
		CustomerID: customerID,
		WatchBrand: "Omega",
		WatchModel: "Seamaster",
		Issue:      "cristal rayado",
		Cost:       d(cost),
	})
	require.NoError(t, err)
	return order
}

func TestCreate_NacePendingYRecomputaAlCliente(t *testing.T) {
	uc, store, cust := newLifecycle(t)

	order := createPending(t, uc, cust.ID, "100")
	assert.Equal(t, entity.ServiceStatusPending, order.Status)
	assert.Equal(t, "relojero-1", order.ReceivedBy)

	stored := store.Customer(cust.ID)
	assert.Equal(t, 1, stored.ServiceCount, "serviceCount cuenta servicios en cualquier estado")
	assert.True(t, stored.NetValue.IsZero(), "un pending no aporta al netValue")
}

func TestCreate_ClienteInexistente(t *testing.T) {
	uc, _, _ := newLifecycle(t)

	_, err := uc.Create(context.Background(), "relojero-1", dto.CreateServiceRequest{
		CustomerID: uuid.New().String(),
		WatchBrand: "Omega",
		Issue:      "no anda",
		Cost:       d("50"),
	})
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestCreate_SinMarcaOProblemaEsInvalido(t *testing.T) {
	uc, _, cust := newLifecycle(t)

	_, err := uc.Create(context.Background(), "relojero-1", dto.CreateServiceRequest{
		CustomerID: cust.ID,
		WatchBrand: "  ",
		Issue:      "no anda",
		Cost:       d("50"),
	})
	assert.Equal(t, domain.ErrInvalidInput, err)
}

// Tabla de transiciones del taller. Completar no aparece como transición
// simple: exige pasar por Complete.
func TestUpdateStatus_TablaDeTransiciones(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"pending a in-progress", entity.ServiceStatusPending, entity.ServiceStatusInProgress, true},
		{"pending a on-hold", entity.ServiceStatusPending, entity.ServiceStatusOnHold, false},
		{"in-progress a on-hold", entity.ServiceStatusInProgress, entity.ServiceStatusOnHold, true},
		{"on-hold a in-progress", entity.ServiceStatusOnHold, entity.ServiceStatusInProgress, true},
		{"pending a cancelled", entity.ServiceStatusPending, entity.ServiceStatusCancelled, true},
		{"in-progress a cancelled", entity.ServiceStatusInProgress, entity.ServiceStatusCancelled, true},
		{"on-hold a cancelled", entity.ServiceStatusOnHold, entity.ServiceStatusCancelled, true},
		{"cancelled no se reabre", entity.ServiceStatusCancelled, entity.ServiceStatusInProgress, false},
		{"completed no se reabre", entity.ServiceStatusCompleted, entity.ServiceStatusInProgress, false},
		{"mismo estado", entity.ServiceStatusPending, entity.ServiceStatusPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store, cust := newLifecycle(t)
			order := createPending(t, uc, cust.ID, "50")
			order.Status = tc.from
			require.NoError(t, (&testutil.ServiceRepo{S: store}).Update(order))

			_, err := uc.UpdateStatus(context.Background(), order.ID, tc.to, "relojero-1")
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, domain.ErrInvalidTransition, err)
			}
		})
	}
}

func TestUpdateStatus_CompletedExigePasarPorComplete(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "50")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusCompleted, "relojero-1")
	assert.Equal(t, domain.ErrInvalidTransition, err, "completar lleva campos de cierre obligatorios")
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "50")

	_, err := uc.UpdateStatus(context.Background(), order.ID, "entregado", "relojero-1")
	assert.Equal(t, domain.ErrInvalidStatus, err)
}

func TestComplete_AportaCostoFinalAlNetValue(t *testing.T) {
	uc, store, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)

	fc := d("120")
	completed, err := uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description:    "cristal reemplazado y máquina lubricada",
		FinalCost:      &fc,
		WarrantyMonths: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceStatusCompleted, completed.Status)
	assert.NotNil(t, completed.ActualDelivery, "sin fecha explícita se usa el momento del cierre")
	require.Len(t, completed.Notes, 1)
	assert.Contains(t, completed.Notes[0].Text, "servicio completado")

	stored := store.Customer(cust.ID)
	assert.True(t, stored.NetValue.Equal(d("120")), "finalCost prevalece sobre el estimado, fue %s", stored.NetValue)
}

func TestComplete_SinCostoFinalUsaElEstimado(t *testing.T) {
	uc, store, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description: "ajuste de calendario",
	})
	require.NoError(t, err)
	assert.True(t, store.Customer(cust.ID).NetValue.Equal(d("80")))
}

func TestComplete_GarantiaFueraDeRango(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description:    "cambio de pila",
		WarrantyMonths: 72,
	})
	assert.Equal(t, domain.ErrInvalidInput, err, "la garantía máxima es 60 meses")
}

func TestComplete_DesdePendingEsInvalido(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")

	_, err := uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description: "sin pasar por el taller",
	})
	assert.Equal(t, domain.ErrInvalidTransition, err)
}

func TestAddNote_AppendOnly(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")

	_, err := uc.AddNote(context.Background(), order.ID, "se pidió repuesto al proveedor", "relojero-1")
	require.NoError(t, err)
	_, err = uc.AddNote(context.Background(), order.ID, "repuesto recibido", "relojero-1")
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "se pidió repuesto al proveedor", got.Notes[0].Text, "las notas conservan el orden de llegada")
}

// Eliminar una orden completada retrae su aporte al netValue: el recálculo
// deriva desde las filas restantes.
func TestDelete_RetraeElAporteDeUnaCompletada(t *testing.T) {
	uc, store, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)
	_, err = uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description: "restauración completa",
	})
	require.NoError(t, err)
	require.True(t, store.Customer(cust.ID).NetValue.Equal(d("80")))

	require.NoError(t, uc.Delete(context.Background(), order.ID, "admin-1"))

	stored := store.Customer(cust.ID)
	assert.True(t, stored.NetValue.IsZero(), "el aporte se retrae al eliminar, fue %s", stored.NetValue)
	assert.Equal(t, 0, stored.ServiceCount)
}

// Reasignar una orden completada re-atribuye el aporte entre las dos cuentas.
func TestReassign_ReatribuyeElAporte(t *testing.T) {
	uc, store, cust := newLifecycle(t)
	otro := &entity.Customer{
		ID:    uuid.New().String(),
		Name:  "Lucía Díaz",
		Email: "lucia@example.com",
		Phone: "3162223344",
	}
	store.SeedCustomer(otro)

	order := createPending(t, uc, cust.ID, "80")
	_, err := uc.UpdateStatus(context.Background(), order.ID, entity.ServiceStatusInProgress, "relojero-1")
	require.NoError(t, err)
	_, err = uc.Complete(context.Background(), order.ID, "relojero-1", dto.CompleteServiceRequest{
		Description: "calibración",
	})
	require.NoError(t, err)

	reassigned, err := uc.Reassign(context.Background(), order.ID, otro.ID)
	require.NoError(t, err)
	assert.Equal(t, otro.ID, reassigned.CustomerID)

	anterior := store.Customer(cust.ID)
	assert.True(t, anterior.NetValue.IsZero(), "la cuenta anterior pierde el aporte")
	assert.Equal(t, 0, anterior.ServiceCount)

	nuevo := store.Customer(otro.ID)
	assert.True(t, nuevo.NetValue.Equal(d("80")), "la cuenta nueva recibe el aporte")
	assert.Equal(t, 1, nuevo.ServiceCount)
}

func TestReassign_ClienteDestinoInexistente(t *testing.T) {
	uc, _, cust := newLifecycle(t)
	order := createPending(t, uc, cust.ID, "80")

	_, err := uc.Reassign(context.Background(), order.ID, uuid.New().String())
	assert.Equal(t, domain.ErrNotFound, err)
}
