package customer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/testutil"
)

func newUseCase(t *testing.T) (*customer.UseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return customer.NewUseCase(&testutil.CustomerRepo{S: store}), store
}

func TestCreate_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Ana Muñoz", Email: "ana@example.com", Phone: "3001112233",
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Otra Ana", Email: "ana@example.com", Phone: "3009998877",
	})
	assert.Equal(t, domain.ErrDuplicate, err)
}

func TestSearch_InsensibleATildes(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "José Muñoz", Email: "jose@example.com", Phone: "3001112233",
	})
	require.NoError(t, err)

	found, err := uc.Search(context.Background(), "MUNOZ", 20, 0)
	require.NoError(t, err)
	require.Len(t, found, 1, "la búsqueda ignora tildes y mayúsculas")
	assert.Equal(t, "José Muñoz", found[0].Name)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "munoz", customer.NormalizeQuery("  MuÑoz "))
	assert.Equal(t, "jose perez", customer.NormalizeQuery("José Pérez"))
	assert.Equal(t, "", customer.NormalizeQuery("   "))
}

// Un cliente referenciado por ventas o servicios no puede eliminarse.
func TestDelete_BloqueadoPorReferencias(t *testing.T) {
	uc, store := newUseCase(t)
	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Pedro Gil", Email: "pedro@example.com", Phone: "3004445566",
	})
	require.NoError(t, err)

	saleRepo := &testutil.SaleRepo{S: store}
	require.NoError(t, saleRepo.Create(&entity.Sale{
		ID: uuid.New().String(), CustomerID: c.ID, ItemID: uuid.New().String(), Quantity: 1,
	}))

	err = uc.Delete(context.Background(), c.ID)
	assert.Equal(t, domain.ErrConflict, err)
	assert.NotNil(t, store.Customer(c.ID), "el cliente sigue existiendo")
}

func TestDelete_SinReferencias(t *testing.T) {
	uc, store := newUseCase(t)
	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Pedro Gil", Email: "pedro@example.com", Phone: "3004445566",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), c.ID))
	assert.Nil(t, store.Customer(c.ID))
}
