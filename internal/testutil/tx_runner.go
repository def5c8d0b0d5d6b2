package testutil

import (
	"context"
	"sync"

	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// TxRunner fake que implementa los tres puertos transaccionales de la
// aplicación sobre un MemStore. Antes de ejecutar fn toma un snapshot del
// estado; si fn devuelve error lo restaura, imitando el rollback de pgx.
//
// txMu serializa las transacciones completas (equivalente al bloqueo de fila
// que en PostgreSQL ordena dos ventas concurrentes sobre el mismo artículo),
// de modo que el restore de una tx fallida nunca pisa el commit de otra.
type TxRunner struct {
	S    *MemStore
	txMu sync.Mutex
}

// NewTxRunner construye el runner fake sobre el store dado.
func NewTxRunner(s *MemStore) *TxRunner {
	return &TxRunner{S: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.S.mu.Lock()
	snap := r.S.take()
	r.S.mu.Unlock()

	if err := fn(); err != nil {
		r.S.mu.Lock()
		r.S.restore(snap)
		r.S.mu.Unlock()
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return r.run(func() error {
		return fn(&ItemRepo{S: r.S}, &MovementRepo{S: r.S})
	})
}

// RunSale implementa sales.SalesTxRunner.
func (r *TxRunner) RunSale(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(&ItemRepo{S: r.S}, &SaleRepo{S: r.S}, &CustomerRepo{S: r.S})
	})
}

// RunService implementa serviceorder.ServiceTxRunner.
func (r *TxRunner) RunService(_ context.Context, fn func(
	serviceRepo repository.ServiceOrderRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(&ServiceRepo{S: r.S}, &CustomerRepo{S: r.S})
	})
}
