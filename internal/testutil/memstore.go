// Package testutil provee repositorios en memoria para tests de casos de uso.
//
// Los fakes respetan los contratos de los puertos de persistencia: el
// decremento de stock es condicional y atómico bajo el mutex del store (mismo
// predicado que el UPDATE SQL), RecomputeSummary deriva desde las filas de
// ventas y servicios, y los TxRunner toman un snapshot del estado y lo
// restauran si la función devuelve error (rollback).
package testutil

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// MemStore estado compartido de todos los repositorios fake.
type MemStore struct {
	mu        sync.Mutex
	items     map[string]*entity.InventoryItem
	movements []*entity.Movement
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	services  map[string]*entity.ServiceOrder
	notes     map[string][]entity.ServiceNote

	// FailSaleCreate fuerza error en SaleRepo.Create para probar rollback.
	FailSaleCreate bool
}

// NewMemStore construye un store vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		items:     map[string]*entity.InventoryItem{},
		customers: map[string]*entity.Customer{},
		sales:     map[string]*entity.Sale{},
		services:  map[string]*entity.ServiceOrder{},
		notes:     map[string][]entity.ServiceNote{},
	}
}

// SeedItem inserta un artículo directamente (setup de tests).
func (s *MemStore) SeedItem(item *entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
}

// SeedCustomer inserta un cliente directamente (setup de tests).
func (s *MemStore) SeedCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

// Item devuelve una copia del artículo almacenado.
func (s *MemStore) Item(id string) *entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[id]; ok {
		cp := *it
		return &cp
	}
	return nil
}

// Customer devuelve una copia del cliente almacenado.
func (s *MemStore) Customer(id string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.customers[id]; ok {
		cp := *c
		return &cp
	}
	return nil
}

// Sale devuelve una copia de la venta almacenada.
func (s *MemStore) Sale(id string) *entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.sales[id]; ok {
		cp := *sl
		return &cp
	}
	return nil
}

// MovementCount cantidad de movimientos registrados para un artículo.
func (s *MemStore) MovementCount(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n
}

// SaleCount cantidad total de ventas almacenadas.
func (s *MemStore) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

// snapshot copia profunda del estado mutable (para rollback de tx fake).
type snapshot struct {
	items     map[string]*entity.InventoryItem
	movements []*entity.Movement
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	services  map[string]*entity.ServiceOrder
	notes     map[string][]entity.ServiceNote
}

func (s *MemStore) take() snapshot {
	snap := snapshot{
		items:     make(map[string]*entity.InventoryItem, len(s.items)),
		movements: append([]*entity.Movement(nil), s.movements...),
		customers: make(map[string]*entity.Customer, len(s.customers)),
		sales:     make(map[string]*entity.Sale, len(s.sales)),
		services:  make(map[string]*entity.ServiceOrder, len(s.services)),
		notes:     make(map[string][]entity.ServiceNote, len(s.notes)),
	}
	for id, it := range s.items {
		cp := *it
		snap.items[id] = &cp
	}
	for id, c := range s.customers {
		cp := *c
		snap.customers[id] = &cp
	}
	for id, sl := range s.sales {
		cp := *sl
		snap.sales[id] = &cp
	}
	for id, o := range s.services {
		cp := *o
		snap.services[id] = &cp
	}
	for id, ns := range s.notes {
		snap.notes[id] = append([]entity.ServiceNote(nil), ns...)
	}
	return snap
}

func (s *MemStore) restore(snap snapshot) {
	s.items = snap.items
	s.movements = snap.movements
	s.customers = snap.customers
	s.sales = snap.sales
	s.services = snap.services
	s.notes = snap.notes
}

// normalize minúsculas sin tildes, para la búsqueda de clientes del fake.
func normalize(q string) string {
	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(q)))
}

// recompute deriva los campos de cuenta de un cliente desde las filas.
// Espejo del UPDATE con subselects del repositorio de PostgreSQL.
func (s *MemStore) recompute(customerID string) *entity.AccountSummary {
	c, ok := s.customers[customerID]
	if !ok {
		return nil
	}
	net := decimal.Zero
	purchases := 0
	for _, sl := range s.sales {
		if sl.CustomerID == customerID {
			net = net.Add(sl.TotalAmount)
			purchases++
		}
	}
	serviceCount := 0
	for _, o := range s.services {
		if o.CustomerID != customerID {
			continue
		}
		serviceCount++
		if o.Status == entity.ServiceStatusCompleted {
			net = net.Add(o.ChargeableCost())
		}
	}
	c.NetValue = net
	c.Purchases = purchases
	c.ServiceCount = serviceCount
	c.UpdatedAt = time.Now()
	return &entity.AccountSummary{NetValue: net, Purchases: purchases, ServiceCount: serviceCount}
}

var (
	_ repository.ItemRepository         = (*ItemRepo)(nil)
	_ repository.MovementRepository     = (*MovementRepo)(nil)
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.SaleRepository         = (*SaleRepo)(nil)
	_ repository.ServiceOrderRepository = (*ServiceRepo)(nil)
)

// ── ItemRepo ──────────────────────────────────────────────────────────────────

// ItemRepo fake de ItemRepository sobre el MemStore.
type ItemRepo struct{ S *MemStore }

func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, it := range r.S.items {
		if it.Code == item.Code && !it.IsDeleted {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.S.items[item.ID] = &cp
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if it, ok := r.S.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *ItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, it := range r.S.items {
		if it.Code == code && !it.IsDeleted {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.S.items {
		if it.IsDeleted && !filter.IncludeDeleted {
			continue
		}
		if filter.Outlet != "" && it.Outlet != filter.Outlet {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		if filter.Type != "" && it.Type != filter.Type {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	stored, ok := r.S.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Brand = item.Brand
	stored.Model = item.Model
	stored.Size = item.Size
	stored.Price = item.Price
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *ItemRepo) SoftDelete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	it, ok := r.S.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.IsDeleted = true
	return nil
}

// DecrementForSale mismo predicado que el UPDATE condicional SQL, bajo mutex:
// dos llamadas concurrentes sobre quantity=1 resuelven una venta y un
// ErrInsufficientStock, nunca dos ventas.
func (r *ItemRepo) DecrementForSale(id string, amount int, saleDate time.Time) (*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	it, ok := r.S.items[id]
	if !ok || it.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if it.Quantity < amount {
		return nil, domain.ErrInsufficientStock
	}
	it.Quantity -= amount
	it.TotalSold += amount
	d := saleDate
	it.LastSaleDate = &d
	if it.Quantity == 0 {
		it.Status = entity.ItemStatusSold
	}
	it.UpdatedAt = time.Now()
	cp := *it
	return &cp, nil
}

func (r *ItemRepo) Increment(id string, amount int) (*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	it, ok := r.S.items[id]
	if !ok || it.IsDeleted {
		return nil, domain.ErrNotFound
	}
	it.Quantity += amount
	if it.Quantity > 0 {
		it.Status = entity.ItemStatusAvailable
	}
	it.UpdatedAt = time.Now()
	cp := *it
	return &cp, nil
}

func (r *ItemRepo) SetQuantity(id string, quantity int) (*entity.InventoryItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	it, ok := r.S.items[id]
	if !ok || it.IsDeleted {
		return nil, domain.ErrNotFound
	}
	it.Quantity = quantity
	if quantity > 0 {
		it.Status = entity.ItemStatusAvailable
	} else {
		it.Status = entity.ItemStatusOutOfStock
	}
	it.UpdatedAt = time.Now()
	cp := *it
	return &cp, nil
}

func (r *ItemRepo) UpdateOutlet(id, outlet string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	it, ok := r.S.items[id]
	if !ok || it.IsDeleted {
		return domain.ErrNotFound
	}
	it.Outlet = outlet
	it.UpdatedAt = time.Now()
	return nil
}

// ── MovementRepo ──────────────────────────────────────────────────────────────

// MovementRepo fake de MovementRepository sobre el MemStore.
type MovementRepo struct{ S *MemStore }

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *m
	r.S.movements = append(r.S.movements, &cp)
	return nil
}

func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Movement
	// más reciente primero
	for i := len(r.S.movements) - 1; i >= 0; i-- {
		if r.S.movements[i].ItemID == itemID {
			cp := *r.S.movements[i]
			out = append(out, &cp)
		}
	}
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── CustomerRepo ──────────────────────────────────────────────────────────────

// CustomerRepo fake de CustomerRepository sobre el MemStore.
type CustomerRepo struct{ S *MemStore }

func (r *CustomerRepo) Create(c *entity.Customer) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, ex := range r.S.customers {
		if ex.Email == c.Email || ex.Phone == c.Phone {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.S.customers[c.ID] = &cp
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if c, ok := r.S.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, c := range r.S.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, c := range r.S.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) Search(normalizedQuery string, limit, offset int) ([]*entity.Customer, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.S.customers {
		if normalizedQuery == "" || strings.Contains(normalize(c.Name), normalizedQuery) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *CustomerRepo) Update(c *entity.Customer) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	stored, ok := r.S.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = c.Name
	stored.Email = c.Email
	stored.Phone = c.Phone
	stored.Address = c.Address
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *CustomerRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.customers, id)
	return nil
}

func (r *CustomerRepo) RecomputeSummary(id string) (*entity.AccountSummary, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return r.S.recompute(id), nil
}

func (r *CustomerRepo) AddPurchases(id string, delta int) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	c, ok := r.S.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Purchases += delta
	return nil
}

func (r *CustomerRepo) AddServices(id string, delta int) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	c, ok := r.S.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ServiceCount += delta
	return nil
}

func (r *CustomerRepo) CountReferences(id string) (sales, services int, err error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, sl := range r.S.sales {
		if sl.CustomerID == id {
			sales++
		}
	}
	for _, o := range r.S.services {
		if o.CustomerID == id {
			services++
		}
	}
	return sales, services, nil
}

// ── SaleRepo ──────────────────────────────────────────────────────────────────

// SaleRepo fake de SaleRepository sobre el MemStore.
type SaleRepo struct{ S *MemStore }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.FailSaleCreate {
		return ErrInjected
	}
	cp := *sale
	r.S.sales[sale.ID] = &cp
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if sl, ok := r.S.sales[id]; ok {
		cp := *sl
		return &cp, nil
	}
	return nil, nil
}

func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Sale
	for _, sl := range r.S.sales {
		if filter.CustomerID != "" && sl.CustomerID != filter.CustomerID {
			continue
		}
		cp := *sl
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SaleRepo) Update(sale *entity.Sale) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sale
	r.S.sales[sale.ID] = &cp
	return nil
}

func (r *SaleRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.sales, id)
	return nil
}

// ── ServiceRepo ───────────────────────────────────────────────────────────────

// ServiceRepo fake de ServiceOrderRepository sobre el MemStore.
type ServiceRepo struct{ S *MemStore }

func (r *ServiceRepo) Create(order *entity.ServiceOrder) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *order
	r.S.services[order.ID] = &cp
	return nil
}

func (r *ServiceRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if o, ok := r.S.services[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *ServiceRepo) List(filter repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.ServiceOrder
	for _, o := range r.S.services {
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ServiceRepo) Update(order *entity.ServiceOrder) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.services[order.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *order
	r.S.services[order.ID] = &cp
	return nil
}

func (r *ServiceRepo) Delete(id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.services[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.services, id)
	delete(r.S.notes, id)
	return nil
}

func (r *ServiceRepo) AddNote(note *entity.ServiceNote) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.services[note.ServiceID]; !ok {
		return domain.ErrNotFound
	}
	r.S.notes[note.ServiceID] = append(r.S.notes[note.ServiceID], *note)
	return nil
}

func (r *ServiceRepo) ListNotes(serviceID string) ([]entity.ServiceNote, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return append([]entity.ServiceNote(nil), r.S.notes[serviceID]...), nil
}

// ErrInjected error devuelto por los puntos de fallo inyectables del store.
var ErrInjected = errors.New("fallo inyectado")
