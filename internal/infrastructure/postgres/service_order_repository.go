package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo implementación de ServiceOrderRepository (usable con pool o tx).
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const serviceColumns = `id, customer_id, watch_brand, watch_model, watch_description,
	issue, cost, status, final_cost, warranty_months, actual_delivery,
	completion_description, received_by, created_at, updated_at`

func scanServiceOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	err := row.Scan(&o.ID, &o.CustomerID, &o.WatchBrand, &o.WatchModel, &o.WatchDescription,
		&o.Issue, &o.Cost, &o.Status, &o.FinalCost, &o.WarrantyMonths, &o.ActualDelivery,
		&o.CompletionDescription, &o.ReceivedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una orden de servicio recién recibida.
func (r *ServiceOrderRepo) Create(order *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (id, customer_id, watch_brand, watch_model, watch_description,
		    issue, cost, status, final_cost, warranty_months, actual_delivery,
		    completion_description, received_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.WatchBrand, order.WatchModel, order.WatchDescription,
		order.Issue, order.Cost, order.Status, order.FinalCost, order.WarrantyMonths,
		order.ActualDelivery, order.CompletionDescription, order.ReceivedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID, sin notas (el caso de uso las pide aparte).
func (r *ServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	query := `SELECT ` + serviceColumns + ` FROM service_orders WHERE id = $1`
	o, err := scanServiceOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return o, nil
}

// List lista órdenes con filtros opcionales, de la más reciente a la más antigua.
func (r *ServiceOrderRepo) List(filter repository.ServiceOrderFilter) ([]*entity.ServiceOrder, error) {
	query := `SELECT ` + serviceColumns + ` FROM service_orders WHERE 1=1`
	args := []any{}
	idx := 1
	if filter.CustomerID != "" {
		query += fmt.Sprintf(" AND customer_id = $%d", idx)
		args = append(args, filter.CustomerID)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reescribe los campos mutables de una orden (estado y cierre incluidos).
func (r *ServiceOrderRepo) Update(order *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders
		SET customer_id = $2, watch_brand = $3, watch_model = $4, watch_description = $5,
		    issue = $6, cost = $7, status = $8, final_cost = $9, warranty_months = $10,
		    actual_delivery = $11, completion_description = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.WatchBrand, order.WatchModel, order.WatchDescription,
		order.Issue, order.Cost, order.Status, order.FinalCost, order.WarrantyMonths,
		order.ActualDelivery, order.CompletionDescription, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una orden y sus notas (ON DELETE CASCADE en service_notes).
func (r *ServiceOrderRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM service_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddNote anexa una nota a la orden. Las notas nunca se editan ni borran sueltas.
func (r *ServiceOrderRepo) AddNote(note *entity.ServiceNote) error {
	query := `
		INSERT INTO service_notes (id, service_id, text, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.ServiceID, note.Text, note.AddedBy, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert service note: %w", err)
	}
	return nil
}

// ListNotes lista las notas de una orden en orden cronológico.
func (r *ServiceOrderRepo) ListNotes(serviceID string) ([]entity.ServiceNote, error) {
	query := `
		SELECT id, service_id, text, added_by, created_at
		FROM service_notes WHERE service_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list service notes: %w", err)
	}
	defer rows.Close()
	var notes []entity.ServiceNote
	for rows.Next() {
		var n entity.ServiceNote
		if err := rows.Scan(&n.ID, &n.ServiceID, &n.Text, &n.AddedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
