package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	appcustomer "github.com/jhoicas/relojeria-api/internal/application/customer"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, email, phone, address, purchases, service_count, net_value, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.Purchases, &c.ServiceCount, &c.NetValue, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. name_normalized se guarda en minúsculas
// sin tildes, con el mismo normalizador que usa la búsqueda.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, name_normalized, email, phone, address, purchases, service_count, net_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, appcustomer.NormalizeQuery(customer.Name),
		customer.Email, customer.Phone, customer.Address,
		customer.Purchases, customer.ServiceCount, customer.NetValue,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByEmail obtiene un cliente por email.
func (r *CustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// GetByPhone obtiene un cliente por teléfono.
func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, nil
}

// Search lista clientes por nombre normalizado (el caller ya pasó el término
// a minúsculas sin tildes). Término vacío lista todos por nombre.
func (r *CustomerRepo) Search(normalizedQuery string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE ($1 = '' OR name_normalized LIKE '%' || $1 || '%')
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, normalizedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza datos de contacto. Los campos derivados se mutan solo en
// RecomputeSummary / AddPurchases / AddServices.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, name_normalized = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, appcustomer.NormalizeQuery(customer.Name),
		customer.Email, customer.Phone, customer.Address, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID. La guardia de referencias vive en el caso
// de uso; las claves foráneas de ventas/servicios respaldan la misma regla a
// nivel de esquema.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// RecomputeSummary deriva net_value, purchases y service_count desde las
// filas autoritativas en UNA sola sentencia: los subselects y la escritura
// comparten snapshot, así el resultado es consistente e idempotente.
// netValue = ventas + servicios completados (final_cost si existe, cost si no).
func (r *CustomerRepo) RecomputeSummary(id string) (*entity.AccountSummary, error) {
	query := `
		UPDATE customers c SET
		    net_value = COALESCE((SELECT SUM(s.total_amount) FROM sales s WHERE s.customer_id = c.id), 0)
		              + COALESCE((SELECT SUM(COALESCE(so.final_cost, so.cost)) FROM service_orders so
		                          WHERE so.customer_id = c.id AND so.status = 'completed'), 0),
		    purchases = (SELECT COUNT(*) FROM sales s WHERE s.customer_id = c.id),
		    service_count = (SELECT COUNT(*) FROM service_orders so WHERE so.customer_id = c.id),
		    updated_at = now()
		WHERE c.id = $1
		RETURNING net_value, purchases, service_count`
	var summary entity.AccountSummary
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&summary.NetValue, &summary.Purchases, &summary.ServiceCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("recompute customer summary: %w", err)
	}
	return &summary, nil
}

// AddPurchases ajuste incremental del contador de compras (no toca net_value).
func (r *CustomerRepo) AddPurchases(id string, delta int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE customers SET purchases = purchases + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("add purchases: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddServices ajuste incremental del contador de servicios (no toca net_value).
func (r *CustomerRepo) AddServices(id string, delta int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE customers SET service_count = service_count + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("add services: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountReferences cuenta ventas y servicios que referencian al cliente.
func (r *CustomerRepo) CountReferences(id string) (sales, services int, err error) {
	query := `
		SELECT
		    (SELECT COUNT(*) FROM sales s WHERE s.customer_id = $1),
		    (SELECT COUNT(*) FROM service_orders so WHERE so.customer_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&sales, &services); err != nil {
		return 0, 0, fmt.Errorf("count customer references: %w", err)
	}
	return sales, services, nil
}
