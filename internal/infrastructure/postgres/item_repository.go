package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, type, brand, model, size, price, quantity, outlet, status,
	total_sold, last_sale_date, is_deleted, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Code, &it.Type, &it.Brand, &it.Model, &it.Size, &it.Price,
		&it.Quantity, &it.Outlet, &it.Status, &it.TotalSold, &it.LastSaleDate,
		&it.IsDeleted, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, code, type, brand, model, size, price, quantity, outlet, status, total_sold, last_sale_date, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Type, item.Brand, item.Model, item.Size, item.Price,
		item.Quantity, item.Outlet, item.Status, item.TotalSold, item.LastSaleDate,
		item.IsDeleted, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (incluye borrados lógicos; el caso de
// uso decide si los trata como no encontrados).
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByCode obtiene un artículo activo por código de negocio.
func (r *ItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE code = $1 AND is_deleted = FALSE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return it, nil
}

// List lista artículos según filtro, más recientes primero.
func (r *ItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE 1=1`
	args := []any{}
	i := 1
	if !filter.IncludeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	if filter.Outlet != "" {
		query += fmt.Sprintf(` AND outlet = $%d`, i)
		args = append(args, filter.Outlet)
		i++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, i)
		args = append(args, filter.Status)
		i++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, i)
		args = append(args, filter.Type)
		i++
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza campos descriptivos (code, quantity y status no se tocan aquí).
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET brand = $2, model = $3, size = $4, price = $5, updated_at = $6
		WHERE id = $1 AND is_deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Brand, item.Model, item.Size, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SoftDelete marca el artículo como borrado lógico.
func (r *ItemRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET is_deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

// DecrementForSale descuenta stock por venta en un solo UPDATE condicionado
// ("resta donde quantity >= amount"): la fila es la unidad de mutación, no un
// read-modify-write, así dos ventas concurrentes no pueden sobrevender.
// Cantidad resultante 0 por esta vía marca status = sold.
func (r *ItemRepo) DecrementForSale(id string, amount int, saleDate time.Time) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity - $2,
		    status = CASE WHEN quantity - $2 = 0 THEN 'sold' ELSE status END,
		    total_sold = total_sold + $2,
		    last_sale_date = $3,
		    updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE AND quantity >= $2
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id, amount, saleDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Cero filas afectadas: distinguir inexistente de stock insuficiente
			existing, lookErr := r.GetByID(id)
			if lookErr != nil {
				return nil, lookErr
			}
			if existing == nil || existing.IsDeleted {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("decrement item: %w", err)
	}
	return it, nil
}

// Increment suma stock; si la cantidad resultante es positiva el estado
// vuelve a available (cubre sold y out-of-stock).
func (r *ItemRepo) Increment(id string, amount int) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $2,
		    status = CASE WHEN quantity + $2 > 0 THEN 'available' ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("increment item: %w", err)
	}
	return it, nil
}

// SetQuantity fija la cantidad por ajuste manual. Cero por esta vía marca
// out-of-stock, nunca sold.
func (r *ItemRepo) SetQuantity(id string, quantity int) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items
		SET quantity = $2,
		    status = CASE WHEN $2 > 0 THEN 'available' ELSE 'out-of-stock' END,
		    updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set item quantity: %w", err)
	}
	return it, nil
}

// UpdateOutlet cambia el punto de venta actual del artículo.
func (r *ItemRepo) UpdateOutlet(id, outlet string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET outlet = $2, updated_at = now() WHERE id = $1 AND is_deleted = FALSE`,
		id, outlet)
	if err != nil {
		return fmt.Errorf("update item outlet: %w", err)
	}
	return nil
}
