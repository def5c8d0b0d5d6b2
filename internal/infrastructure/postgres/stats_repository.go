package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el dashboard. Todas reciben
// context porque corren fuera de transacciones, directo contra el pool.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetInventoryTotals agrega el inventario activo: artículos, unidades,
// valuación a precio de lista y cuántos están agotados o vendidos.
func (r *StatsRepo) GetInventoryTotals(ctx context.Context) (*repository.InventoryTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(price * quantity), 0),
		       COUNT(*) FILTER (WHERE status IN ('sold', 'out-of-stock'))
		FROM inventory_items
		WHERE is_deleted = FALSE`
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, query).Scan(&t.Items, &t.Units, &t.Valuation, &t.SoldOut)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}
	return &t, nil
}

// GetLowStock lista artículos activos con stock igual o menor al umbral,
// los más escasos primero. Excluye los ya vendidos.
func (r *StatsRepo) GetLowStock(ctx context.Context, threshold, limit int) ([]repository.LowStockItem, error) {
	query := `
		SELECT id, code, brand, model, outlet, quantity
		FROM inventory_items
		WHERE is_deleted = FALSE AND status <> 'sold' AND quantity <= $1
		ORDER BY quantity, code
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ItemID, &it.Code, &it.Brand, &it.Model, &it.Outlet, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetSalesSummary agrega las ventas del período.
func (r *StatsRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount_amount), 0),
		       COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at <= $2`
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&s.Count, &s.UnitsSold, &s.GrossRevenue, &s.DiscountTotal, &s.NetRevenue)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}

// GetTopCustomers lista los clientes con mayor valor neto acumulado.
func (r *StatsRepo) GetTopCustomers(ctx context.Context, limit int) ([]repository.TopCustomer, error) {
	query := `
		SELECT id, name, purchases, net_value
		FROM customers
		WHERE net_value > 0
		ORDER BY net_value DESC, name
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	defer rows.Close()
	var top []repository.TopCustomer
	for rows.Next() {
		var c repository.TopCustomer
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.Purchases, &c.NetValue); err != nil {
			return nil, fmt.Errorf("scan top customer: %w", err)
		}
		top = append(top, c)
	}
	return top, rows.Err()
}
