package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// Umbral de stock bajo y TTL de caché del dashboard.
const (
	lowStockThreshold = 3
	cacheTTL          = 2 * time.Minute
	cacheKey          = "dashboard:summary"
)

// DashboardCache caché de lectura para el resumen del dashboard. La
// implementación Redis vive en infraestructura; Noop cuando no hay Redis.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardResponse, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardResponse, ttl time.Duration) error
}

// NoopCache implementación nula: siempre miss.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) (*dto.DashboardResponse, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ *dto.DashboardResponse, _ time.Duration) error {
	return nil
}

// DashboardUseCase arma el resumen agregado del negocio: totales de
// inventario, stock bajo, ventas de los últimos 30 días y mejores clientes.
// Solo lecturas; el resultado se cachea con TTL corto.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	cache     DashboardCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository, cache DashboardCache) *DashboardUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &DashboardUseCase{statsRepo: statsRepo, cache: cache}
}

// GetSummary devuelve el resumen, sirviendo de caché cuando está vigente.
// Un fallo del caché nunca tumba la consulta: se degrada a leer de la BD.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	if cached, ok, err := uc.cache.Get(ctx, cacheKey); err == nil && ok {
		return cached, nil
	}

	totals, err := uc.statsRepo.GetInventoryTotals(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.statsRepo.GetLowStock(ctx, lowStockThreshold, 20)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sales, err := uc.statsRepo.GetSalesSummary(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	topCustomers, err := uc.statsRepo.GetTopCustomers(ctx, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Inventory: dto.InventoryTotalsDTO{
			Items:     totals.Items,
			Units:     totals.Units,
			Valuation: totals.Valuation,
			SoldOut:   totals.SoldOut,
		},
		Sales: dto.SalesSummaryDTO{
			Count:         sales.Count,
			UnitsSold:     sales.UnitsSold,
			GrossRevenue:  sales.GrossRevenue,
			DiscountTotal: sales.DiscountTotal,
			NetRevenue:    sales.NetRevenue,
		},
		CachedAt: now.Format(time.RFC3339),
	}
	for _, it := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.LowStockItemDTO{
			ItemID:   it.ItemID,
			Code:     it.Code,
			Brand:    it.Brand,
			Model:    it.Model,
			Outlet:   it.Outlet,
			Quantity: it.Quantity,
		})
	}
	for _, c := range topCustomers {
		resp.TopCustomers = append(resp.TopCustomers, dto.TopCustomerDTO{
			CustomerID: c.CustomerID,
			Name:       c.Name,
			Purchases:  c.Purchases,
			NetValue:   c.NetValue,
		})
	}

	_ = uc.cache.Set(ctx, cacheKey, resp, cacheTTL)
	return resp, nil
}
