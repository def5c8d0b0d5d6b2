package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// UseCase casos de uso CRUD de gastos operativos.
type UseCase struct {
	repo repository.ExpenseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ExpenseRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create registra un gasto. Fecha vacía = hoy.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if !entity.ValidExpenseCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Description) == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	e := &entity.Expense{
		ID:           uuid.New().String(),
		Category:     in.Category,
		Description:  in.Description,
		Amount:       in.Amount,
		Date:         date,
		RegisteredBy: actorID,
		CreatedAt:    now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get obtiene un gasto por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// List lista gastos según filtro.
func (uc *UseCase) List(ctx context.Context, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Category != "" && !entity.ValidExpenseCategory(filter.Category) {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.List(filter)
}

// Update edita un gasto. Campos nil = sin cambio; RegisteredBy no se reasigna.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*entity.Expense, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Category != nil {
		if !entity.ValidExpenseCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		e.Category = *in.Category
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, domain.ErrInvalidInput
		}
		e.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		e.Amount = *in.Amount
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete elimina un gasto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Summary totales por categoría en el período [from, to].
func (uc *UseCase) Summary(ctx context.Context, from, to time.Time) (*dto.ExpenseSummaryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	totals, err := uc.repo.SummaryByCategory(from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.ExpenseSummaryResponse{From: from, To: to, Total: decimal.Zero}
	for _, t := range totals {
		resp.Total = resp.Total.Add(t.Total)
		resp.Categories = append(resp.Categories, dto.CategoryTotalItemDTO{
			Category: t.Category,
			Count:    t.Count,
			Total:    t.Total,
		})
	}
	return resp, nil
}
