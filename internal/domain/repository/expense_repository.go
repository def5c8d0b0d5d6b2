package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// ExpenseFilter criterios de listado de gastos.
type ExpenseFilter struct {
	Category string
	From, To *time.Time
	Limit    int
	Offset   int
}

// CategoryTotal total de gastos por categoría en un período.
type CategoryTotal struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(filter ExpenseFilter) ([]*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
	SummaryByCategory(from, to time.Time) ([]CategoryTotal, error)
}
