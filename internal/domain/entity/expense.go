package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto del negocio.
const (
	ExpenseRent      = "rent"
	ExpenseSalaries  = "salaries"
	ExpenseUtilities = "utilities"
	ExpenseSupplies  = "supplies"
	ExpenseOther     = "other"
)

// Expense representa un gasto operativo registrado.
type Expense struct {
	ID           string
	Category     string
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	RegisteredBy string
	CreatedAt    time.Time
}

// ValidExpenseCategory verifica pertenencia al enum de categorías.
func ValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseRent, ExpenseSalaries, ExpenseUtilities, ExpenseSupplies, ExpenseOther:
		return true
	}
	return false
}
