package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de servicio (reparación).
const (
	ServiceStatusPending    = "pending"
	ServiceStatusInProgress = "in-progress"
	ServiceStatusOnHold     = "on-hold"
	ServiceStatusCompleted  = "completed"
	ServiceStatusCancelled  = "cancelled"
)

// ServiceNote anotación append-only sobre una orden de servicio.
type ServiceNote struct {
	ID        string
	ServiceID string
	Text      string
	AddedBy   string
	CreatedAt time.Time
}

// ServiceOrder representa una reparación o mantenimiento recibido en taller.
// Solo la transición a "completed" aporta su costo (FinalCost si existe,
// Cost en su defecto) al NetValue del cliente.
type ServiceOrder struct {
	ID                    string
	CustomerID            string
	WatchBrand            string
	WatchModel            string
	WatchDescription      string
	Issue                 string
	Cost                  decimal.Decimal // estimado al recibir
	Status                string
	Notes                 []ServiceNote
	FinalCost             *decimal.Decimal // fijado al completar; prevalece sobre Cost
	WarrantyMonths        int              // 0..60
	ActualDelivery        *time.Time
	CompletionDescription string
	ReceivedBy            string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ValidServiceStatus verifica pertenencia al enum de estados.
func ValidServiceStatus(s string) bool {
	switch s {
	case ServiceStatusPending, ServiceStatusInProgress, ServiceStatusOnHold,
		ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

// TerminalServiceStatus indica si el estado no admite más transiciones.
func TerminalServiceStatus(s string) bool {
	return s == ServiceStatusCompleted || s == ServiceStatusCancelled
}

// CanTransition valida la transición de estados del taller:
// pending -> in-progress; in-progress <-> on-hold; in-progress/on-hold -> completed;
// cancelled alcanzable desde cualquier estado no terminal. Los estados
// terminales (completed, cancelled) no se reabren.
func CanTransition(from, to string) bool {
	if !ValidServiceStatus(from) || !ValidServiceStatus(to) {
		return false
	}
	if TerminalServiceStatus(from) || from == to {
		return false
	}
	if to == ServiceStatusCancelled {
		return true
	}
	switch from {
	case ServiceStatusPending:
		return to == ServiceStatusInProgress
	case ServiceStatusInProgress:
		return to == ServiceStatusOnHold || to == ServiceStatusCompleted
	case ServiceStatusOnHold:
		return to == ServiceStatusInProgress || to == ServiceStatusCompleted
	}
	return false
}

// ChargeableCost costo que aporta la orden al NetValue una vez completada.
func (s *ServiceOrder) ChargeableCost() decimal.Decimal {
	if s.FinalCost != nil {
		return *s.FinalCost
	}
	return s.Cost
}
