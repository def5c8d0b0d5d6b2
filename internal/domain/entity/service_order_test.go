package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/relojeria-api/internal/domain/entity"
)

// Tabla de transiciones del taller: pending -> in-progress <-> on-hold,
// completed desde in-progress/on-hold, cancelled desde cualquier no terminal.
func TestCanTransition_Tabla(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.ServiceStatusPending, entity.ServiceStatusInProgress, true},
		{entity.ServiceStatusPending, entity.ServiceStatusOnHold, false},
		{entity.ServiceStatusPending, entity.ServiceStatusCompleted, false},
		{entity.ServiceStatusPending, entity.ServiceStatusCancelled, true},
		{entity.ServiceStatusInProgress, entity.ServiceStatusOnHold, true},
		{entity.ServiceStatusInProgress, entity.ServiceStatusCompleted, true},
		{entity.ServiceStatusInProgress, entity.ServiceStatusCancelled, true},
		{entity.ServiceStatusOnHold, entity.ServiceStatusInProgress, true},
		{entity.ServiceStatusOnHold, entity.ServiceStatusCompleted, true},
		{entity.ServiceStatusOnHold, entity.ServiceStatusCancelled, true},
		// Estados terminales: no se reabren
		{entity.ServiceStatusCompleted, entity.ServiceStatusCancelled, false},
		{entity.ServiceStatusCompleted, entity.ServiceStatusInProgress, false},
		{entity.ServiceStatusCancelled, entity.ServiceStatusPending, false},
		// Sin auto-transición ni estados fuera del enum
		{entity.ServiceStatusPending, entity.ServiceStatusPending, false},
		{entity.ServiceStatusPending, "bogus", false},
		{"bogus", entity.ServiceStatusCancelled, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, entity.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestChargeableCost_PrefiereFinalCost(t *testing.T) {
	final := decimal.NewFromInt(450)
	svc := entity.ServiceOrder{Cost: decimal.NewFromInt(500), FinalCost: &final}
	assert.True(t, svc.ChargeableCost().Equal(final), "FinalCost prevalece sobre el estimado")

	svc.FinalCost = nil
	assert.True(t, svc.ChargeableCost().Equal(decimal.NewFromInt(500)))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, entity.ItemStatusAvailable, entity.InitialStatus(3))
	assert.Equal(t, entity.ItemStatusOutOfStock, entity.InitialStatus(0))
}
