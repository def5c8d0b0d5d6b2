package entity

import "time"

// Motivos estándar de movimiento. Reason es texto libre en el registro;
// estos valores cubren los generados por el propio sistema.
const (
	MovementReasonInitialStock = "stock inicial"
	MovementReasonTransfer     = "traslado entre puntos de venta"
	MovementReasonAdjustment   = "ajuste manual"
)

// Movement registra el paso de un artículo por los puntos de venta.
// Es un log append-only: nunca se modifica ni se elimina una entrada.
// FromOutlet es nil en el registro sintético de ingreso inicial.
type Movement struct {
	ID         string
	ItemID     string
	FromOutlet *string
	ToOutlet   string
	Reason     string
	MovedBy    string // UserID del actor, solo para atribución
	Date       time.Time
	CreatedAt  time.Time
}
