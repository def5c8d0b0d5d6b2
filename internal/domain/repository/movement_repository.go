package repository

import "github.com/jhoicas/relojeria-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el historial de
// movimientos. Append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
}
