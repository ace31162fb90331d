package actions

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// HandleMove - шаг на соседнюю клетку. Враг в клетке будет атакован симулятором.
func HandleMove(_ handlers.Context, p api.DirectionPayload) (domain.UserCommand, error) {
	return domain.UserCommand{Kind: domain.CommandMove, Dx: p.Dx, Dy: p.Dy}, nil
}
