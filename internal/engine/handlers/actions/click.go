package actions

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// HandleClick - клик по клетке, смысл решает симулятор (пропуск, шаг, путь).
func HandleClick(_ handlers.Context, p api.PositionPayload) (domain.UserCommand, error) {
	return domain.UserCommand{Kind: domain.CommandClick, X: p.X, Y: p.Y}, nil
}
