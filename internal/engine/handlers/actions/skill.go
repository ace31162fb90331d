package actions

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// HandleSkill - одно умение или комбинация по клетке (x, y).
func HandleSkill(_ handlers.Context, p api.SkillPayload) (domain.UserCommand, error) {
	ids := make([]string, len(p.Skills))
	copy(ids, p.Skills)
	return domain.UserCommand{Kind: domain.CommandSkill, Skills: ids, X: p.X, Y: p.Y}, nil
}
