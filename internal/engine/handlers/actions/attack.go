package actions

import (
	"fmt"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// HandleAttack - ближняя атака по ID. Дистанцию проверяет симулятор на ходу игрока.
func HandleAttack(ctx handlers.Context, p api.EntityPayload) (domain.UserCommand, error) {
	id, ok := domain.ParseEntityID(p.TargetID)
	if !ok || id == domain.NoEntity {
		return domain.UserCommand{}, fmt.Errorf("bad targetId %q", p.TargetID)
	}
	if id == ctx.Actor {
		return domain.UserCommand{}, fmt.Errorf("cannot attack yourself")
	}
	return domain.UserCommand{Kind: domain.CommandAttack, TargetID: id}, nil
}
