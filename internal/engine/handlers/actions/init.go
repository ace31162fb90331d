package actions

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
)

// Register добавляет в реестр все действия игрока.
func Register(r *handlers.Registry) {
	r.Register(domain.CommandWait.String(), handlers.WithEmptyPayload(HandleWait))
	r.Register(domain.CommandMove.String(), handlers.WithPayload(HandleMove))
	r.Register(domain.CommandAttack.String(), handlers.WithPayload(HandleAttack))
	r.Register(domain.CommandSkill.String(), handlers.WithPayload(HandleSkill))
	r.Register(domain.CommandClick.String(), handlers.WithPayload(HandleClick))
}

// NewRegistry - реестр со всеми действиями.
func NewRegistry() *handlers.Registry {
	r := handlers.NewRegistry()
	Register(r)
	return r
}
