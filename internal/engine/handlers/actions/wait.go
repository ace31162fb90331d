package actions

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
)

func HandleWait(handlers.Context) (domain.UserCommand, error) {
	return domain.UserCommand{Kind: domain.CommandWait}, nil
}
