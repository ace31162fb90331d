package ai

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// User исполняет команды внешнего источника ввода. Нет команды или она
// невозможна - запрашивает ввод, и ход игрока не заканчивается.
type User struct{ base }

func (*User) Kind() string     { return KindUser }
func (*User) Clone() domain.AI { return &User{} }

func (*User) OnRound(ctx domain.Context, self *domain.Entity) error {
	cmd, ok := ctx.TakeUserCommand()
	if !ok {
		ctx.RequestUserInput(self)
		return nil
	}
	if !ctx.ExecuteUserCommand(self, cmd) {
		ctx.RequestUserInput(self)
	}
	return nil
}
