package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// SubmitUserCommand кладёт команду игрока для следующего хода и снимает шлюз.
// Во время Dispatch и после смерти игрока ввод закрыт.
func (s *Simulator) SubmitUserCommand(cmd domain.UserCommand) error {
	if s.events.Dispatching() {
		return fmt.Errorf("%w: dispatch in progress", ErrInputGateClosed)
	}
	if s.gameOver {
		return fmt.Errorf("%w: game over", ErrInputGateClosed)
	}
	if cmd.Kind == domain.CommandUnknown {
		return ErrInvalidCommand
	}
	c := cmd
	s.pending = &c
	s.events.Resume()
	return nil
}

// ClearPendingUserCommand отменяет ещё не поглощённую команду.
func (s *Simulator) ClearPendingUserCommand() {
	s.pending = nil
}

func (s *Simulator) HasPendingUserCommand() bool { return s.pending != nil }

// TakeUserCommand поглощает команду (один раз) и пишет её в журнал.
func (s *Simulator) TakeUserCommand() (domain.UserCommand, bool) {
	if s.pending == nil {
		return domain.UserCommand{}, false
	}
	cmd := *s.pending
	s.pending = nil

	actor := domain.NoEntity
	if s.player != nil {
		actor = s.player.ID
	}
	if s.recorder != nil {
		s.recorder.RecordCommand(s.Now(), actor, cmd)
	}
	return cmd, true
}

// RequestUserInput блокирует планировщик до SubmitUserCommand.
func (s *Simulator) RequestUserInput(e *domain.Entity) {
	if e != s.player || s.gameOver {
		return
	}
	s.events.Block()
}

func (s *Simulator) WaitingForUser() bool { return s.events.WaitingForUser() }

// ExecuteUserCommand выполняет команду от имени сущности.
// false - команда невозможна, ход не потрачен.
func (s *Simulator) ExecuteUserCommand(e *domain.Entity, cmd domain.UserCommand) bool {
	ok := false
	switch cmd.Kind {
	case domain.CommandWait:
		ok = true
	case domain.CommandMove:
		ok = s.Shift(e, cmd.Dx, cmd.Dy)
	case domain.CommandAttack:
		target := s.Entity(cmd.TargetID)
		ok = target != nil && e.Pos.IsAdjacent(target.Pos) && s.Attack(e, target)
	case domain.CommandSkill:
		ok = s.UseCombo(e, cmd.Skills, cmd.X, cmd.Y)
	case domain.CommandClick:
		ok = s.Click(e, cmd.X, cmd.Y)
	}

	s.log.WithFields(logrus.Fields{
		"entity_id":  e.ID,
		"command":    cmd.String(),
		"ok":         ok,
		"initiative": s.Now(),
	}).Debug("User command executed")
	return ok
}
