package domain

import (
	"fmt"
	"strings"
)

// CommandKind - Внутренний числовой идентификатор команды игрока
type CommandKind uint8

const (
	CommandUnknown CommandKind = iota
	CommandWait
	CommandMove
	CommandAttack
	CommandSkill
	CommandClick
)

// Маппинг для конвертации JSON -> Domain
var commandStringToKind = map[string]CommandKind{
	"WAIT":   CommandWait,
	"MOVE":   CommandMove,
	"ATTACK": CommandAttack,
	"SKILL":  CommandSkill,
	"CLICK":  CommandClick,
}

// Маппинг для логов Domain -> String
var commandKindToString = map[CommandKind]string{
	CommandWait:   "WAIT",
	CommandMove:   "MOVE",
	CommandAttack: "ATTACK",
	CommandSkill:  "SKILL",
	CommandClick:  "CLICK",
}

// ParseCommand конвертирует строку из JSON в CommandKind
func ParseCommand(s string) CommandKind {
	// Делаем нечувствительным к регистру для надежности
	if val, ok := commandStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return CommandUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k CommandKind) String() string {
	if val, ok := commandKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// UserCommand - команда от внешнего источника ввода.
// Move: Dx/Dy. Attack: TargetID. Skill: Skills (одно id или комбо) + X/Y. Click: X/Y.
type UserCommand struct {
	Kind     CommandKind `json:"kind"`
	Dx       int         `json:"dx,omitempty"`
	Dy       int         `json:"dy,omitempty"`
	X        int         `json:"x,omitempty"`
	Y        int         `json:"y,omitempty"`
	TargetID EntityID    `json:"targetId,omitempty"`
	Skills   []string    `json:"skills,omitempty"`
}

func (c UserCommand) String() string {
	switch c.Kind {
	case CommandMove:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.Dx, c.Dy)
	case CommandAttack:
		return fmt.Sprintf("%s(%s)", c.Kind, c.TargetID)
	case CommandSkill:
		return fmt.Sprintf("%s(%s @%d,%d)", c.Kind, strings.Join(c.Skills, "+"), c.X, c.Y)
	case CommandClick:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.X, c.Y)
	}
	return c.Kind.String()
}
