package domain

// DamageType - тип урона. Пустая строка означает "без типа".
type DamageType string

const (
	DamageUntyped  DamageType = ""
	DamagePhysical DamageType = "physical"
	DamageFire     DamageType = "fire"
	DamageIce      DamageType = "ice"
	DamageMagic    DamageType = "magic"
)

// Matches reports whether a filter configured as t applies to damage of type other.
// An untyped filter matches everything.
func (t DamageType) Matches(other DamageType) bool {
	return t == DamageUntyped || t == other
}

// TurnPhase - состояние хода сущности.
type TurnPhase uint8

const (
	PhaseIdle TurnPhase = iota
	PhaseEffects
	PhaseSkills
	PhaseAI
	PhaseResolved
	PhaseWaitingForUser
)

var turnPhaseNames = map[TurnPhase]string{
	PhaseIdle:           "IDLE",
	PhaseEffects:        "EFFECTS",
	PhaseSkills:         "SKILLS",
	PhaseAI:             "AI",
	PhaseResolved:       "RESOLVED",
	PhaseWaitingForUser: "WAITING_FOR_USER",
}

func (p TurnPhase) String() string {
	if s, ok := turnPhaseNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// TurnResult is what Entity.Run reports back to the dispatcher.
type TurnResult uint8

const (
	// TurnEnded - ход завершён, инициатива увеличена.
	TurnEnded TurnResult = iota
	// TurnPending - ждём ввода, тот же актор будет запущен снова.
	TurnPending
)
