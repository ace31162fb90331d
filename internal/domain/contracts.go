package domain

import (
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

// Effect - временный модификатор на сущности.
// Реализации живут в internal/effects.
type Effect interface {
	KindID() string
	Duration() int
	SetDuration(d int)
	OnAdded(ctx Context, owner *Entity)
	// OnRound возвращает true, если эффект надо снять.
	OnRound(ctx Context, owner *Entity) bool
	OnRemoved(ctx Context, owner *Entity)
	Clone() Effect
}

// DamageProcessor - эффекты, которые меняют входящий урон (Guard, Vulnerable).
type DamageProcessor interface {
	ProcessDamage(amount int, t DamageType) int
}

// AI - стратегия поведения сущности. Хранить ссылку на владельца нельзя:
// сущность передаётся в каждый хук.
type AI interface {
	Kind() string
	OnCreate(ctx Context, self *Entity) error
	OnRound(ctx Context, self *Entity) error
	OnDamage(ctx Context, self *Entity, amount int, t DamageType) int
	OnDestroy(ctx Context, self *Entity)
	Clone() AI
}

// AreaAI - стратегия уровня (спавнер монстров). Ходит в общей очереди.
type AreaAI interface {
	Kind() string
	OnRound(ctx Context, area *Area) error
}

// Actor - всё, что стоит в очереди инициативы.
type Actor interface {
	ActorID() EntityID
	GetInitiative() int
	Run(ctx Context) TurnResult
}

// EntityDescriptor - то, что фабрика отдаёт по templateId.
type EntityDescriptor struct {
	TemplateID  string
	Name        string
	Sprite      string
	Faction     string
	Tags        []string
	SpeedFactor float64
	Static      bool
	Dressing    bool
	Vars        map[string]int
	Skills      []*Skill
	Effects     []Effect
	AI          AI
}

// Factory создает описания сущностей по шаблонам (каталог блюпринтов).
type Factory interface {
	Instantiate(templateID string) (*EntityDescriptor, error)
}

// FactoryFunc позволяет использовать функцию как Factory.
type FactoryFunc func(templateID string) (*EntityDescriptor, error)

func (f FactoryFunc) Instantiate(templateID string) (*EntityDescriptor, error) {
	return f(templateID)
}

// AreaProvider отдаёт готовую локацию для глубины.
type AreaProvider interface {
	LoadArea(depth int) (*Area, error)
}

// Context - фасад симулятора, через который сущности, эффекты, скиллы и AI
// влияют на мир. Все мутации состояния идут через него.
type Context interface {
	Now() int
	RoundLength() int
	World() *GameWorld
	Area() *Area
	RNG() *utils.RNG
	Log() *logrus.Entry

	Entity(id EntityID) *Entity
	EntitiesAt(x, y int) []*Entity
	Entities() []*Entity
	Player() *Entity

	Animator() Animator
	Cues() CueSink

	CanShift(e *Entity, dx, dy int) bool
	Shift(e *Entity, dx, dy int) bool
	Attack(attacker, target *Entity) bool
	ApplySkill(actor *Entity, skill *Skill, x, y int) bool
	IsFree(x, y int) bool

	CreateEntity(templateID string, x, y int) *Entity
	Destroy(e *Entity)
	Kill(e *Entity)
	Reschedule(e *Entity, initiative int)
	Wait(ms int)

	TakeUserCommand() (UserCommand, bool)
	ExecuteUserCommand(e *Entity, cmd UserCommand) bool
	RequestUserInput(e *Entity)
	WaitingForUser() bool
}
