package domain

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// stubCtx - минимальный Context для тестов домена (engine импортировать нельзя).
type stubCtx struct {
	now      int
	world    *GameWorld
	rng      *utils.RNG
	player   *Entity
	waiting  bool
	kills    []EntityID
	entities map[EntityID]*Entity
	anims    []string
	fades    []string
	cues     []string
}

func newStubCtx() *stubCtx {
	return &stubCtx{
		world:    NewGameWorld(10, 10, FloorTemplate),
		rng:      utils.NewRNG(1),
		entities: make(map[EntityID]*Entity),
	}
}

func (c *stubCtx) Now() int            { return c.now }
func (c *stubCtx) RoundLength() int    { return RoundLength }
func (c *stubCtx) World() *GameWorld   { return c.world }
func (c *stubCtx) Area() *Area         { return nil }
func (c *stubCtx) RNG() *utils.RNG     { return c.rng }
func (c *stubCtx) Log() *logrus.Entry  { return logger.For("test") }
func (c *stubCtx) Animator() Animator  { return c }
func (c *stubCtx) Cues() CueSink       { return c }
func (c *stubCtx) Player() *Entity     { return c.player }
func (c *stubCtx) WaitingForUser() bool { return c.waiting }

func (c *stubCtx) Entity(id EntityID) *Entity { return c.entities[id] }
func (c *stubCtx) EntitiesAt(x, y int) []*Entity {
	var out []*Entity
	for _, id := range c.world.EntitiesAt(x, y) {
		out = append(out, c.entities[id])
	}
	return out
}
func (c *stubCtx) Entities() []*Entity {
	var out []*Entity
	for _, e := range c.entities {
		out = append(out, e)
	}
	return out
}

func (c *stubCtx) CanShift(*Entity, int, int) bool                 { return false }
func (c *stubCtx) Shift(*Entity, int, int) bool                    { return false }
func (c *stubCtx) Attack(*Entity, *Entity) bool                    { return false }
func (c *stubCtx) ApplySkill(*Entity, *Skill, int, int) bool       { return false }
func (c *stubCtx) IsFree(x, y int) bool                            { return c.world.IsWalkable(x, y) }
func (c *stubCtx) CreateEntity(string, int, int) *Entity           { return nil }
func (c *stubCtx) Destroy(e *Entity)                               { e.Removed = true }
func (c *stubCtx) Reschedule(e *Entity, initiative int)            { e.Initiative = initiative }
func (c *stubCtx) Wait(int)                                        {}
func (c *stubCtx) TakeUserCommand() (UserCommand, bool)            { return UserCommand{}, false }
func (c *stubCtx) ExecuteUserCommand(*Entity, UserCommand) bool    { return false }
func (c *stubCtx) RequestUserInput(*Entity)                        { c.waiting = true }

func (c *stubCtx) Kill(e *Entity) {
	if e.Killed {
		return
	}
	e.Killed = true
	c.kills = append(c.kills, e.ID)
}

// Animator
func (c *stubCtx) SetAnimation(_ EntityID, name string) { c.anims = append(c.anims, name) }
func (c *stubCtx) IsAnimating(EntityID) bool            { return false }
func (c *stubCtx) AnimationDuration(string) int         { return 0 }
func (c *stubCtx) AddVisualTransition(_ EntityID, t Transition) {
	c.fades = append(c.fades, t.Kind)
}
func (c *stubCtx) Release(EntityID) {}

// CueSink
func (c *stubCtx) EmitParticle(id string, _ CueTarget)   { c.cues = append(c.cues, "+"+id) }
func (c *stubCtx) RemoveParticle(_ CueTarget, id string) { c.cues = append(c.cues, "-"+id) }
func (c *stubCtx) PlaySound(string, CueTarget)           {}

// newTestEntity - сущность с 10 HP.
func newTestEntity(id EntityID) *Entity {
	return NewEntity(id, &EntityDescriptor{
		TemplateID: "dummy",
		Name:       "Dummy",
		Faction:    FactionMonster,
		Vars:       map[string]int{VarHealth: 10, VarMaxHealth: 10},
	})
}

// testEffect - простой эффект с таймером для тестов Entity.
type testEffect struct {
	kind      string
	remaining int
	last      int
	guard     int
	removed   int
}

func (t *testEffect) KindID() string     { return t.kind }
func (t *testEffect) Duration() int      { return t.remaining }
func (t *testEffect) SetDuration(d int)  { t.remaining = d }
func (t *testEffect) Clone() Effect      { c := *t; return &c }
func (t *testEffect) OnAdded(ctx Context, _ *Entity) {
	t.last = ctx.Now()
}
func (t *testEffect) OnRound(ctx Context, _ *Entity) bool {
	t.remaining -= ctx.Now() - t.last
	t.last = ctx.Now()
	return t.remaining < 1
}
func (t *testEffect) OnRemoved(Context, *Entity) { t.removed++ }
func (t *testEffect) ProcessDamage(amount int, _ DamageType) int {
	return max(0, amount-t.guard)
}

// scriptedAI считает вызовы и может паниковать.
type scriptedAI struct {
	rounds  int
	panics  bool
	request bool
	absorb  int
}

func (a *scriptedAI) Kind() string                         { return "scripted" }
func (a *scriptedAI) OnCreate(Context, *Entity) error      { return nil }
func (a *scriptedAI) OnDestroy(Context, *Entity)           {}
func (a *scriptedAI) Clone() AI                            { c := *a; return &c }
func (a *scriptedAI) OnDamage(_ Context, _ *Entity, amount int, _ DamageType) int {
	return amount - a.absorb
}
func (a *scriptedAI) OnRound(ctx Context, self *Entity) error {
	a.rounds++
	if a.panics {
		panic("boom")
	}
	if a.request {
		ctx.RequestUserInput(self)
	}
	return nil
}
