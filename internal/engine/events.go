package engine

import (
	"fmt"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Event - побочный эффект в FIFO очереди диспетчера.
// Run возвращает true, когда событие завершено; иначе оно остаётся в очереди.
type Event interface {
	Name() string
	Run(sim *Simulator, now int64) bool
	// Blocking - пока событие не завершено, акторы не ходят.
	Blocking() bool
}

// WaitEvent держит симуляцию до дедлайна по часам хоста.
type WaitEvent struct {
	Deadline int64
}

func (e *WaitEvent) Name() string   { return "wait" }
func (e *WaitEvent) Blocking() bool { return true }
func (e *WaitEvent) Run(_ *Simulator, now int64) bool {
	return now >= e.Deadline
}

// DestroyEvent удаляет сущность из мира после анимации смерти.
type DestroyEvent struct {
	ID        domain.EntityID
	NotBefore int64
}

func (e *DestroyEvent) Name() string   { return "destroy " + e.ID.String() }
func (e *DestroyEvent) Blocking() bool { return false }
func (e *DestroyEvent) Run(sim *Simulator, now int64) bool {
	if now < e.NotBefore {
		return false
	}
	sim.removeEntity(e.ID)
	return true
}

// AnimationEvent запускает анимацию на следующем тике.
type AnimationEvent struct {
	ID   domain.EntityID
	Anim string
}

func (e *AnimationEvent) Name() string   { return "animation " + e.Anim }
func (e *AnimationEvent) Blocking() bool { return false }
func (e *AnimationEvent) Run(sim *Simulator, _ int64) bool {
	sim.Animator().SetAnimation(e.ID, e.Anim)
	return true
}

// AreaTransitionEvent перегружает локацию (спуск по лестнице).
type AreaTransitionEvent struct {
	Depth int
}

func (e *AreaTransitionEvent) Name() string   { return fmt.Sprintf("area transition %d", e.Depth) }
func (e *AreaTransitionEvent) Blocking() bool { return true }
func (e *AreaTransitionEvent) Run(sim *Simulator, _ int64) bool {
	if err := sim.LoadDepth(e.Depth); err != nil {
		sim.log.WithError(err).WithField("depth", e.Depth).Error("Area transition failed")
	}
	return true
}

// FuncEvent - произвольное действие (тесты, скрипты хоста).
type FuncEvent struct {
	Label string
	Fn    func(sim *Simulator, now int64) bool
	Block bool
}

func (e *FuncEvent) Name() string   { return e.Label }
func (e *FuncEvent) Blocking() bool { return e.Block }
func (e *FuncEvent) Run(sim *Simulator, now int64) bool {
	return e.Fn(sim, now)
}
