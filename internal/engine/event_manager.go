package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// Состояния шлюза ввода
const (
	GateRunning = "running"
	GateBlocked = "blocked"
)

// EventManager - диспетчер: очередь инициативы акторов + FIFO побочных событий.
// Каждый Dispatch делает не больше одного хода.
type EventManager struct {
	turns  *TurnManager
	events []Event

	// события, добавленные во время разбора очереди
	deferred []Event
	draining bool
	strict   bool
	// растёт при Reset, чтобы разбор очереди не вернул старые события
	generation int

	dispatching bool
	gate        *fsm.FSM

	currentInitiative int
	now               int64

	// OnTurn вызывается после каждого завершённого хода.
	OnTurn func(a domain.Actor)

	log *logrus.Entry
}

func NewEventManager(strict bool) *EventManager {
	em := &EventManager{
		turns:  NewTurnManager(),
		strict: strict,
		log:    logger.For("dispatcher"),
	}
	em.gate = fsm.NewFSM(
		GateRunning,
		fsm.Events{
			{Name: "block", Src: []string{GateRunning}, Dst: GateBlocked},
			{Name: "resume", Src: []string{GateBlocked}, Dst: GateRunning},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				em.log.WithFields(logrus.Fields{
					"from":       e.Src,
					"to":         e.Dst,
					"initiative": em.currentInitiative,
				}).Debug("Scheduler gate changed")
			},
		},
	)
	return em
}

// CurrentInitiative - глобальные часы симуляции (не убывают).
func (em *EventManager) CurrentInitiative() int { return em.currentInitiative }

// Now - последнее время хоста, переданное в Dispatch (мс).
func (em *EventManager) Now() int64 { return em.now }

func (em *EventManager) Dispatching() bool { return em.dispatching }

func (em *EventManager) WaitingForUser() bool { return em.gate.Is(GateBlocked) }

func (em *EventManager) GateState() string { return em.gate.Current() }

// Block переводит планировщик в ожидание ввода.
func (em *EventManager) Block() {
	if em.gate.Can("block") {
		_ = em.gate.Event(context.Background(), "block")
	}
}

// Resume снимает ожидание ввода.
func (em *EventManager) Resume() {
	if em.gate.Can("resume") {
		_ = em.gate.Event(context.Background(), "resume")
	}
}

func (em *EventManager) AddActor(a domain.Actor)    { em.turns.Add(a) }
func (em *EventManager) RemoveActor(a domain.Actor) { em.turns.Remove(a) }
func (em *EventManager) HasActor(a domain.Actor) bool {
	return em.turns.Has(a)
}

// Reschedule переставляет актора по его текущей инициативе (добавляет, если его нет).
func (em *EventManager) Reschedule(a domain.Actor) { em.turns.Add(a) }

func (em *EventManager) Queue() []TurnItem       { return em.turns.Ordered() }
func (em *EventManager) Snapshot() []QueueEntry  { return em.turns.DebugDump() }
func (em *EventManager) PendingEvents() int      { return len(em.events) + len(em.deferred) }

// Enqueue добавляет событие в конец FIFO. Во время разбора очередь закрыта:
// событие откладывается до конца разбора, а в строгом режиме отклоняется.
func (em *EventManager) Enqueue(ev Event) error {
	if em.draining {
		if em.strict {
			em.log.WithField("event", ev.Name()).Error("Event enqueued while draining")
			return fmt.Errorf("%w: %s", ErrEventQueueLocked, ev.Name())
		}
		em.deferred = append(em.deferred, ev)
		return nil
	}
	em.events = append(em.events, ev)
	return nil
}

// Reset очищает очереди (перезагрузка локации). Часы не сбрасываются.
func (em *EventManager) Reset() {
	em.turns.Clear()
	em.events = nil
	em.deferred = nil
	em.generation++
	em.Resume()
}

// Dispatch - один шаг симуляции:
//  1. разобрать FIFO событий полностью
//  2. если висит блокирующее событие - стоп
//  3. если голова очереди в анимации - стоп, состояние не меняется
//  4. иначе один ход головы очереди
func (em *EventManager) Dispatch(sim *Simulator, now int64) error {
	if em.dispatching {
		return ErrReentrantDispatch
	}
	em.dispatching = true
	defer func() { em.dispatching = false }()

	if now > em.now {
		em.now = now
	}

	em.drain(sim)
	if em.hasBlockingEvent() {
		return nil
	}

	item := em.turns.PeekNext()
	if item == nil {
		return nil
	}
	actor := item.Actor
	if id := actor.ActorID(); id != domain.NoEntity && sim.Animator().IsAnimating(id) {
		return nil
	}

	if actor.GetInitiative() > em.currentInitiative {
		em.currentInitiative = actor.GetInitiative()
	}

	if actor.Run(sim) == domain.TurnPending {
		return nil
	}

	if e, ok := actor.(*domain.Entity); ok && (!e.IsAlive() || e.Dressing) {
		em.turns.Remove(actor)
	} else {
		em.turns.Update(actor)
	}

	if em.OnTurn != nil {
		em.OnTurn(actor)
	}
	return nil
}

func (em *EventManager) drain(sim *Simulator) {
	if len(em.events) == 0 {
		return
	}
	gen := em.generation
	em.draining = true

	current := em.events
	em.events = nil
	kept := make([]Event, 0, len(current))
	for idx, ev := range current {
		if !em.runEvent(sim, ev) {
			kept = append(kept, ev)
		}
		if em.generation != gen {
			// Локацию перезагрузили - остальные события относятся к старой
			em.log.WithField("dropped", len(current)-idx-1).Debug("Event queue reset during drain")
			kept = nil
			break
		}
	}

	em.draining = false
	em.events = append(kept, em.deferred...)
	em.deferred = nil
}

// runEvent - граница ошибок: паника в событии логируется, событие считается завершённым.
func (em *EventManager) runEvent(sim *Simulator, ev Event) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			em.log.WithField("event", ev.Name()).Errorf("Event panic: %v", r)
			done = true
		}
	}()
	return ev.Run(sim, em.now)
}

func (em *EventManager) hasBlockingEvent() bool {
	for _, ev := range em.events {
		if ev.Blocking() {
			return true
		}
	}
	return false
}
