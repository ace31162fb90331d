package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/presentation"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// Publisher - куда инстанс отправляет снимки (network.Broadcaster).
type Publisher interface {
	Broadcast(msg api.ServerResponse)
}

// InstanceCommand обертка, чтобы передать команду и получить ответ цикла
type InstanceCommand struct {
	Cmd   domain.UserCommand
	Reply chan error
}

// instanceQuery - чтение состояния внутри цикла (отладочные эндпоинты).
type instanceQuery struct {
	fn   func(sim *Simulator)
	done chan struct{}
}

// Instance - одна запущенная сессия: единственная горутина, владеющая симулятором.
// Всё общение с ней - через каналы.
type Instance struct {
	ID string

	sim      *Simulator
	timeline *presentation.Timeline
	hub      Publisher

	// Каналы коммуникации
	CommandChan chan InstanceCommand
	queryChan   chan instanceQuery

	Logs []api.LogEntry // Логи с прошлого снимка

	started      time.Time
	waitingSince int64
	wasWaiting   bool
	depth        int
	over         bool
	done         chan struct{}

	log *logrus.Entry
}

func NewInstance(sim *Simulator, timeline *presentation.Timeline, hub Publisher) *Instance {
	id := uuid.NewString()
	return &Instance{
		ID:          id,
		sim:         sim,
		timeline:    timeline,
		hub:         hub,
		CommandChan: make(chan InstanceCommand, 100),
		queryChan:   make(chan instanceQuery),
		Logs:        []api.LogEntry{},
		depth:       sim.Depth(),
		done:        make(chan struct{}),
		log:         logger.For("instance").WithField("instance_id", id),
	}
}

func (i *Instance) Simulator() *Simulator { return i.sim }

// Done закрывается, когда цикл завершился.
func (i *Instance) Done() <-chan struct{} { return i.done }

// Run запускает игровой цикл: тик каждые 1/FrameRate секунды до отмены
// контекста или конца игры.
func (i *Instance) Run(ctx context.Context) error {
	defer close(i.done)

	i.started = time.Now()
	ticker := time.NewTicker(i.sim.Config().FrameDuration())
	defer ticker.Stop()

	i.log.WithField("seed", i.sim.Config().Seed).Info("Instance loop started")
	i.publish()

	for {
		select {
		case <-ctx.Done():
			i.log.Info("Instance loop stopped")
			return ctx.Err()

		case c := <-i.CommandChan:
			err := i.submit(c.Cmd)
			if c.Reply != nil {
				c.Reply <- err
			}

		case q := <-i.queryChan:
			q.fn(i.sim)
			close(q.done)

		case <-ticker.C:
			i.Step(time.Since(i.started).Milliseconds())
			if i.sim.GameOver() {
				i.log.WithField("turns", i.sim.Turns()).Info("Game over, instance loop finished")
				return nil
			}
		}
	}
}

// Step - один кадр хоста: часы анимаций, один DoLogic, снимок при изменениях.
func (i *Instance) Step(now int64) {
	i.timeline.Advance(now)

	turns := i.sim.Turns()
	if err := i.sim.DoLogic(now); err != nil {
		i.log.WithError(err).Warn("DoLogic failed")
	}

	waiting := i.sim.WaitingForUser()
	if waiting && !i.wasWaiting {
		i.waitingSince = now
	}
	i.wasWaiting = waiting
	i.checkTurnTimeout(now)

	if d := i.sim.Depth(); d != i.depth {
		i.depth = d
		i.AddLog(fmt.Sprintf("Спуск на глубину %d.", d), "INFO")
	}
	if i.sim.GameOver() && !i.over {
		i.over = true
		i.AddLog("Игра окончена.", "INFO")
	}

	if i.sim.Turns() != turns || i.timeline.Pending() > 0 || len(i.Logs) > 0 {
		i.publish()
	}
}

// checkTurnTimeout - игрок бездействует дольше TurnTimeout: ход пропускается.
func (i *Instance) checkTurnTimeout(now int64) {
	timeout := i.sim.Config().TurnTimeout
	if timeout <= 0 || !i.wasWaiting || i.sim.HasPendingUserCommand() {
		return
	}
	if now-i.waitingSince < timeout.Milliseconds() {
		return
	}
	i.log.WithFields(logrus.Fields{
		"initiative": i.sim.Now(),
		"waited_ms":  now - i.waitingSince,
	}).Warn("Turn timed out")
	if err := i.sim.SubmitUserCommand(domain.UserCommand{Kind: domain.CommandWait}); err == nil {
		i.wasWaiting = false
	}
}

func (i *Instance) submit(cmd domain.UserCommand) error {
	err := i.sim.SubmitUserCommand(cmd)
	if err != nil {
		i.AddLog(err.Error(), "ERROR")
		i.log.WithError(err).WithField("command", cmd.String()).Debug("Command rejected")
	}
	return err
}

// Submit передает команду в цикл и ждет ответа.
func (i *Instance) Submit(ctx context.Context, cmd domain.UserCommand) error {
	reply := make(chan error, 1)
	select {
	case i.CommandChan <- InstanceCommand{Cmd: cmd, Reply: reply}:
	case <-i.done:
		return ErrInstanceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-i.done:
		return ErrInstanceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query выполняет fn внутри цикла: симулятор читается без гонок.
func (i *Instance) Query(ctx context.Context, fn func(sim *Simulator)) error {
	q := instanceQuery{fn: fn, done: make(chan struct{})}
	select {
	case i.queryChan <- q:
	case <-i.done:
		return ErrInstanceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-q.done:
		return nil
	case <-i.done:
		return ErrInstanceStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot - текущий снимок для нового подписчика. Подсказки и логи не забирает.
func (i *Instance) Snapshot(ctx context.Context) (api.ServerResponse, error) {
	var snap api.ServerResponse
	err := i.Query(ctx, func(sim *Simulator) {
		snap = BuildSnapshot(sim, i.timeline, nil, nil)
	})
	return snap, err
}

// AddLog добавляет запись в лог для следующего снимка
func (i *Instance) AddLog(text, logType string) {
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	i.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

// publish рассылает снимок и очищает логи и подсказки
func (i *Instance) publish() {
	if i.hub == nil {
		return
	}
	snap := BuildSnapshot(i.sim, i.timeline, i.timeline.Drain(), i.Logs)
	i.Logs = []api.LogEntry{}
	i.hub.Broadcast(snap)
}

// JournalEntry - одна записанная команда игрока.
type JournalEntry struct {
	Initiative int
	Actor      domain.EntityID
	Cmd        domain.UserCommand
}

// HostClock - часы анимаций, которые двигает хост (Timeline).
type HostClock interface {
	Advance(now int64)
}

// RunReplay прогоняет записанные команды через симулятор в виртуальном времени.
// Команда подается, когда симуляция ждет ввода; инициатива должна совпасть
// с записанной. clock может быть nil, если симулятор собран без Timeline.
// Возвращает число поданных команд.
func RunReplay(sim *Simulator, clock HostClock, entries []JournalEntry, maxFrames int) (int, error) {
	log := logger.For("replay")
	frame := sim.Config().FrameDuration().Milliseconds()
	if frame <= 0 {
		frame = 1
	}
	now := sim.HostTime()
	next := 0

	for n := 0; n < maxFrames; n++ {
		if clock != nil {
			clock.Advance(now)
		}
		if err := sim.DoLogic(now); err != nil {
			return next, err
		}
		now += frame

		if sim.GameOver() {
			break
		}
		if !sim.WaitingForUser() || sim.HasPendingUserCommand() {
			continue
		}
		if next >= len(entries) {
			break
		}

		e := entries[next]
		if e.Initiative != sim.Now() {
			return next, fmt.Errorf("%w: entry %d at initiative %d, simulation at %d",
				ErrReplayDiverged, next, e.Initiative, sim.Now())
		}
		if err := sim.SubmitUserCommand(e.Cmd); err != nil {
			return next, fmt.Errorf("entry %d: %w", next, err)
		}
		next++
	}

	log.WithFields(logrus.Fields{
		"commands": next,
		"turns":    sim.Turns(),
		"depth":    sim.Depth(),
	}).Info("Replay finished")
	return next, nil
}
