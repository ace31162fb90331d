package agent

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/network"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/systems"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// SubscriberID - под этим именем автопилот подписан на хаб.
const SubscriberID = "autopilot"

const submitTimeout = 2 * time.Second

// Submitter - куда бот отправляет команды (engine.Instance).
type Submitter interface {
	Submit(ctx context.Context, cmd domain.UserCommand) error
}

// Bot - автопилот за игрока (Headless Agent).
// Он видит мир так же, как клиент: только через снимки из хаба,
// и отвечает командой, когда симуляция ждёт ввода.
//
// Жизненный цикл:
//  1. NewBot -> подписка на хаб, получение личного канала (Inbox).
//  2. Run -> цикл в отдельной горутине до отмены контекста или конца игры.
//  3. Снимок с WaitingForInput и новым номером хода -> Decide -> Submit.
type Bot struct {
	Inbox <-chan api.ServerResponse

	hub      *network.Broadcaster
	target   Submitter
	lastTurn int64
	log      *logrus.Entry
}

func NewBot(hub *network.Broadcaster, target Submitter) *Bot {
	return &Bot{
		Inbox:    hub.Register(SubscriberID),
		hub:      hub,
		target:   target,
		lastTurn: -1,
		log:      logger.For("autopilot"),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.hub.Unregister(SubscriberID)
	b.log.Info("Autopilot engaged")

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-b.Inbox:
			if !ok {
				return
			}
			if snap.Type == api.TypeGameOver {
				b.log.WithField("turn", snap.Turn).Info("Autopilot: game over")
				return
			}
			if snap.Type != api.TypeUpdate || !snap.WaitingForInput || snap.Turn == b.lastTurn {
				continue
			}
			b.lastTurn = snap.Turn
			b.act(ctx, snap)
		}
	}
}

func (b *Bot) act(ctx context.Context, snap api.ServerResponse) {
	cmd := Decide(snap)
	sctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	err := b.target.Submit(sctx, cmd)
	if err == nil {
		b.log.WithField("command", cmd.String()).Debug("Autopilot move")
		return
	}
	b.log.WithError(err).WithField("command", cmd.String()).Debug("Autopilot command rejected, waiting")
	if cmd.Kind != domain.CommandWait {
		_ = b.target.Submit(sctx, domain.UserCommand{Kind: domain.CommandWait})
	}
}

// Decide - мозг бота: атаковать соседнего врага, идти к ближайшему видимому, иначе ждать.
func Decide(snap api.ServerResponse) domain.UserCommand {
	wait := domain.UserCommand{Kind: domain.CommandWait}

	var me *api.EntityView
	for i := range snap.Entities {
		if snap.Entities[i].ID == snap.MyEntityID {
			me = &snap.Entities[i]
			break
		}
	}
	if me == nil || (me.Stats != nil && me.Stats.IsDead) {
		return wait
	}

	// Локальная картина мира: всё, что не видели, считаем стеной
	walkable := make(map[api.Position]bool, len(snap.Map))
	for _, tv := range snap.Map {
		if !tv.IsWall {
			walkable[api.Position{X: tv.X, Y: tv.Y}] = true
		}
	}
	occupied := make(map[api.Position]bool, len(snap.Entities))

	var enemy *api.EntityView
	best := -1
	for i := range snap.Entities {
		ev := &snap.Entities[i]
		if ev.Stats == nil || ev.Stats.IsDead || ev == me {
			continue
		}
		occupied[ev.Pos] = true
		if ev.Faction == "" || ev.Faction == me.Faction || ev.Faction == domain.FactionNeutral {
			continue
		}
		d := distance(me.Pos, ev.Pos)
		if best < 0 || d < best {
			enemy, best = ev, d
		}
	}
	if enemy == nil {
		return wait
	}

	if best == 1 {
		if id, ok := domain.ParseEntityID(enemy.ID); ok {
			return domain.UserCommand{Kind: domain.CommandAttack, TargetID: id}
		}
		return wait
	}

	from := domain.Position{X: me.Pos.X, Y: me.Pos.Y}
	to := domain.Position{X: enemy.Pos.X, Y: enemy.Pos.Y}
	for _, step := range systems.ChaseSteps(from, to) {
		next := api.Position{X: me.Pos.X + step.X, Y: me.Pos.Y + step.Y}
		if walkable[next] && !occupied[next] {
			return domain.UserCommand{Kind: domain.CommandMove, Dx: step.X, Dy: step.Y}
		}
	}
	return wait
}

// distance - шаги по Чебышёву (диагональ стоит как прямая).
func distance(a, b api.Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
