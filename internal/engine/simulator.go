package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

// CommandRecorder получает каждую поглощённую команду игрока (журнал для реплея).
type CommandRecorder interface {
	RecordCommand(initiative int, actor domain.EntityID, cmd domain.UserCommand)
}

// TurnRecord - итог одного завершённого хода.
type TurnRecord struct {
	Turn       int64
	Initiative int
	EntityID   domain.EntityID
	Template   string
	Health     int
	X, Y       int
}

// TurnObserver получает записи о ходах (индекс в sqlite, отладка).
type TurnObserver interface {
	OnTurn(rec TurnRecord)
}

// Collaborators - внешние зависимости ядра. Всё необязательно.
type Collaborators struct {
	Animator domain.Animator
	Cues     domain.CueSink
	Recorder CommandRecorder
	Observer TurnObserver
	Areas    domain.AreaProvider
}

// Simulator - фасад симуляции: реестр сущностей, бой, ходы, ввод.
// Однопоточный: все вызовы идут из одной горутины хоста.
type Simulator struct {
	cfg     Config
	factory domain.Factory

	anim     domain.Animator
	cues     domain.CueSink
	recorder CommandRecorder
	observer TurnObserver
	areas    domain.AreaProvider

	events *EventManager
	rng    *utils.RNG
	log    *logrus.Entry

	area      *domain.Area
	world     *domain.GameWorld
	areaActor *areaActor

	entities map[domain.EntityID]*domain.Entity
	order    []domain.EntityID
	nextID   domain.EntityID
	player   *domain.Entity

	pending  *domain.UserCommand
	gameOver bool
	turns    int64
}

var _ domain.Context = (*Simulator)(nil)

func NewSimulator(cfg Config, factory domain.Factory, c Collaborators) *Simulator {
	cfg.normalize()
	if c.Animator == nil {
		c.Animator = domain.NopAnimator{}
	}
	if c.Cues == nil {
		c.Cues = domain.NopCues{}
	}
	sim := &Simulator{
		cfg:      cfg,
		factory:  factory,
		anim:     c.Animator,
		cues:     c.Cues,
		recorder: c.Recorder,
		observer: c.Observer,
		areas:    c.Areas,
		events:   NewEventManager(cfg.StrictEventQueue),
		rng:      utils.NewRNG(cfg.Seed),
		log:      logger.For("simulator"),
		entities: make(map[domain.EntityID]*domain.Entity),
		world:    domain.NewGameWorld(1, 1, domain.FloorTemplate),
	}
	sim.events.OnTurn = sim.onTurn
	return sim
}

// DoLogic - точка входа хоста, вызывается раз в кадр. now - монотонные часы хоста в мс.
func (s *Simulator) DoLogic(now int64) error {
	return s.events.Dispatch(s, now)
}

func (s *Simulator) onTurn(a domain.Actor) {
	e, ok := a.(*domain.Entity)
	if !ok {
		return
	}
	s.turns++
	if s.observer != nil {
		s.observer.OnTurn(TurnRecord{
			Turn:       s.turns,
			Initiative: s.events.CurrentInitiative(),
			EntityID:   e.ID,
			Template:   e.TemplateID,
			Health:     e.Health(),
			X:          e.Pos.X,
			Y:          e.Pos.Y,
		})
	}
}

// --- domain.Context ---

func (s *Simulator) Now() int                  { return s.events.CurrentInitiative() }
func (s *Simulator) RoundLength() int          { return s.cfg.RoundLength }
func (s *Simulator) World() *domain.GameWorld  { return s.world }
func (s *Simulator) Area() *domain.Area        { return s.area }
func (s *Simulator) RNG() *utils.RNG           { return s.rng }
func (s *Simulator) Log() *logrus.Entry        { return s.log }
func (s *Simulator) Animator() domain.Animator { return s.anim }
func (s *Simulator) Cues() domain.CueSink      { return s.cues }
func (s *Simulator) Player() *domain.Entity    { return s.player }

// --- Доступ для хоста ---

func (s *Simulator) Config() Config         { return s.cfg }
func (s *Simulator) Events() *EventManager  { return s.events }
func (s *Simulator) GameOver() bool         { return s.gameOver }
func (s *Simulator) Turns() int64           { return s.turns }
func (s *Simulator) HostTime() int64        { return s.events.Now() }
func (s *Simulator) Depth() int {
	if s.area == nil {
		return 0
	}
	return s.area.Depth
}

// --- Жизненный цикл локаций ---

// LoadDepth просит провайдер локаций сгенерировать уровень и загружает его.
func (s *Simulator) LoadDepth(depth int) error {
	if s.areas == nil {
		return fmt.Errorf("%w: no area provider", ErrNoArea)
	}
	area, err := s.areas.LoadArea(depth)
	if err != nil {
		return fmt.Errorf("%w: depth %d: %v", ErrNoArea, depth, err)
	}
	s.LoadArea(area)
	return nil
}

// LoadArea сносит текущую локацию (игрок переживает переход) и загружает новую.
func (s *Simulator) LoadArea(area *domain.Area) {
	s.teardownArea()

	s.area = area
	s.world = area.World
	s.log = logger.For("simulator").WithField("area", area.ID)

	if area.AI != nil {
		s.areaActor = &areaActor{area: area, initiative: s.Now()}
		s.events.AddActor(s.areaActor)
	}

	for _, p := range area.Placements {
		if s.CreateEntity(p.TemplateID, p.Pos.X, p.Pos.Y) == nil {
			s.log.WithField("template", p.TemplateID).Warn("Placement skipped")
		}
	}

	if s.player != nil && s.player.IsAlive() {
		s.player.Pos = area.PlayerStart
		s.player.Initiative = s.Now()
		s.player.Phase = domain.PhaseIdle
		s.AddEntity(s.player)
		s.refreshFieldOfView()
	}

	s.log.WithFields(logrus.Fields{
		"depth":    area.Depth,
		"entities": len(s.entities),
	}).Info("Area loaded")
}

// Teardown освобождает всё, включая игрока.
func (s *Simulator) Teardown() {
	s.teardownArea()
	if s.player != nil {
		s.anim.Release(s.player.ID)
		s.player = nil
	}
	s.area = nil
}

func (s *Simulator) teardownArea() {
	for _, id := range append([]domain.EntityID(nil), s.order...) {
		if s.player != nil && id == s.player.ID {
			continue
		}
		s.removeEntity(id)
	}
	if s.player != nil {
		s.world.RemoveEntity(s.player.ID, s.player.Pos)
	}
	s.entities = make(map[domain.EntityID]*domain.Entity)
	s.order = nil
	s.areaActor = nil
	s.pending = nil
	s.events.Reset()
}

// areaActor - AI уровня в общей очереди инициативы.
type areaActor struct {
	area       *domain.Area
	initiative int
}

func (a *areaActor) ActorID() domain.EntityID { return domain.NoEntity }
func (a *areaActor) GetInitiative() int       { return a.initiative }
func (a *areaActor) Run(ctx domain.Context) domain.TurnResult {
	_ = domain.RunAreaAI(ctx, a.area)
	a.initiative += ctx.RoundLength()
	return domain.TurnEnded
}
