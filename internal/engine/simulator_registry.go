package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/systems"
)

func (s *Simulator) newID() domain.EntityID {
	s.nextID++
	return s.nextID
}

// CreateEntity создает сущность по шаблону и ставит её в мир.
// Неизвестный шаблон - nil, вызывающий должен это проверить.
func (s *Simulator) CreateEntity(templateID string, x, y int) *domain.Entity {
	if s.factory == nil {
		s.log.WithField("template", templateID).Error("No entity factory")
		return nil
	}
	d, err := s.factory.Instantiate(templateID)
	if err != nil || d == nil {
		s.log.WithError(fmt.Errorf("%w: %q: %v", ErrUnknownTemplate, templateID, err)).
			Warn("Entity creation failed")
		return nil
	}

	e := domain.NewEntity(s.newID(), d)
	e.Pos = domain.Position{X: x, Y: y}
	e.Initiative = s.Now()
	s.AddEntity(e)

	for _, eff := range d.Effects {
		e.AddEffect(s, eff.Clone())
	}
	return e
}

// AddEntity регистрирует готовую сущность: реестр, карта, очередь, OnCreate AI.
func (s *Simulator) AddEntity(e *domain.Entity) {
	if e.ID == domain.NoEntity {
		e.ID = s.newID()
	} else if e.ID > s.nextID {
		s.nextID = e.ID
	}
	if _, exists := s.entities[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.entities[e.ID] = e
	s.world.PlaceEntity(e.ID, e.Pos)

	if !e.Dressing {
		s.events.AddActor(e)
	}
	_ = domain.CreateAI(s, e)
	e.UpdateVisibility(s)

	s.log.WithFields(logrus.Fields{
		"entity_id": e.ID,
		"template":  e.TemplateID,
		"pos":       e.Pos,
	}).Debug("Entity added")
}

// SpawnPlayer создает сущность игрока в стартовой точке локации.
func (s *Simulator) SpawnPlayer(templateID string) *domain.Entity {
	start := domain.Position{}
	if s.area != nil {
		start = s.area.PlayerStart
	}
	e := s.CreateEntity(templateID, start.X, start.Y)
	if e != nil {
		s.SetPlayer(e)
	}
	return e
}

// SetPlayer назначает сущность, которой управляет внешний ввод.
func (s *Simulator) SetPlayer(e *domain.Entity) {
	s.player = e
	s.gameOver = false
	s.refreshFieldOfView()
}

func (s *Simulator) Entity(id domain.EntityID) *domain.Entity {
	return s.entities[id]
}

// Entities - все сущности в порядке создания.
func (s *Simulator) Entities() []*domain.Entity {
	out := make([]*domain.Entity, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *Simulator) EntitiesAt(x, y int) []*domain.Entity {
	ids := s.world.EntitiesAt(x, y)
	out := make([]*domain.Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// IsFree - клетка проходима и не занята (декорации не считаются).
func (s *Simulator) IsFree(x, y int) bool {
	return systems.IsCellFree(s.world, s, x, y)
}

// Kill - ровно один раз: убирает из очереди, анимация смерти, удаление после неё.
func (s *Simulator) Kill(e *domain.Entity) {
	if e.Killed {
		return
	}
	e.Killed = true
	s.events.RemoveActor(e)

	s.anim.SetAnimation(e.ID, domain.AnimDeath)
	s.cues.PlaySound(domain.SoundDeath, domain.AtEntity(e))

	s.log.WithFields(logrus.Fields{
		"entity_id":  e.ID,
		"template":   e.TemplateID,
		"initiative": s.Now(),
	}).Info("Entity killed")

	if e == s.player {
		s.gameOver = true
		s.pending = nil
		s.log.Info("Player died, game over")
	}

	deadline := s.events.Now() + int64(s.anim.AnimationDuration(domain.AnimDeath))
	if err := s.events.Enqueue(&DestroyEvent{ID: e.ID, NotBefore: deadline}); err != nil {
		s.removeEntity(e.ID)
	}
}

// Destroy убирает сущность из мира сразу (без смерти: рассеивание, замена спавна).
func (s *Simulator) Destroy(e *domain.Entity) {
	if e.Removed {
		return
	}
	s.removeEntity(e.ID)
}

// removeEntity - явное удаление: реестр, карта, очередь, ресурсы рендера.
func (s *Simulator) removeEntity(id domain.EntityID) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	e.Removed = true
	s.events.RemoveActor(e)
	s.world.RemoveEntity(id, e.Pos)
	delete(s.entities, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if e.AI != nil {
		e.AI.OnDestroy(s, e)
	}
	for _, eff := range e.Effects {
		eff.OnRemoved(s, e)
	}
	s.anim.Release(id)
	s.releaseSpawn(e)

	s.log.WithField("entity_id", id).Debug("Entity removed")
}

// releaseSpawn возвращает слот призыва владельцу.
func (s *Simulator) releaseSpawn(e *domain.Entity) {
	if !e.OwnedSpawn {
		return
	}
	e.OwnedSpawn = false
	owner := s.entities[e.OwnerID]
	if owner == nil {
		return
	}
	if owner.Vars[domain.VarSpawnCount] > 0 {
		owner.Vars[domain.VarSpawnCount]--
	}
	if owner.LastSpawnID == e.ID {
		owner.LastSpawnID = domain.NoEntity
	}
}

// Reschedule ставит сущности абсолютную инициативу и переставляет её в очереди.
func (s *Simulator) Reschedule(e *domain.Entity, initiative int) {
	e.Initiative = initiative
	if e.IsAlive() && !e.Dressing {
		s.events.Reschedule(e)
	}
}

// Wait - блокирующая пауза по часам хоста (дать анимации доиграть).
func (s *Simulator) Wait(ms int) {
	if ms <= 0 {
		return
	}
	if err := s.events.Enqueue(&WaitEvent{Deadline: s.events.Now() + int64(ms)}); err != nil {
		s.log.WithError(err).Warn("Wait dropped")
	}
}

func (s *Simulator) refreshFieldOfView() {
	if s.player == nil {
		return
	}
	s.world.RecomputeFieldOfView(s.player.Pos.X, s.player.Pos.Y, s.cfg.FOVRadius)
}
