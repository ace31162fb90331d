package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/systems"
)

// CanShift - удастся ли сдвиг (ход или атака по врагу) без побочных эффектов.
func (s *Simulator) CanShift(e *domain.Entity, dx, dy int) bool {
	if e.Static || (dx == 0 && dy == 0) {
		return false
	}
	res := systems.CalculateMove(e, dx, dy, s.world, s)
	if res.BlockedBy != nil {
		return e.IsHostileTo(res.BlockedBy)
	}
	return res.HasMoved
}

// Shift - ход или атака. Враг в целевой клетке атакуется, союзник блокирует.
func (s *Simulator) Shift(e *domain.Entity, dx, dy int) bool {
	if e.Static || !e.IsAlive() || (dx == 0 && dy == 0) {
		return false
	}
	res := systems.CalculateMove(e, dx, dy, s.world, s)

	switch {
	case res.IsWall, res.Hazard != nil:
		return false
	case res.BlockedBy != nil:
		if e.IsHostileTo(res.BlockedBy) {
			return s.Attack(e, res.BlockedBy)
		}
		return false
	case !res.HasMoved:
		return false
	}

	from := e.Pos
	e.Pos = domain.Position{X: res.NewX, Y: res.NewY}
	s.world.MoveEntity(e.ID, from, e.Pos)
	s.anim.SetAnimation(e.ID, domain.AnimWalk)

	if e == s.player {
		s.refreshFieldOfView()
		if res.Exit != nil {
			s.enterExit(res.Exit)
		}
	}
	return true
}

func (s *Simulator) enterExit(exit *domain.Entity) {
	delta := 1
	if v, ok := exit.Vars[domain.VarDepthDelta]; ok {
		delta = v
	}
	depth := s.Depth() + delta
	if err := s.events.Enqueue(&AreaTransitionEvent{Depth: depth}); err != nil {
		s.log.WithError(err).Error("Area transition dropped")
		return
	}
	s.log.WithField("depth", depth).Info("Player reached exit")
}

// Attack - ближняя атака: attack атакующего против armor цели.
func (s *Simulator) Attack(attacker, target *domain.Entity) bool {
	if attacker == target || !attacker.IsAlive() || !target.IsAlive() {
		return false
	}
	res := systems.ResolveAttack(attacker, target)

	s.anim.SetAnimation(attacker.ID, domain.AnimAttack)
	s.cues.PlaySound(domain.SoundHit, domain.AtEntity(target))
	dealt := target.Damage(s, res.Damage, res.Type)

	s.log.WithFields(logrus.Fields{
		"entity_id":  attacker.ID,
		"target_id":  target.ID,
		"damage":     dealt,
		"initiative": s.Now(),
	}).Debug("Attack")
	return true
}

// ApplySkill применяет скилл к клетке: своя клетка - OnSelf,
// живая сущность - OnTarget, иначе OnEmpty. Дальность и видимость проверяются.
func (s *Simulator) ApplySkill(actor *domain.Entity, skill *domain.Skill, x, y int) bool {
	if skill == nil || !actor.IsAlive() || !skill.Ready() {
		return false
	}

	if x == actor.Pos.X && y == actor.Pos.Y {
		return skill.OnSelf(s, actor)
	}

	check := systems.ValidateTarget(actor, x, y, skill.Range, true, s.world)
	if !check.Valid {
		s.log.WithFields(logrus.Fields{
			"entity_id": actor.ID,
			"skill":     skill.ID,
			"reason":    check.Reason,
		}).Debug("Skill target rejected")
		return false
	}

	if target := s.targetAt(actor, x, y); target != nil {
		return skill.OnTarget(s, actor, target)
	}
	return skill.OnEmpty(s, actor, x, y)
}

// targetAt - первая живая не-декоративная сущность в клетке.
func (s *Simulator) targetAt(actor *domain.Entity, x, y int) *domain.Entity {
	for _, e := range s.EntitiesAt(x, y) {
		if e != actor && e.IsAlive() && !e.Dressing {
			return e
		}
	}
	return nil
}

// UseCombo находит скилл по одному id или по комбо-набору и применяет его.
func (s *Simulator) UseCombo(actor *domain.Entity, ids []string, x, y int) bool {
	var skill *domain.Skill
	switch len(ids) {
	case 0:
		return false
	case 1:
		skill = actor.Skill(ids[0])
	default:
		skill = actor.GetComboSkill(ids)
	}
	if skill == nil {
		s.log.WithFields(logrus.Fields{
			"entity_id": actor.ID,
			"skills":    ids,
		}).Debug("No skill for selection")
		return false
	}
	return s.ApplySkill(actor, skill, x, y)
}

// Click - клик по клетке: своя клетка - пропуск хода, соседняя - сдвиг,
// дальняя - шаг к ней по обходным направлениям.
func (s *Simulator) Click(actor *domain.Entity, x, y int) bool {
	target := domain.Position{X: x, Y: y}
	if target == actor.Pos {
		return true
	}
	if !s.world.IsValid(x, y) {
		return false
	}
	if actor.Pos.IsAdjacent(target) {
		dx, dy := actor.Pos.Sign(target)
		return s.Shift(actor, dx, dy)
	}
	for _, step := range systems.ChaseSteps(actor.Pos, target) {
		res := systems.CalculateMove(actor, step.X, step.Y, s.world, s)
		if res.HasMoved {
			return s.Shift(actor, step.X, step.Y)
		}
	}
	return false
}
