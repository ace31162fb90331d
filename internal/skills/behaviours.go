// Package skills contains the behaviours a skill runs on self, target or empty cell.
package skills

import (
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Damage наносит урон цели (для OnSelf цель - сам актор). Self - всегда по себе.
type Damage struct {
	Amount int
	Type   domain.DamageType
	Self   bool
}

func (d Damage) Apply(ctx domain.Context, use domain.SkillUse) bool {
	victim := use.Target
	if d.Self {
		victim = use.Actor
	}
	if victim == nil || !victim.IsAlive() {
		return false
	}
	victim.Damage(ctx, d.Amount, d.Type)
	return true
}

// ApplyEffect накладывает копию шаблона эффекта.
type ApplyEffect struct {
	Template domain.Effect
	Self     bool
}

func (a ApplyEffect) Apply(ctx domain.Context, use domain.SkillUse) bool {
	victim := use.Target
	if a.Self {
		victim = use.Actor
	}
	if victim == nil || !victim.IsAlive() || a.Template == nil {
		return false
	}
	victim.AddEffect(ctx, a.Template.Clone())
	return true
}

// Spawn призывает сущность в пустую клетку.
//
//	Independent: не учитывается в spawn_count актора
//	Loop: перед призывом уничтожает предыдущий призыв актора
//	Max: лимит призывов; 0 - берётся var max_spawns актора, и если его нет - без лимита
type Spawn struct {
	TemplateID  string
	Independent bool
	Loop        bool
	Max         int
}

func (s Spawn) Apply(ctx domain.Context, use domain.SkillUse) bool {
	actor := use.Actor

	var prev *domain.Entity
	if s.Loop && actor.LastSpawnID != domain.NoEntity {
		prev = ctx.Entity(actor.LastSpawnID)
	}

	if !ctx.IsFree(use.X, use.Y) {
		return false
	}

	if !s.Independent {
		limit := s.Max
		if limit <= 0 {
			limit = actor.Vars[domain.VarMaxSpawns]
		}
		count := actor.Vars[domain.VarSpawnCount]
		// предыдущий призыв в режиме Loop освобождает своё место
		if prev != nil && prev.OwnedSpawn {
			count--
		}
		if limit > 0 && count >= limit {
			ctx.Log().WithFields(logrus.Fields{
				"entity_id": actor.ID,
				"template":  s.TemplateID,
				"limit":     limit,
			}).Debug("Spawn cap reached")
			return false
		}
	}

	// старый призыв уходит только когда новый точно появится
	if s.Loop {
		if prev != nil {
			ctx.Destroy(prev)
		}
		actor.LastSpawnID = domain.NoEntity
	}

	spawned := ctx.CreateEntity(s.TemplateID, use.X, use.Y)
	if spawned == nil {
		return false
	}
	spawned.OwnerID = actor.ID
	if spawned.Faction == "" {
		spawned.Faction = actor.Faction
	}
	if !s.Independent {
		spawned.OwnedSpawn = true
		actor.Vars[domain.VarSpawnCount]++
	}
	actor.LastSpawnID = spawned.ID
	return true
}
