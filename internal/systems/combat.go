package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// AttackResult - расчёт ближней атаки до применения эффектов цели.
type AttackResult struct {
	Damage int
	Type   domain.DamageType
}

// ResolveAttack считает урон: attack атакующего минус armor цели, минимум 1.
// Сам урон наносит Entity.Damage, здесь только арифметика.
func ResolveAttack(attacker, target *domain.Entity) AttackResult {
	// Базовый урон (минимум 1, даже без статов)
	baseDamage := max(1, attacker.Vars[domain.VarAttack])
	defense := target.Vars[domain.VarArmor]

	finalDamage := baseDamage - defense
	if finalDamage < 1 {
		finalDamage = 1
	}

	logger.Log.WithFields(logrus.Fields{
		"component":    "combat_system",
		"attacker_id":  attacker.ID,
		"target_id":    target.ID,
		"base_damage":  baseDamage,
		"defense":      defense,
		"final_damage": finalDamage,
	}).Debug("Attack resolved.")

	return AttackResult{Damage: finalDamage, Type: domain.DamagePhysical}
}
