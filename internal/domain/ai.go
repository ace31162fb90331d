package domain

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunAI - граница ошибок для решения AI. Ошибка или паника логируются,
// ход считается пустым, тик симуляции продолжается.
func RunAI(ctx Context, e *Entity) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ai panic: %v", r)
		}
		if err != nil {
			ctx.Log().WithFields(logrus.Fields{
				"entity_id":  e.ID,
				"ai":         e.AI.Kind(),
				"initiative": e.Initiative,
			}).WithError(err).Warn("AI round failed")
		}
	}()
	return e.AI.OnRound(ctx, e)
}

// RunAreaAI - то же для AI уровня.
func RunAreaAI(ctx Context, area *Area) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("area ai panic: %v", r)
		}
		if err != nil {
			ctx.Log().WithFields(logrus.Fields{
				"area": area.ID,
				"ai":   area.AI.Kind(),
			}).WithError(err).Warn("Area AI round failed")
		}
	}()
	return area.AI.OnRound(ctx, area)
}

// CreateAI вызывает OnCreate с той же защитой.
func CreateAI(ctx Context, e *Entity) (err error) {
	if e.AI == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ai create panic: %v", r)
		}
		if err != nil {
			ctx.Log().WithField("entity_id", e.ID).WithError(err).Warn("AI OnCreate failed")
		}
	}()
	return e.AI.OnCreate(ctx, e)
}

// SetAI меняет стратегию на лету (лава застывает в Inert).
func (e *Entity) SetAI(ctx Context, ai AI) {
	e.AI = ai
	_ = CreateAI(ctx, e)
}

func safeOnDamage(ctx Context, e *Entity, amount int, t DamageType) (out int) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Log().WithField("entity_id", e.ID).Warnf("AI OnDamage panic: %v", r)
			out = amount
		}
	}()
	return e.AI.OnDamage(ctx, e, amount, t)
}
