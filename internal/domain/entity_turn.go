package domain

// CanAct - получает ли сущность решение AI в этот ход.
func (e *Entity) CanAct() bool {
	return !e.Frozen && !e.Dressing && e.Health() > 0 && e.IsAlive()
}

// Run - один ход сущности. Диспетчер вызывает его, когда сущность в голове
// очереди и не занята анимацией.
//
//	Idle -> Effects -> Skills -> AI -> Resolved | WaitingForUser
//
// Ход, возобновлённый из WaitingForUser, не тикает эффекты и скиллы повторно.
func (e *Entity) Run(ctx Context) TurnResult {
	// 1. Ждём ввода - ничего не делаем
	if e.Phase == PhaseWaitingForUser && ctx.WaitingForUser() {
		return TurnPending
	}

	resumed := e.Phase == PhaseWaitingForUser
	if !resumed {
		// 2. Эффекты и кулдауны
		e.Phase = PhaseEffects
		e.tickEffects(ctx)

		e.Phase = PhaseSkills
		e.tickSkills()
	}

	// 3. Решение AI
	e.Phase = PhaseAI
	if e.CanAct() && e.AI != nil {
		RunAI(ctx, e)
	}

	// 4. Игрок всё ещё ждёт ввода - ход не закончен
	if ctx.WaitingForUser() && e.IsAlive() && ctx.Player() == e {
		e.Phase = PhaseWaitingForUser
		return TurnPending
	}

	// 5. Конец хода
	e.Phase = PhaseResolved
	e.Initiative += e.InitiativeCost(ctx.RoundLength())

	// 6. Видимость
	e.UpdateVisibility(ctx)
	return TurnEnded
}

// UpdateVisibility показывает сущность в поле зрения и прячет её,
// если она не видна дольше VisibilityGrace.
func (e *Entity) UpdateVisibility(ctx Context) {
	now := ctx.Now()
	if ctx.World().InLineOfSight(e.Pos.X, e.Pos.Y) {
		if !e.Visible {
			e.Visible = true
			ctx.Animator().AddVisualTransition(e.ID, Transition{Kind: TransitionFadeIn, Duration: fadeDuration})
		}
		e.LastSeenInitiative = now
		return
	}
	if e.Visible && now-e.LastSeenInitiative >= VisibilityGrace {
		e.Visible = false
		ctx.Animator().AddVisualTransition(e.ID, Transition{Kind: TransitionFadeOut, Duration: fadeDuration})
	}
}

const fadeDuration = 250
