package domain

import "math"

// Время измеряется в единицах инициативы.
const (
	// RoundLength - стоимость полного хода на скорости 1.0
	RoundLength = 100

	// EffectInfinite - длительность эффекта, который никогда не истекает.
	// Сравнивается через max() как самое большое значение.
	EffectInfinite = math.MaxInt32

	// VisibilityGrace - сколько инициативы сущность остаётся видимой вне поля зрения.
	VisibilityGrace = RoundLength
)

// Параметры восприятия
const (
	VisionRadius = 8
)

// Имена переменных сущности (Vars).
const (
	VarHealth     = "health"
	VarMaxHealth  = "max_health"
	VarAttack     = "attack"
	VarArmor      = "armor"
	VarSpawnCount = "spawn_count"
	VarMaxSpawns  = "max_spawns"
	VarDepthDelta = "depth_delta"
)

// Теги сущностей
const (
	TagHazard   = "hazard"
	TagSolid    = "solid"
	TagFlying   = "flying"
	TagExit     = "exit"
	TagHardened = "hardened"
	TagEmitter  = "emitter"
)

// Фракции
const (
	FactionPlayer  = "player"
	FactionMonster = "monster"
	FactionNeutral = "neutral"
)

// Имена анимаций, которые ядро запрашивает у рендера.
const (
	AnimIdle     = "idle"
	AnimWalk     = "walk"
	AnimAttack   = "attack"
	AnimHit      = "hit"
	AnimDeath    = "death"
	AnimCast     = "cast"
	AnimHardened = "hardened"
	AnimOpen     = "open"
	AnimClosed   = "closed"
)

// Шаблоны частиц и звуков.
const (
	ParticleBlood = "blood"
	ParticleFire  = "fire"
	ParticleFrost = "frost"
	SoundHit      = "hit"
	SoundDeath    = "death"
)
