package engine

import "errors"

var (
	// ErrUnknownTemplate - фабрика не знает такой блюпринт.
	ErrUnknownTemplate = errors.New("unknown entity template")
	// ErrInputGateClosed - ввод сейчас не принимается (идёт диспетчеризация или игра окончена).
	ErrInputGateClosed = errors.New("user input gate is closed")
	// ErrEventQueueLocked - событие добавлено во время разбора очереди в строгом режиме.
	ErrEventQueueLocked = errors.New("event queue is locked while draining")
	// ErrReentrantDispatch - Dispatch вызван изнутри события или хода.
	ErrReentrantDispatch = errors.New("reentrant dispatch")
	// ErrNoArea - провайдер локаций не смог отдать уровень.
	ErrNoArea = errors.New("area not available")
	// ErrInvalidCommand - команда без вида или с мусором.
	ErrInvalidCommand = errors.New("invalid user command")
	// ErrInstanceStopped - цикл инстанса уже завершился.
	ErrInstanceStopped = errors.New("instance stopped")
	// ErrReplayDiverged - журнал не совпал с симуляцией (другой сид или версия правил).
	ErrReplayDiverged = errors.New("replay diverged")
)
