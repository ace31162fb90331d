package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// ErrUnknownAction - клиент прислал действие, которого нет в реестре.
var ErrUnknownAction = errors.New("unknown action")

// Context передает хендлеру то, что известно о клиенте до входа в симуляцию.
// Хендлер не трогает мир: он только декодирует команду.
type Context struct {
	Actor domain.EntityID // Сущность, которой управляет клиент
	Token string
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (domain.UserCommand, error)

// Registry сопоставляет имя действия из протокола и хендлер.
type Registry struct {
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

func (r *Registry) Register(action string, h HandlerFunc) {
	r.handlers[action] = h
}

func (r *Registry) Has(action string) bool {
	_, ok := r.handlers[action]
	return ok
}

// Decode превращает сообщение клиента в команду симулятора.
func (r *Registry) Decode(ctx Context, cmd api.ClientCommand) (domain.UserCommand, error) {
	h, ok := r.handlers[strings.ToUpper(cmd.Action)]
	if !ok {
		return domain.UserCommand{}, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	return h(ctx, cmd.Payload)
}
