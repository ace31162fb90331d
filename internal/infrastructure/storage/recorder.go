package storage

import (
	"sync"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
)

// Recorder собирает поглощенные команды игрока в сессию журнала.
type Recorder struct {
	mu      sync.Mutex
	session *Session
}

var _ engine.CommandRecorder = (*Recorder)(nil)

func NewRecorder(seed int64, depth int) *Recorder {
	return &Recorder{session: NewSession(seed, depth)}
}

func (r *Recorder) RecordCommand(initiative int, actor domain.EntityID, cmd domain.UserCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.Entries = append(r.session.Entries, engine.JournalEntry{
		Initiative: initiative,
		Actor:      actor,
		Cmd:        cmd,
	})
}

// Session возвращает копию текущей сессии (можно сохранять во время игры).
func (r *Recorder) Session() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.session
	cp.Entries = append([]engine.JournalEntry(nil), r.session.Entries...)
	return &cp
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.session.Entries)
}
