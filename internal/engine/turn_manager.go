package engine

import (
	"container/heap"
	"sort"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// TurnManager manages the priority queue of actor turns.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[domain.Actor]*TurnItem
	seq     uint64
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.Actor]*TurnItem),
	}
}

func (tm *TurnManager) nextSeq() uint64 {
	tm.seq++
	return tm.seq
}

// Add registers an actor in the turn system. Re-adding only re-keys it.
func (tm *TurnManager) Add(a domain.Actor) {
	if item, ok := tm.itemMap[a]; ok {
		tm.queue.Update(item, a.GetInitiative(), tm.nextSeq())
		return
	}

	item := &TurnItem{
		Actor:    a,
		Priority: a.GetInitiative(),
		Seq:      tm.nextSeq(),
	}
	heap.Push(&tm.queue, item)
	tm.itemMap[a] = item

	logger.Log.WithField("actor", a.ActorID()).Debug("Actor added to TurnManager")
}

// Update re-keys an actor after it acted (or was rescheduled).
func (tm *TurnManager) Update(a domain.Actor) {
	if item, ok := tm.itemMap[a]; ok {
		tm.queue.Update(item, a.GetInitiative(), tm.nextSeq())
	}
}

// PeekNext returns the actor whose turn is next, without removing it.
func (tm *TurnManager) PeekNext() *TurnItem {
	if tm.queue.Len() == 0 {
		return nil
	}
	return tm.queue[0]
}

// Remove removes an actor from the turn system (e.g. death).
func (tm *TurnManager) Remove(a domain.Actor) {
	if item, ok := tm.itemMap[a]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, a)
	}
}

func (tm *TurnManager) Has(a domain.Actor) bool {
	_, ok := tm.itemMap[a]
	return ok
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// Ordered returns the items in turn order (a copy, the heap is untouched).
func (tm *TurnManager) Ordered() []TurnItem {
	out := make([]TurnItem, 0, len(tm.queue))
	for _, item := range tm.queue {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// Clear empties the queue (area reload).
func (tm *TurnManager) Clear() {
	tm.queue = tm.queue[:0]
	tm.itemMap = make(map[domain.Actor]*TurnItem)
}

// QueueEntry - строка отладочного дампа очереди.
type QueueEntry struct {
	ID         domain.EntityID `json:"id"`
	Name       string          `json:"name"`
	Initiative int             `json:"initiative"`
	Seq        uint64          `json:"seq"`
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []QueueEntry {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]QueueEntry, 0, tm.Len())
	for _, item := range tm.Ordered() {
		name := "area"
		if e, ok := item.Actor.(*domain.Entity); ok {
			name = e.Name
		}
		result = append(result, QueueEntry{
			ID:         item.Actor.ActorID(),
			Name:       name,
			Initiative: item.Priority,
			Seq:        item.Seq,
		})
	}
	return result
}
