package state

import (
	"log/slog"
	"sync"
)

// Origin tells subscribers who produced a scene replacement.
type Origin int

const (
	// OriginEditor is a change made in the local canvas editor.
	OriginEditor Origin = iota
	// OriginFeed is a scene parsed from a chat directive.
	OriginFeed
	// OriginRemote is a scene mirrored from a feed host.
	OriginRemote
)

func (o Origin) String() string {
	switch o {
	case OriginEditor:
		return "editor"
	case OriginFeed:
		return "feed"
	case OriginRemote:
		return "remote"
	}
	return "unknown"
}

// Change is delivered to subscribers after each replacement.
type Change struct {
	Scene    Scene
	Revision Revision
	Origin   Origin
}

// Board owns the canonical scene on behalf of the application. It is
// only ever replaced as a whole; readers get snapshots. Board is safe for
// concurrent use.
type Board struct {
	mu          sync.RWMutex
	scene       Scene
	clock       Clock
	subscribers []func(Change)
	log         *slog.Logger
}

// NewBoard creates an empty board. A nil logger uses slog.Default.
func NewBoard(log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{log: log.With("component", "board")}
}

// Scene returns a snapshot of the current scene.
func (b *Board) Scene() Scene {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scene.Clone()
}

// Revision returns the revision of the current scene.
func (b *Board) Revision() Revision {
	return b.clock.Now()
}

// Replace swaps in scene and notifies subscribers outside the lock, in
// subscription order. The board keeps its own copy.
func (b *Board) Replace(scene Scene, origin Origin) Revision {
	own := scene.Clone()

	b.mu.Lock()
	b.scene = own
	rev := b.clock.Tick()
	subs := make([]func(Change), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	b.log.Debug("scene replaced", "revision", rev, "origin", origin, "elements", len(own))
	for _, fn := range subs {
		fn(Change{Scene: own.Clone(), Revision: rev, Origin: origin})
	}
	return rev
}

// Subscribe registers fn for every future replacement.
func (b *Board) Subscribe(fn func(Change)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}
