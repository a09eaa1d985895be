package store

import (
	"sync"

	domaingames "igdb-games-service/internal/domain/games"
)

// Status describes what a view is currently showing.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of a view's state.
type Snapshot struct {
	Term    string
	Games   []domaingames.Game
	Status  Status
	Version uint64
}

// ViewState keeps the current search term and result set owned by one view. Safe for concurrent use.
type ViewState struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewViewState constructs an idle ViewState.
func NewViewState() *ViewState {
	return &ViewState{snap: Snapshot{Games: []domaingames.Game{}}}
}

// BeginSearch records term as the one being loaded. Previous results stay visible until replaced.
func (v *ViewState) BeginSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Term = term
	v.snap.Status = StatusLoading
	v.snap.Version++
}

// SetResults replaces the visible results for term.
func (v *ViewState) SetResults(term string, games []domaingames.Game) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Term = term
	v.snap.Games = cloneGames(games)
	v.snap.Status = StatusReady
	v.snap.Version++
}

// SetFailed clears the results for term and marks the view as failed.
func (v *ViewState) SetFailed(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Term = term
	v.snap.Games = []domaingames.Game{}
	v.snap.Status = StatusFailed
	v.snap.Version++
}

// Snapshot returns a copy of the current state.
func (v *ViewState) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := v.snap
	out.Games = cloneGames(v.snap.Games)
	return out
}

func cloneGames(games []domaingames.Game) []domaingames.Game {
	out := make([]domaingames.Game, len(games))
	copy(out, games)
	return out
}
