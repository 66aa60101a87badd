package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

// recorder saves each finished round exactly once.
type recorder struct {
	store     *storage.Store
	sessionID string
	log       *log.Logger
	saved     bool   // score saved for the current game over
	lastRound string // ID of the last round summary written
}

// observe is called after every tick with the latest game state.
func (r *recorder) observe(g registry.Game, st core.GameState) {
	if !st.GameOver {
		r.saved = false
		return
	}
	if r.store == nil {
		return
	}

	if !r.saved && st.Score > 0 {
		if _, err := r.store.SaveScore(g.ID(), st.Score); err != nil {
			r.warn("could not save score", err)
		}
	}
	r.saved = true

	s, ok := g.(registry.Summarizer)
	if !ok {
		return
	}
	sum, ok := s.Summary()
	if !ok || sum.ID == r.lastRound {
		return
	}
	if err := r.store.SaveRound(r.sessionID, sum); err != nil {
		r.warn("could not save round", err)
		return
	}
	r.lastRound = sum.ID
	if r.log != nil {
		r.log.Debug("round saved", "round", sum.ID, "score", sum.Score, "reason", sum.Reason)
	}
}

func (r *recorder) warn(msg string, err error) {
	if r.log != nil {
		r.log.Warn(msg, "err", err)
	}
}
