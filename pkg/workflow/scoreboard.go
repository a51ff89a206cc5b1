package workflow

import (
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// ScoreBoard aggregates guilt scores and decisions of all suspects in one
// adjudication pass
type ScoreBoard struct {
	suspects []*model.SuspectLink
}

// NewScoreBoard builds a score board over the suspect set. The board reads
// and writes the given links directly.
func NewScoreBoard(suspects []*model.SuspectLink) *ScoreBoard {
	return &ScoreBoard{suspects: suspects}
}

// Len returns the number of suspects on the board
func (b *ScoreBoard) Len() int {
	return len(b.suspects)
}

// Entry returns the link of one suspect or nil
func (b *ScoreBoard) Entry(id types.SuspectID) *model.SuspectLink {
	for _, s := range b.suspects {
		if s.SuspectID == id {
			return s
		}
	}
	return nil
}

// MissingScores lists suspects lacking the detective or the sergeant score
func (b *ScoreBoard) MissingScores() []types.SuspectID {
	return b.filter(func(s *model.SuspectLink) bool {
		return !s.IsScored()
	})
}

// MissingCaptainDecisions lists suspects without a captain decision
func (b *ScoreBoard) MissingCaptainDecisions() []types.SuspectID {
	return b.filter(func(s *model.SuspectLink) bool {
		return s.CaptainDecision == ""
	})
}

// MissingChiefDecisions lists suspects without a chief decision
func (b *ScoreBoard) MissingChiefDecisions() []types.SuspectID {
	return b.filter(func(s *model.SuspectLink) bool {
		return s.ChiefDecision == ""
	})
}

// Reset clears every score and decision, forcing a fresh scoring pass
func (b *ScoreBoard) Reset() {
	for _, s := range b.suspects {
		s.ClearAdjudication()
	}
}

func (b *ScoreBoard) filter(missing func(*model.SuspectLink) bool) []types.SuspectID {
	var ids []types.SuspectID
	for _, s := range b.suspects {
		if missing(s) {
			ids = append(ids, s.SuspectID)
		}
	}
	return ids
}
