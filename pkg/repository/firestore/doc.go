package firestore

import (
	"time"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type caseDoc struct {
	ID            string       `firestore:"id"`
	Title         string       `firestore:"title"`
	Status        string       `firestore:"status"`
	Origin        string       `firestore:"origin"`
	Severity      int          `firestore:"crime_severity"`
	CreatedBy     string       `firestore:"created_by"`
	LeadDetective string       `firestore:"lead_detective"`
	ApprovedBy    string       `firestore:"approved_by"`
	History       []historyDoc `firestore:"history"`
	Version       int64        `firestore:"version"`
	CreatedAt     time.Time    `firestore:"created_at"`
	UpdatedAt     time.Time    `firestore:"updated_at"`
}

type historyDoc struct {
	ID        string    `firestore:"id"`
	Action    string    `firestore:"action"`
	From      string    `firestore:"from_status"`
	To        string    `firestore:"to_status"`
	Actor     string    `firestore:"actor"`
	SuspectID string    `firestore:"suspect_id"`
	Notes     string    `firestore:"notes"`
	Timestamp time.Time `firestore:"timestamp"`
}

type suspectDoc struct {
	CaseID              string    `firestore:"case_id"`
	SuspectID           string    `firestore:"suspect_id"`
	FullName            string    `firestore:"full_name"`
	Role                string    `firestore:"role"`
	Status              string    `firestore:"status"`
	LinkedBy            string    `firestore:"linked_by"`
	DetectiveGuiltScore *int      `firestore:"detective_guilt_score"`
	SergeantGuiltScore  *int      `firestore:"sergeant_guilt_score"`
	CaptainDecision     string    `firestore:"captain_decision"`
	ChiefDecision       string    `firestore:"chief_decision"`
	CreatedAt           time.Time `firestore:"created_at"`
	UpdatedAt           time.Time `firestore:"updated_at"`
}

func toCaseDoc(c *model.Case) *caseDoc {
	history := make([]historyDoc, len(c.History))
	for i, h := range c.History {
		history[i] = historyDoc{
			ID:        h.ID,
			Action:    string(h.Action),
			From:      string(h.From),
			To:        string(h.To),
			Actor:     string(h.Actor),
			SuspectID: string(h.SuspectID),
			Notes:     h.Notes,
			Timestamp: h.Timestamp,
		}
	}

	return &caseDoc{
		ID:            string(c.ID),
		Title:         c.Title,
		Status:        string(c.Status),
		Origin:        string(c.Origin),
		Severity:      int(c.Severity),
		CreatedBy:     string(c.CreatedBy),
		LeadDetective: string(c.LeadDetective),
		ApprovedBy:    string(c.ApprovedBy),
		History:       history,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (d *caseDoc) toModel() *model.Case {
	var history []model.HistoryEntry
	if len(d.History) > 0 {
		history = make([]model.HistoryEntry, len(d.History))
		for i, h := range d.History {
			history[i] = model.HistoryEntry{
				ID:        h.ID,
				Action:    types.Action(h.Action),
				From:      types.CaseStatus(h.From),
				To:        types.CaseStatus(h.To),
				Actor:     types.ActorID(h.Actor),
				SuspectID: types.SuspectID(h.SuspectID),
				Notes:     h.Notes,
				Timestamp: h.Timestamp,
			}
		}
	}

	return &model.Case{
		ID:            types.CaseID(d.ID),
		Title:         d.Title,
		Status:        types.CaseStatus(d.Status),
		Origin:        types.CaseOrigin(d.Origin),
		Severity:      types.CrimeSeverity(d.Severity),
		CreatedBy:     types.ActorID(d.CreatedBy),
		LeadDetective: types.ActorID(d.LeadDetective),
		ApprovedBy:    types.ActorID(d.ApprovedBy),
		History:       history,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toSuspectDoc(s *model.SuspectLink) *suspectDoc {
	return &suspectDoc{
		CaseID:              string(s.CaseID),
		SuspectID:           string(s.SuspectID),
		FullName:            s.FullName,
		Role:                string(s.Role),
		Status:              string(s.Status),
		LinkedBy:            string(s.LinkedBy),
		DetectiveGuiltScore: s.DetectiveGuiltScore,
		SergeantGuiltScore:  s.SergeantGuiltScore,
		CaptainDecision:     s.CaptainDecision,
		ChiefDecision:       s.ChiefDecision,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (d *suspectDoc) toModel() *model.SuspectLink {
	return &model.SuspectLink{
		CaseID:              types.CaseID(d.CaseID),
		SuspectID:           types.SuspectID(d.SuspectID),
		FullName:            d.FullName,
		Role:                types.SuspectRole(d.Role),
		Status:              types.SuspectStatus(d.Status),
		LinkedBy:            types.ActorID(d.LinkedBy),
		DetectiveGuiltScore: d.DetectiveGuiltScore,
		SergeantGuiltScore:  d.SergeantGuiltScore,
		CaptainDecision:     d.CaptainDecision,
		ChiefDecision:       d.ChiefDecision,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
