package http

import (
	"time"

	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/workflow"
)

type historyResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Actor      string    `json:"actor"`
	SuspectID  string    `json:"suspect_id,omitempty"`
	Notes      string    `json:"notes"`
	Timestamp  time.Time `json:"timestamp"`
}

type suspectResponse struct {
	SuspectID           string    `json:"suspect_id"`
	FullName            string    `json:"full_name"`
	Role                string    `json:"role"`
	Status              string    `json:"status"`
	LinkedBy            string    `json:"linked_by"`
	DetectiveGuiltScore *int      `json:"detective_guilt_score"`
	SergeantGuiltScore  *int      `json:"sergeant_guilt_score"`
	CaptainDecision     string    `json:"captain_decision,omitempty"`
	ChiefDecision       string    `json:"chief_decision,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type caseResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Status         string            `json:"status"`
	Origin         string            `json:"origin"`
	CrimeSeverity  int               `json:"crime_severity"`
	SeverityLabel  string            `json:"crime_severity_label"`
	CreatedBy      string            `json:"created_by"`
	LeadDetective  string            `json:"lead_detective,omitempty"`
	ApprovedBy     string            `json:"approved_by,omitempty"`
	Version        int64             `json:"version"`
	AllowedActions []string          `json:"allowed_actions"`
	History        []historyResponse `json:"history"`
	Suspects       []suspectResponse `json:"suspects,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type actionResponse struct {
	Case    *caseResponse    `json:"case"`
	Suspect *suspectResponse `json:"suspect,omitempty"`
	Entry   historyResponse  `json:"entry"`
}

func toHistoryResponse(h model.HistoryEntry) historyResponse {
	return historyResponse{
		ID:         h.ID,
		Action:     h.Action.String(),
		FromStatus: h.From.String(),
		ToStatus:   h.To.String(),
		Actor:      h.Actor.String(),
		SuspectID:  h.SuspectID.String(),
		Notes:      h.Notes,
		Timestamp:  h.Timestamp,
	}
}

func toSuspectResponse(s *model.SuspectLink) suspectResponse {
	return suspectResponse{
		SuspectID:           s.SuspectID.String(),
		FullName:            s.FullName,
		Role:                string(s.Role),
		Status:              string(s.Status),
		LinkedBy:            s.LinkedBy.String(),
		DetectiveGuiltScore: s.DetectiveGuiltScore,
		SergeantGuiltScore:  s.SergeantGuiltScore,
		CaptainDecision:     s.CaptainDecision,
		ChiefDecision:       s.ChiefDecision,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toCaseResponse(c *model.Case, suspects []*model.SuspectLink) *caseResponse {
	resp := &caseResponse{
		ID:             c.ID.String(),
		Title:          c.Title,
		Status:         c.Status.String(),
		Origin:         c.Origin.String(),
		CrimeSeverity:  int(c.Severity),
		SeverityLabel:  c.Severity.String(),
		CreatedBy:      c.CreatedBy.String(),
		LeadDetective:  c.LeadDetective.String(),
		ApprovedBy:     c.ApprovedBy.String(),
		Version:        c.Version,
		AllowedActions: []string{},
		History:        make([]historyResponse, len(c.History)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, a := range workflow.AllowedActions(c.Status) {
		resp.AllowedActions = append(resp.AllowedActions, a.String())
	}
	for i, h := range c.History {
		resp.History[i] = toHistoryResponse(h)
	}
	if suspects != nil {
		resp.Suspects = make([]suspectResponse, len(suspects))
		for i, s := range suspects {
			resp.Suspects[i] = toSuspectResponse(s)
		}
	}
	return resp
}
