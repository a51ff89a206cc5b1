package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type caseRow struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Status        string    `db:"status"`
	Origin        string    `db:"origin"`
	Severity      int       `db:"crime_severity"`
	CreatedBy     string    `db:"created_by"`
	LeadDetective string    `db:"lead_detective"`
	ApprovedBy    string    `db:"approved_by"`
	Version       int64     `db:"version"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type historyRow struct {
	ID        string    `db:"id"`
	CaseID    string    `db:"case_id"`
	Seq       int       `db:"seq"`
	Action    string    `db:"action"`
	From      string    `db:"from_status"`
	To        string    `db:"to_status"`
	Actor     string    `db:"actor"`
	SuspectID string    `db:"suspect_id"`
	Notes     string    `db:"notes"`
	Timestamp time.Time `db:"timestamp"`
}

type linkRow struct {
	CaseID              string    `db:"case_id"`
	SuspectID           string    `db:"suspect_id"`
	FullName            string    `db:"full_name"`
	Role                string    `db:"role"`
	Status              string    `db:"status"`
	LinkedBy            string    `db:"linked_by"`
	DetectiveGuiltScore *int      `db:"detective_guilt_score"`
	SergeantGuiltScore  *int      `db:"sergeant_guilt_score"`
	CaptainDecision     string    `db:"captain_decision"`
	ChiefDecision       string    `db:"chief_decision"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r *caseRow) toModel(history []historyRow) *model.Case {
	c := &model.Case{
		ID:            types.CaseID(r.ID),
		Title:         r.Title,
		Status:        types.CaseStatus(r.Status),
		Origin:        types.CaseOrigin(r.Origin),
		Severity:      types.CrimeSeverity(r.Severity),
		CreatedBy:     types.ActorID(r.CreatedBy),
		LeadDetective: types.ActorID(r.LeadDetective),
		ApprovedBy:    types.ActorID(r.ApprovedBy),
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if len(history) > 0 {
		c.History = make([]model.HistoryEntry, len(history))
		for i, h := range history {
			c.History[i] = model.HistoryEntry{
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
	return c
}

func toCaseRow(c *model.Case) *caseRow {
	return &caseRow{
		ID:            string(c.ID),
		Title:         c.Title,
		Status:        string(c.Status),
		Origin:        string(c.Origin),
		Severity:      int(c.Severity),
		CreatedBy:     string(c.CreatedBy),
		LeadDetective: string(c.LeadDetective),
		ApprovedBy:    string(c.ApprovedBy),
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toLinkRow(l *model.SuspectLink) *linkRow {
	return &linkRow{
		CaseID:              string(l.CaseID),
		SuspectID:           string(l.SuspectID),
		FullName:            l.FullName,
		Role:                string(l.Role),
		Status:              string(l.Status),
		LinkedBy:            string(l.LinkedBy),
		DetectiveGuiltScore: l.DetectiveGuiltScore,
		SergeantGuiltScore:  l.SergeantGuiltScore,
		CaptainDecision:     l.CaptainDecision,
		ChiefDecision:       l.ChiefDecision,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (r *linkRow) toModel() *model.SuspectLink {
	return &model.SuspectLink{
		CaseID:              types.CaseID(r.CaseID),
		SuspectID:           types.SuspectID(r.SuspectID),
		FullName:            r.FullName,
		Role:                types.SuspectRole(r.Role),
		Status:              types.SuspectStatus(r.Status),
		LinkedBy:            types.ActorID(r.LinkedBy),
		DetectiveGuiltScore: r.DetectiveGuiltScore,
		SergeantGuiltScore:  r.SergeantGuiltScore,
		CaptainDecision:     r.CaptainDecision,
		ChiefDecision:       r.ChiefDecision,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// insertHistory appends entries[from:] with consecutive sequence numbers
func insertHistory(ctx context.Context, ext sqlx.ExtContext, caseID types.CaseID, entries []model.HistoryEntry, from int) error {
	for i := from; i < len(entries); i++ {
		h := entries[i]
		row := &historyRow{
			ID:        h.ID,
			CaseID:    string(caseID),
			Seq:       i,
			Action:    string(h.Action),
			From:      string(h.From),
			To:        string(h.To),
			Actor:     string(h.Actor),
			SuspectID: string(h.SuspectID),
			Notes:     h.Notes,
			Timestamp: h.Timestamp,
		}
		if _, err := sqlx.NamedExecContext(ctx, ext, `
			INSERT INTO case_history (id, case_id, seq, action, from_status, to_status, actor, suspect_id, notes, timestamp)
			VALUES (:id, :case_id, :seq, :action, :from_status, :to_status, :actor, :suspect_id, :notes, :timestamp)`, row); err != nil {
			return goerr.Wrap(err, "failed to insert history entry",
				goerr.V(model.CaseIDKey, caseID), goerr.V("seq", i))
		}
	}
	return nil
}

func loadCase(ctx context.Context, q sqlx.QueryerContext, id types.CaseID) (*model.Case, error) {
	var row caseRow
	if err := sqlx.GetContext(ctx, q, &row, `SELECT * FROM cases WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
	}

	var history []historyRow
	if err := sqlx.SelectContext(ctx, q, &history,
		`SELECT * FROM case_history WHERE case_id = ? ORDER BY seq`, id); err != nil {
		return nil, goerr.Wrap(err, "failed to get case history", goerr.V(model.CaseIDKey, id))
	}

	return row.toModel(history), nil
}

func loadLinks(ctx context.Context, q sqlx.QueryerContext, id types.CaseID) ([]*model.SuspectLink, error) {
	var rows []linkRow
	if err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT * FROM suspect_links WHERE case_id = ? ORDER BY created_at, rowid`, id); err != nil {
		return nil, goerr.Wrap(err, "failed to get suspect links", goerr.V(model.CaseIDKey, id))
	}

	links := make([]*model.SuspectLink, len(rows))
	for i := range rows {
		links[i] = rows[i].toModel()
	}
	return links, nil
}
