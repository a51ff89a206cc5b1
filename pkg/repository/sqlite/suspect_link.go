package sqlite

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type suspectLinkRepository struct {
	s *SQLite
}

func (r *suspectLinkRepository) LinksForCase(ctx context.Context, caseID types.CaseID) ([]*model.SuspectLink, error) {
	var exists int
	if err := r.s.ro.GetContext(ctx, &exists, `SELECT COUNT(*) FROM cases WHERE id = ?`, caseID); err != nil {
		return nil, goerr.Wrap(err, "failed to check case", goerr.V(model.CaseIDKey, caseID))
	}
	if exists == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, caseID))
	}
	return loadLinks(ctx, r.s.ro, caseID)
}

func (r *suspectLinkRepository) Get(ctx context.Context, caseID types.CaseID, suspectID types.SuspectID) (*model.SuspectLink, error) {
	var row linkRow
	if err := r.s.ro.GetContext(ctx, &row,
		`SELECT * FROM suspect_links WHERE case_id = ? AND suspect_id = ?`, caseID, suspectID); err != nil {
		if isNoRows(err) {
			return nil, goerr.Wrap(model.ErrNotFound, "suspect link not found",
				goerr.V(model.CaseIDKey, caseID), goerr.V(model.SuspectIDKey, suspectID))
		}
		return nil, goerr.Wrap(err, "failed to get suspect link",
			goerr.V(model.CaseIDKey, caseID), goerr.V(model.SuspectIDKey, suspectID))
	}
	return row.toModel(), nil
}

func (r *suspectLinkRepository) Link(ctx context.Context, link *model.SuspectLink, caseVersion int64) (*model.SuspectLink, error) {
	tx, err := r.s.rw.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction", goerr.V(model.CaseIDKey, link.CaseID))
	}
	defer func() { _ = tx.Rollback() }()

	var stored int64
	if err := tx.GetContext(ctx, &stored, `SELECT version FROM cases WHERE id = ?`, link.CaseID); err != nil {
		if isNoRows(err) {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, link.CaseID))
		}
		return nil, goerr.Wrap(err, "failed to check case", goerr.V(model.CaseIDKey, link.CaseID))
	}
	if stored != caseVersion {
		return nil, goerr.Wrap(model.ErrConflict, "case version mismatch",
			goerr.V(model.CaseIDKey, link.CaseID),
			goerr.V(model.VersionKey, caseVersion),
			goerr.V("stored_version", stored))
	}

	created := link.Copy()
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO suspect_links (case_id, suspect_id, full_name, role, status, linked_by,
			detective_guilt_score, sergeant_guilt_score, captain_decision, chief_decision, created_at, updated_at)
		VALUES (:case_id, :suspect_id, :full_name, :role, :status, :linked_by,
			:detective_guilt_score, :sergeant_guilt_score, :captain_decision, :chief_decision, :created_at, :updated_at)`,
		toLinkRow(created)); err != nil {
		if isConstraintError(err) {
			return nil, goerr.Wrap(model.ErrConflict, "suspect already linked",
				goerr.V(model.CaseIDKey, link.CaseID), goerr.V(model.SuspectIDKey, link.SuspectID))
		}
		return nil, goerr.Wrap(err, "failed to link suspect",
			goerr.V(model.CaseIDKey, link.CaseID), goerr.V(model.SuspectIDKey, link.SuspectID))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit transaction", goerr.V(model.CaseIDKey, link.CaseID))
	}
	return created, nil
}
