package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type caseRepository struct {
	s *SQLite
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	created := c.Copy()
	created.Version = 1

	tx, err := r.s.rw.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction", goerr.V(model.CaseIDKey, c.ID))
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO cases (id, title, status, origin, crime_severity, created_by, lead_detective, approved_by, version, created_at, updated_at)
		VALUES (:id, :title, :status, :origin, :crime_severity, :created_by, :lead_detective, :approved_by, :version, :created_at, :updated_at)`,
		toCaseRow(created)); err != nil {
		if isConstraintError(err) {
			return nil, goerr.Wrap(model.ErrConflict, "case already exists", goerr.V(model.CaseIDKey, c.ID))
		}
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, c.ID))
	}

	if err := insertHistory(ctx, tx, created.ID, created.History, 0); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit transaction", goerr.V(model.CaseIDKey, c.ID))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	return loadCase(ctx, r.s.ro, id)
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	query := `SELECT * FROM cases ORDER BY created_at, id`
	var args []any
	if s := cfg.Status(); s != nil {
		query = `SELECT * FROM cases WHERE status = ? ORDER BY created_at, id`
		args = append(args, s.String())
	}

	var rows []caseRow
	if err := r.s.ro.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	if len(rows) == 0 {
		return []*model.Case{}, nil
	}

	// Fetch history for all listed cases in one query
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	hq, hargs, err := sqlx.In(`SELECT * FROM case_history WHERE case_id IN (?) ORDER BY case_id, seq`, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build history query")
	}
	var history []historyRow
	if err := r.s.ro.SelectContext(ctx, &history, r.s.ro.Rebind(hq), hargs...); err != nil {
		return nil, goerr.Wrap(err, "failed to list case history")
	}

	byCase := make(map[string][]historyRow, len(rows))
	for _, h := range history {
		byCase[h.CaseID] = append(byCase[h.CaseID], h)
	}

	cases := make([]*model.Case, len(rows))
	for i := range rows {
		cases[i] = rows[i].toModel(byCase[rows[i].ID])
	}
	return cases, nil
}
