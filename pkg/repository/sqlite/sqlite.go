// Package sqlite stores case files in a local SQLite database.
package sqlite

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

//go:embed schema.sql
var schemaScript string

// SQLite keeps one read/write connection for commits and a pool of
// read-only connections for queries.
type SQLite struct {
	rw *sqlx.DB
	ro *sqlx.DB

	caseRepo *caseRepository
	linkRepo *suspectLinkRepository
}

var _ interfaces.Repository = &SQLite{}

// New opens (or creates) the database file at path and applies the schema
func New(ctx context.Context, path string) (*SQLite, error) {
	readWriteConfig := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on", path)
	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_journal_mode=wal&_busy_timeout=5000", path)

	rw, err := sqlx.ConnectContext(ctx, "sqlite3", readWriteConfig)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	rw.SetMaxOpenConns(1)
	rw.SetMaxIdleConns(1)
	rw.SetConnMaxLifetime(time.Hour)
	rw.SetConnMaxIdleTime(time.Hour)

	if _, err := rw.ExecContext(ctx, schemaScript); err != nil {
		_ = rw.Close()
		return nil, goerr.Wrap(err, "failed to initialize sqlite schema", goerr.V("path", path))
	}

	ro, err := sqlx.ConnectContext(ctx, "sqlite3", readConfig)
	if err != nil {
		_ = rw.Close()
		return nil, goerr.Wrap(err, "failed to open read-only sqlite connection", goerr.V("path", path))
	}
	ro.SetMaxOpenConns(10)
	ro.SetMaxIdleConns(10)
	ro.SetConnMaxLifetime(time.Hour)
	ro.SetConnMaxIdleTime(time.Hour)

	s := &SQLite{rw: rw, ro: ro}
	s.caseRepo = &caseRepository{s: s}
	s.linkRepo = &suspectLinkRepository{s: s}
	return s, nil
}

func (s *SQLite) Case() interfaces.CaseRepository {
	return s.caseRepo
}

func (s *SQLite) SuspectLink() interfaces.SuspectLinkRepository {
	return s.linkRepo
}

func (s *SQLite) Close() error {
	return errors.Join(s.ro.Close(), s.rw.Close())
}

// Load reads the case, its history and its suspect links in one read
// transaction, so all three come from the same database snapshot.
func (s *SQLite) Load(ctx context.Context, id types.CaseID) (*model.CaseFile, error) {
	tx, err := s.ro.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin read transaction", goerr.V(model.CaseIDKey, id))
	}
	defer func() { _ = tx.Rollback() }()

	c, err := loadCase(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	links, err := loadLinks(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return &model.CaseFile{Case: c, Suspects: links}, nil
}

// Commit updates the case row guarded by version, appends new history
// entries and updates the given suspect links in one transaction.
func (s *SQLite) Commit(ctx context.Context, file *model.CaseFile) (*model.CaseFile, error) {
	if file == nil || file.Case == nil {
		return nil, goerr.New("case file is required")
	}
	c := file.Case
	id := c.ID

	tx, err := s.rw.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction", goerr.V(model.CaseIDKey, id))
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE cases SET
			title = ?, status = ?, origin = ?, crime_severity = ?, created_by = ?,
			lead_detective = ?, approved_by = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		c.Title, c.Status, c.Origin, int(c.Severity), c.CreatedBy,
		c.LeadDetective, c.ApprovedBy, c.UpdatedAt, id, c.Version)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(model.CaseIDKey, id))
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, goerr.Wrap(err, "failed to read affected rows", goerr.V(model.CaseIDKey, id))
	} else if n == 0 {
		var stored int64
		if err := tx.GetContext(ctx, &stored, `SELECT version FROM cases WHERE id = ?`, id); err != nil {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
		}
		return nil, goerr.Wrap(model.ErrConflict, "case version mismatch",
			goerr.V(model.CaseIDKey, id),
			goerr.V(model.VersionKey, c.Version),
			goerr.V("stored_version", stored))
	}

	var recorded int
	if err := tx.GetContext(ctx, &recorded, `SELECT COUNT(*) FROM case_history WHERE case_id = ?`, id); err != nil {
		return nil, goerr.Wrap(err, "failed to count history", goerr.V(model.CaseIDKey, id))
	}
	if recorded > len(c.History) {
		return nil, goerr.New("history cannot shrink", goerr.V(model.CaseIDKey, id),
			goerr.V("recorded", recorded), goerr.V("given", len(c.History)))
	}
	if err := insertHistory(ctx, tx, id, c.History, recorded); err != nil {
		return nil, err
	}

	for _, l := range file.Suspects {
		res, err := tx.NamedExecContext(ctx, `
			UPDATE suspect_links SET
				full_name = :full_name, role = :role, status = :status, linked_by = :linked_by,
				detective_guilt_score = :detective_guilt_score, sergeant_guilt_score = :sergeant_guilt_score,
				captain_decision = :captain_decision, chief_decision = :chief_decision,
				updated_at = :updated_at
			WHERE case_id = :case_id AND suspect_id = :suspect_id`, toLinkRow(l))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to update suspect link",
				goerr.V(model.CaseIDKey, id), goerr.V(model.SuspectIDKey, l.SuspectID))
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 || l.CaseID != id {
			return nil, goerr.Wrap(model.ErrNotFound, "suspect is not linked to case",
				goerr.V(model.CaseIDKey, id), goerr.V(model.SuspectIDKey, l.SuspectID))
		}
	}

	committed, err := loadCase(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	links, err := loadLinks(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit transaction", goerr.V(model.CaseIDKey, id))
	}

	return &model.CaseFile{Case: committed, Suspects: links}, nil
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
