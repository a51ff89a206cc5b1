package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/repository/firestore"
	"github.com/secmon-lab/dossier/pkg/repository/memory"
	"github.com/secmon-lab/dossier/pkg/repository/sqlite"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "dossier.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	repo, err := firestore.New(context.Background(), projectID, databaseID,
		firestore.WithCollectionPrefix("test"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

var backends = []struct {
	name    string
	newRepo func(t *testing.T) interfaces.Repository
}{
	{"Memory", newMemoryRepository},
	{"SQLite", newSQLiteRepository},
	{"Firestore", newFirestoreRepository},
}

// Truncated to microseconds so every backend round-trips it exactly
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newCase(status types.CaseStatus) *model.Case {
	at := now()
	return &model.Case{
		ID:        types.NewCaseID(),
		Title:     "Stolen painting at the museum",
		Status:    status,
		Origin:    types.CaseOriginComplaint,
		Severity:  types.CrimeSeverityLevel2,
		CreatedBy: "detective",
		History: []model.HistoryEntry{
			model.NewHistoryEntry(model.HistoryActionOpen, "", status, "detective", "Case opened", at),
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func newLink(caseID types.CaseID, name string) *model.SuspectLink {
	at := now()
	return &model.SuspectLink{
		CaseID:    caseID,
		SuspectID: types.NewSuspectID(),
		FullName:  name,
		Role:      types.SuspectRolePrimary,
		Status:    types.SuspectStatusUnderInvestigation,
		LinkedBy:  "detective",
		CreatedAt: at,
		UpdatedAt: at,
	}
}
