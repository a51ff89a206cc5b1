package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

func runCommitTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	setup := func(t *testing.T, repo interfaces.Repository) *model.CaseFile {
		ctx := context.Background()
		c, err := repo.Case().Create(ctx, newCase(types.CaseStatusInterrogation))
		gt.NoError(t, err).Required()
		l1, err := repo.SuspectLink().Link(ctx, newLink(c.ID, "Vincent Moriarty"), c.Version)
		gt.NoError(t, err).Required()
		l2, err := repo.SuspectLink().Link(ctx, newLink(c.ID, "Irene Adler"), c.Version)
		gt.NoError(t, err).Required()
		return &model.CaseFile{Case: c, Suspects: []*model.SuspectLink{l1, l2}}
	}

	t.Run("Commit writes case and suspects and bumps version", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		file := setup(t, repo)

		next := file.Copy()
		at := now()
		next.Case.Status = types.CaseStatusPendingCaptain
		next.Case.UpdatedAt = at
		next.Case.History = append(next.Case.History,
			model.NewHistoryEntry(types.ActionSubmitToCaptain, types.CaseStatusInterrogation, types.CaseStatusPendingCaptain, "detective", "Submitted", at))
		next.Suspects[1].DetectiveGuiltScore = model.IntPtr(8)
		next.Suspects[1].UpdatedAt = at

		committed, err := repo.Commit(ctx, next)
		gt.NoError(t, err).Required()
		gt.Value(t, committed.Case.Version).Equal(int64(2))
		gt.Value(t, committed.Case.Status).Equal(types.CaseStatusPendingCaptain)
		gt.Array(t, committed.Case.History).Length(2)
		gt.Array(t, committed.Suspects).Length(2)
		gt.Value(t, *committed.Suspects[1].DetectiveGuiltScore).Equal(8)

		got, err := repo.Case().Get(ctx, file.Case.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Version).Equal(int64(2))
		gt.Value(t, got.Status).Equal(types.CaseStatusPendingCaptain)
		gt.Array(t, got.History).Length(2)
		gt.Value(t, got.History[1].Action).Equal(types.ActionSubmitToCaptain)
		gt.Value(t, got.History[1].From).Equal(types.CaseStatusInterrogation)

		link, err := repo.SuspectLink().Get(ctx, file.Case.ID, file.Suspects[1].SuspectID)
		gt.NoError(t, err).Required()
		gt.Value(t, *link.DetectiveGuiltScore).Equal(8)
		gt.Value(t, link.SergeantGuiltScore).Nil()
	})

	t.Run("Commit with stale version is a conflict and writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		file := setup(t, repo)

		first := file.Copy()
		first.Case.Status = types.CaseStatusPendingCaptain
		_, err := repo.Commit(ctx, first)
		gt.NoError(t, err).Required()

		stale := file.Copy()
		stale.Case.Title = "stale"
		stale.Suspects[0].SergeantGuiltScore = model.IntPtr(3)
		_, err = repo.Commit(ctx, stale)
		gt.Error(t, err).Is(model.ErrConflict)

		got, err := repo.Case().Get(ctx, file.Case.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal(file.Case.Title)
		gt.Value(t, got.Version).Equal(int64(2))

		link, err := repo.SuspectLink().Get(ctx, file.Case.ID, file.Suspects[0].SuspectID)
		gt.NoError(t, err).Required()
		gt.Value(t, link.SergeantGuiltScore).Nil()
	})

	t.Run("Commit for unknown case is not found", func(t *testing.T) {
		repo := newRepo(t)
		c := newCase(types.CaseStatusCreated)
		c.Version = 1
		_, err := repo.Commit(context.Background(), &model.CaseFile{Case: c})
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("Commit with unlinked suspect writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		file := setup(t, repo)

		next := file.Copy()
		next.Case.Status = types.CaseStatusPendingCaptain
		next.Suspects = append(next.Suspects, newLink(file.Case.ID, "Stranger"))
		_, err := repo.Commit(ctx, next)
		gt.Error(t, err).Is(model.ErrNotFound)

		got, err := repo.Case().Get(ctx, file.Case.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.CaseStatusInterrogation)
		gt.Value(t, got.Version).Equal(int64(1))
	})
}

func TestCommit(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			runCommitTest(t, b.newRepo)
		})
	}
}
