package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type suspectLinkRepository struct {
	m *Memory
}

func (r *suspectLinkRepository) LinksForCase(ctx context.Context, caseID types.CaseID) ([]*model.SuspectLink, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	if _, exists := r.m.cases[caseID]; !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, caseID))
	}
	return copyLinks(r.m.links[caseID]), nil
}

func (r *suspectLinkRepository) Get(ctx context.Context, caseID types.CaseID, suspectID types.SuspectID) (*model.SuspectLink, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	links := r.m.links[caseID]
	idx := indexOf(links, suspectID)
	if idx < 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "suspect link not found",
			goerr.V(model.CaseIDKey, caseID), goerr.V(model.SuspectIDKey, suspectID))
	}
	return links[idx].Copy(), nil
}

func (r *suspectLinkRepository) Link(ctx context.Context, link *model.SuspectLink, caseVersion int64) (*model.SuspectLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	c, exists := r.m.cases[link.CaseID]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, link.CaseID))
	}
	if c.Version != caseVersion {
		return nil, goerr.Wrap(model.ErrConflict, "case version mismatch",
			goerr.V(model.CaseIDKey, link.CaseID),
			goerr.V(model.VersionKey, caseVersion),
			goerr.V("stored_version", c.Version))
	}
	if indexOf(r.m.links[link.CaseID], link.SuspectID) >= 0 {
		return nil, goerr.Wrap(model.ErrConflict, "suspect already linked",
			goerr.V(model.CaseIDKey, link.CaseID), goerr.V(model.SuspectIDKey, link.SuspectID))
	}

	created := link.Copy()
	r.m.links[link.CaseID] = append(r.m.links[link.CaseID], created)
	return created.Copy(), nil
}
