package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps all case files behind a single lock so that Commit can
// replace a case and its suspect links in one step.
type Memory struct {
	mu    sync.RWMutex
	cases map[types.CaseID]*model.Case
	links map[types.CaseID][]*model.SuspectLink

	caseRepo *caseRepository
	linkRepo *suspectLinkRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{
		cases: make(map[types.CaseID]*model.Case),
		links: make(map[types.CaseID][]*model.SuspectLink),
	}
	m.caseRepo = &caseRepository{m: m}
	m.linkRepo = &suspectLinkRepository{m: m}
	return m
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) SuspectLink() interfaces.SuspectLinkRepository {
	return m.linkRepo
}

func (m *Memory) Load(ctx context.Context, id types.CaseID) (*model.CaseFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.cases[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	return &model.CaseFile{
		Case:     c.Copy(),
		Suspects: copyLinks(m.links[id]),
	}, nil
}

func (m *Memory) Commit(ctx context.Context, file *model.CaseFile) (*model.CaseFile, error) {
	if file == nil || file.Case == nil {
		return nil, goerr.New("case file is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := file.Case.ID
	stored, ok := m.cases[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	if stored.Version != file.Case.Version {
		return nil, goerr.Wrap(model.ErrConflict, "case version mismatch",
			goerr.V(model.CaseIDKey, id),
			goerr.V(model.VersionKey, file.Case.Version),
			goerr.V("stored_version", stored.Version))
	}

	links := m.links[id]
	for _, s := range file.Suspects {
		if s.CaseID != id || indexOf(links, s.SuspectID) < 0 {
			return nil, goerr.Wrap(model.ErrNotFound, "suspect is not linked to case",
				goerr.V(model.CaseIDKey, id), goerr.V(model.SuspectIDKey, s.SuspectID))
		}
	}

	// All checks passed; nothing below can fail.
	committed := file.Case.Copy()
	committed.Version = stored.Version + 1
	m.cases[id] = committed

	for _, s := range file.Suspects {
		links[indexOf(links, s.SuspectID)] = s.Copy()
	}

	return &model.CaseFile{
		Case:     committed.Copy(),
		Suspects: copyLinks(links),
	}, nil
}

func (m *Memory) Close() error {
	return nil
}

func indexOf(links []*model.SuspectLink, id types.SuspectID) int {
	for i, l := range links {
		if l.SuspectID == id {
			return i
		}
	}
	return -1
}

func copyLinks(links []*model.SuspectLink) []*model.SuspectLink {
	copied := make([]*model.SuspectLink, len(links))
	for i, l := range links {
		copied[i] = l.Copy()
	}
	return copied
}
