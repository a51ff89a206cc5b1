package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

type caseRepository struct {
	m *Memory
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.cases[c.ID]; exists {
		return nil, goerr.Wrap(model.ErrConflict, "case already exists", goerr.V(model.CaseIDKey, c.ID))
	}

	created := c.Copy()
	created.Version = 1
	r.m.cases[created.ID] = created
	return created.Copy(), nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	c, exists := r.m.cases[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	return c.Copy(), nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.m.cases))
	for _, c := range r.m.cases {
		if !cfg.Match(c.Status) {
			continue
		}
		cases = append(cases, c.Copy())
	}

	sort.Slice(cases, func(i, j int) bool {
		if !cases[i].CreatedAt.Equal(cases[j].CreatedAt) {
			return cases[i].CreatedAt.Before(cases[j].CreatedAt)
		}
		return cases[i].ID < cases[j].ID
	})

	return cases, nil
}
