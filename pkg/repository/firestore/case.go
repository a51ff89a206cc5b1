package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/interfaces"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseRepository struct {
	f *Firestore
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	created := c.Copy()
	created.Version = 1

	_, err := r.f.casesCollection().Doc(created.ID.String()).Create(ctx, toCaseDoc(created))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrConflict, "case already exists", goerr.V(model.CaseIDKey, c.ID))
		}
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, c.ID))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	docSnap, err := r.f.casesCollection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
	}

	var d caseDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
	}

	return d.toModel(), nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	q := r.f.casesCollection().Query
	if s := cfg.Status(); s != nil {
		q = q.Where("status", "==", s.String())
	}
	iter := q.OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	cases := []*model.Case{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var d caseDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}

		cases = append(cases, d.toModel())
	}

	return cases, nil
}
