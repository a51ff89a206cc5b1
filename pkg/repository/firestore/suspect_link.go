package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/dossier/pkg/domain/model"
	"github.com/secmon-lab/dossier/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type suspectLinkRepository struct {
	f *Firestore
}

func (r *suspectLinkRepository) suspects(caseID types.CaseID) *firestore.CollectionRef {
	return r.f.casesCollection().Doc(caseID.String()).Collection(suspectsCollection)
}

func (r *suspectLinkRepository) ensureCase(ctx context.Context, caseID types.CaseID) error {
	if _, err := r.f.caseRepo.Get(ctx, caseID); err != nil {
		return err
	}
	return nil
}

func (r *suspectLinkRepository) LinksForCase(ctx context.Context, caseID types.CaseID) ([]*model.SuspectLink, error) {
	if err := r.ensureCase(ctx, caseID); err != nil {
		return nil, err
	}
	return readLinks(r.suspects(caseID).OrderBy("created_at", firestore.Asc).Documents(ctx))
}

func (r *suspectLinkRepository) Get(ctx context.Context, caseID types.CaseID, suspectID types.SuspectID) (*model.SuspectLink, error) {
	docSnap, err := r.suspects(caseID).Doc(suspectID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "suspect link not found",
				goerr.V(model.CaseIDKey, caseID), goerr.V(model.SuspectIDKey, suspectID))
		}
		return nil, goerr.Wrap(err, "failed to get suspect link",
			goerr.V(model.CaseIDKey, caseID), goerr.V(model.SuspectIDKey, suspectID))
	}

	var d suspectDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode suspect link", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return d.toModel(), nil
}

func (r *suspectLinkRepository) Link(ctx context.Context, link *model.SuspectLink, caseVersion int64) (*model.SuspectLink, error) {
	caseRef := r.f.casesCollection().Doc(link.CaseID.String())
	created := link.Copy()

	err := r.f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(caseRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, link.CaseID))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, link.CaseID))
		}

		var stored caseDoc
		if err := snap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, link.CaseID))
		}
		if stored.Version != caseVersion {
			return goerr.Wrap(model.ErrConflict, "case version mismatch",
				goerr.V(model.CaseIDKey, link.CaseID),
				goerr.V(model.VersionKey, caseVersion),
				goerr.V("stored_version", stored.Version))
		}

		return tx.Create(caseRef.Collection(suspectsCollection).Doc(link.SuspectID.String()), toSuspectDoc(created))
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrConflict, "suspect already linked",
				goerr.V(model.CaseIDKey, link.CaseID), goerr.V(model.SuspectIDKey, link.SuspectID))
		}
		return nil, goerr.Wrap(err, "failed to link suspect",
			goerr.V(model.CaseIDKey, link.CaseID), goerr.V(model.SuspectIDKey, link.SuspectID))
	}
	return created, nil
}
