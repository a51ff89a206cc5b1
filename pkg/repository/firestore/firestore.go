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

const suspectsCollection = "suspects"

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
	caseRepo         *caseRepository
	linkRepo         *suspectLinkRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

// New creates a Firestore repository. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}
	f.caseRepo = &caseRepository{f: f}
	f.linkRepo = &suspectLinkRepository{f: f}

	return f, nil
}

func (f *Firestore) casesCollection() *firestore.CollectionRef {
	if f.collectionPrefix != "" {
		return f.client.Collection(f.collectionPrefix + "_cases")
	}
	return f.client.Collection("cases")
}

func (f *Firestore) Case() interfaces.CaseRepository {
	return f.caseRepo
}

func (f *Firestore) SuspectLink() interfaces.SuspectLinkRepository {
	return f.linkRepo
}

// Load reads the case and its suspects in one read-only transaction
func (f *Firestore) Load(ctx context.Context, id types.CaseID) (*model.CaseFile, error) {
	caseRef := f.casesCollection().Doc(id.String())
	var loaded *model.CaseFile

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(caseRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}

		var d caseDoc
		if err := snap.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
		}

		links, err := readLinks(tx.Documents(caseRef.Collection(suspectsCollection).OrderBy("created_at", firestore.Asc)))
		if err != nil {
			return err
		}

		loaded = &model.CaseFile{Case: d.toModel(), Suspects: links}
		return nil
	}, firestore.ReadOnly)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case file", goerr.V(model.CaseIDKey, id))
	}

	return loaded, nil
}

// Commit checks the stored version and writes the case with its suspect links
// in one transaction.
func (f *Firestore) Commit(ctx context.Context, file *model.CaseFile) (*model.CaseFile, error) {
	if file == nil || file.Case == nil {
		return nil, goerr.New("case file is required")
	}

	id := file.Case.ID
	caseRef := f.casesCollection().Doc(id.String())
	var committed *model.CaseFile

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(caseRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}

		var stored caseDoc
		if err := snap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
		}
		if stored.Version != file.Case.Version {
			return goerr.Wrap(model.ErrConflict, "case version mismatch",
				goerr.V(model.CaseIDKey, id),
				goerr.V(model.VersionKey, file.Case.Version),
				goerr.V("stored_version", stored.Version))
		}

		links, err := readLinks(tx.Documents(caseRef.Collection(suspectsCollection).OrderBy("created_at", firestore.Asc)))
		if err != nil {
			return err
		}

		index := make(map[string]int, len(links))
		for i, l := range links {
			index[l.SuspectID.String()] = i
		}
		for _, s := range file.Suspects {
			if _, ok := index[s.SuspectID.String()]; !ok || s.CaseID != id {
				return goerr.Wrap(model.ErrNotFound, "suspect is not linked to case",
					goerr.V(model.CaseIDKey, id), goerr.V(model.SuspectIDKey, s.SuspectID))
			}
		}

		c := file.Case.Copy()
		c.Version = stored.Version + 1
		if err := tx.Set(caseRef, toCaseDoc(c)); err != nil {
			return goerr.Wrap(err, "failed to write case", goerr.V(model.CaseIDKey, id))
		}
		for _, s := range file.Suspects {
			ref := caseRef.Collection(suspectsCollection).Doc(s.SuspectID.String())
			if err := tx.Set(ref, toSuspectDoc(s)); err != nil {
				return goerr.Wrap(err, "failed to write suspect link",
					goerr.V(model.CaseIDKey, id), goerr.V(model.SuspectIDKey, s.SuspectID))
			}
			links[index[s.SuspectID.String()]] = s.Copy()
		}

		committed = &model.CaseFile{Case: c, Suspects: links}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to commit case file", goerr.V(model.CaseIDKey, id))
	}

	return committed, nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func readLinks(iter *firestore.DocumentIterator) ([]*model.SuspectLink, error) {
	defer iter.Stop()

	links := []*model.SuspectLink{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate suspect links")
		}

		var d suspectDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode suspect link", goerr.V("doc_id", docSnap.Ref.ID))
		}
		links = append(links, d.toModel())
	}
	return links, nil
}
