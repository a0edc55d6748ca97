package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/geocoder89/portfolio-api/internal/domain/document"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DocumentsRepo is an append-only in-memory collection.
type DocumentsRepo struct {
	mu    sync.RWMutex
	items []document.Document
}

func NewDocumentsRepo() *DocumentsRepo {
	return &DocumentsRepo{}
}

func (r *DocumentsRepo) List(ctx context.Context) ([]document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]document.Document, 0, len(r.items))

	for _, d := range r.items {
		out = append(out, maps.Clone(d))
	}

	return out, nil
}

func (r *DocumentsRepo) Insert(ctx context.Context, doc document.Document) (document.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return document.InsertResult{}, err
	}

	stored := maps.Clone(doc)

	if stored == nil {
		stored = document.Document{}
	}

	id, ok := stored["_id"]

	if !ok {
		oid := bson.NewObjectID()
		stored["_id"] = oid.Hex()
		id = oid.Hex()
	}

	r.mu.Lock()
	r.items = append(r.items, stored)
	r.mu.Unlock()

	return document.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *DocumentsRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
