package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/geocoder89/portfolio-api/internal/domain/document"
	"github.com/geocoder89/portfolio-api/internal/observability"
)

type DocumentStore interface {
	List(ctx context.Context) ([]document.Document, error)
	Insert(ctx context.Context, doc document.Document) (document.InsertResult, error)
}

// Documents caches the full listing of one collection under a per-collection generation.
// Every successful insert bumps the generation so the next List reads through to the store.
type Documents struct {
	next       DocumentStore
	store      Store
	collection string
	prom       *observability.Prom
}

func NewDocuments(next DocumentStore, store Store, collection string, prom *observability.Prom) *Documents {
	return &Documents{
		next:       next,
		store:      store,
		collection: collection,
		prom:       prom,
	}
}

func (d *Documents) genKey() string {
	return "docs:gen:v1:" + d.collection
}

func (d *Documents) key(gen int64) string {
	return "docs:list:v1:" + d.collection + ":" + strconv.FormatInt(gen, 10)
}

// List serves the listing cached for the current generation. A fetch that raced with
// an insert is returned but not cached.
func (d *Documents) List(ctx context.Context) ([]document.Document, error) {
	gen := d.store.Generation(ctx, d.genKey())

	if gen >= 0 {
		if b, ok := d.store.Get(ctx, d.key(gen)); ok {
			var docs []document.Document

			if err := json.Unmarshal(b, &docs); err == nil {
				d.prom.CacheResult(d.collection, true)
				return docs, nil
			}

			// corrupt entry, fall through and overwrite it
			d.store.Delete(ctx, d.key(gen))
		}
	}

	d.prom.CacheResult(d.collection, false)

	docs, err := d.next.List(ctx)

	if err != nil {
		return nil, err
	}

	if gen < 0 || d.store.Generation(ctx, d.genKey()) != gen {
		return docs, nil
	}

	b, err := json.Marshal(docs)

	if err != nil {
		slog.Default().WarnContext(ctx, "cache_encode_failed", "collection", d.collection, "err", err)
		return docs, nil
	}

	d.store.Set(ctx, d.key(gen), b)

	return docs, nil
}

// Insert moves the collection to a new generation, so listings fetched before the insert
// are never read again.
func (d *Documents) Insert(ctx context.Context, doc document.Document) (document.InsertResult, error) {
	res, err := d.next.Insert(ctx, doc)

	if err != nil {
		return res, err
	}

	gen := d.store.Generation(ctx, d.genKey())
	d.store.Bump(ctx, d.genKey())

	if gen >= 0 {
		d.store.Delete(ctx, d.key(gen))
	}

	return res, nil
}
