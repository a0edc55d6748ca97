package mongodb

import (
	"context"

	"github.com/geocoder89/portfolio-api/internal/domain/document"
	"github.com/geocoder89/portfolio-api/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DocumentsRepo stores untyped documents in one collection.
type DocumentsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
	op   string
}

func NewDocumentsRepo(db *mongo.Database, collection string, prom *observability.Prom) *DocumentsRepo {
	return &DocumentsRepo{
		coll: db.Collection(collection),
		prom: prom,
		op:   collection,
	}
}

func (r *DocumentsRepo) List(ctx context.Context) ([]document.Document, error) {
	docs := []document.Document{}

	err := r.prom.ObserveDB(r.op+".list", func() error {
		cur, err := r.coll.Find(ctx, bson.D{})

		if err != nil {
			return err
		}

		return cur.All(ctx, &docs)
	})

	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *DocumentsRepo) Insert(ctx context.Context, doc document.Document) (document.InsertResult, error) {
	var res *mongo.InsertOneResult

	err := r.prom.ObserveDB(r.op+".insert", func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, doc)
		return err
	})

	if err != nil {
		return document.InsertResult{}, err
	}

	return document.InsertResult{Acknowledged: res.Acknowledged, InsertedID: res.InsertedID}, nil
}
