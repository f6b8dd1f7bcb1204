// Package mongostore é o backend MongoDB da API.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

const collectionName = "companies"

type CompanyStore struct {
	coll *mongo.Collection
}

var _ store.Store = (*CompanyStore)(nil)

func NewCompanyStore(db *mongo.Database) *CompanyStore {
	return &CompanyStore{coll: db.Collection(collectionName)}
}

func (r *CompanyStore) EnsureIndexes(ctx context.Context) error {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("idx_name")},
		{Keys: bson.D{{Key: "industry", Value: 1}}, Options: options.Index().SetName("idx_industry")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, idx)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropAll(ctx); dropErr != nil {
			return fmt.Errorf("drop indexes: %w", dropErr)
		}
		_, err = r.coll.Indexes().CreateMany(ctx, idx)
	}
	return err
}

// List pré-filtra no servidor; o query.Apply dá a palavra final para manter a
// mesma semântica do modo snapshot (ausentes no fim, comparação sem caixa).
func (r *CompanyStore) List(ctx context.Context, q query.Query) ([]models.Company, error) {
	cur, err := r.coll.Find(ctx, filterFor(q))
	if err != nil {
		return nil, store.Unavailable("mongo.list", err)
	}
	defer cur.Close(ctx)

	list := []models.Company{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, store.Unavailable("mongo.list", err)
	}
	return query.Apply(list, q), nil
}

func filterFor(q query.Query) bson.M {
	f := bson.M{}
	for _, cr := range q.Eq {
		switch cr.Field {
		case query.FieldEmployeeCount, query.FieldFoundedYear:
			n, err := strconv.Atoi(cr.Value)
			if err != nil {
				// nunca casa; deixa o Apply resolver
				continue
			}
			f[string(cr.Field)] = n
		case query.FieldName, query.FieldIndustry, query.FieldLocation:
			f[string(cr.Field)] = bson.M{"$regex": regexp.QuoteMeta(cr.Value), "$options": "i"}
		}
	}
	return f
}

func (r *CompanyStore) Get(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, store.Unavailable("mongo.get", mapErr(err))
	}
	return &c, nil
}

func (r *CompanyStore) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	nc := store.PrepareCreate(*c)
	if _, err := r.coll.InsertOne(ctx, nc); err != nil {
		return nil, store.Unavailable("mongo.create", mapErr(err))
	}
	return &nc, nil
}

func (r *CompanyStore) Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Industry != nil {
		set["industry"] = *p.Industry
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.EmployeeCount != nil {
		set["employee_count"] = *p.EmployeeCount
	}
	if p.FoundedYear != nil {
		set["founded_year"] = *p.FoundedYear
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Website != nil {
		set["website"] = *p.Website
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Company
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return nil, store.Unavailable("mongo.update", mapErr(err))
	}
	return &out, nil
}

func (r *CompanyStore) Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error) {
	cur, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := store.PrepareReplace(cur, *c)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, next)
	if err != nil {
		return nil, store.Unavailable("mongo.replace", mapErr(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.Unavailable("mongo.replace", store.ErrNotFound)
	}
	return &next, nil
}

func (r *CompanyStore) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.Unavailable("mongo.delete", err)
	}
	if res.DeletedCount == 0 {
		return store.Unavailable("mongo.delete", store.ErrNotFound)
	}
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateID
	}
	return err
}
