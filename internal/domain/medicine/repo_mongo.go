package medicine

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listLimit caps an unfiltered list query.
const listLimit = 1000

// MongoRepo is the MongoDB-backed Repository over the medicines collection.
// Documents are keyed by the application-generated id field.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

func (r *MongoRepo) Insert(ctx context.Context, m *Medicine) error {
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (*Medicine, error) {
	var m Medicine
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find medicine %s: %w", id, err)
	}
	return &m, nil
}

func (r *MongoRepo) List(ctx context.Context, f Filter) ([]*Medicine, error) {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.Tag != "" {
		query["tags"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Tag), Options: "i"}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetLimit(listLimit))
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*Medicine
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode medicines: %w", err)
	}
	return out, nil
}

func (r *MongoRepo) Update(ctx context.Context, m *Medicine) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": m.ID}, bson.M{"$set": m})
	if err != nil {
		return fmt.Errorf("update medicine %s: %w", m.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete medicine %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Stats(ctx context.Context) (*Stats, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count medicines: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode category counts: %w", err)
	}

	byCategory := make(map[string]int64, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = row.Count
	}

	return &Stats{TotalMedicines: total, ByCategory: byCategory}, nil
}
