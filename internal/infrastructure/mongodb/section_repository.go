package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sectionKey = "default"

type sectionDoc struct {
	Key       string    `bson:"key"`
	Sections  []string  `bson:"sections"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type SectionRepository struct {
	collection *mongo.Collection
}

func NewSectionRepository(s *Store) *SectionRepository {
	return &SectionRepository{collection: s.DB.Collection(colSections)}
}

func (r *SectionRepository) upsert(ctx context.Context, update bson.M) ([]string, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc sectionDoc
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"key": sectionKey}, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Sections == nil {
		return []string{}, nil
	}
	return doc.Sections, nil
}

func (r *SectionRepository) Get(ctx context.Context) ([]string, error) {
	return r.upsert(ctx, bson.M{"$setOnInsert": bson.M{
		"sections":  []string{},
		"updatedAt": time.Now().UTC(),
	}})
}

func (r *SectionRepository) Save(ctx context.Context, sections []string) ([]string, error) {
	if sections == nil {
		sections = []string{}
	}
	return r.upsert(ctx, bson.M{"$set": bson.M{
		"sections":  sections,
		"updatedAt": time.Now().UTC(),
	}})
}
