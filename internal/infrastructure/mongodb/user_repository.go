package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type userDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Name       string        `bson:"name"`
	Email      string        `bson:"email"`
	Password   string        `bson:"password,omitempty"`
	GoogleID   string        `bson:"googleId,omitempty"`
	IsVerified bool          `bson:"isVerified"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		Password:   d.Password,
		Name:       d.Name,
		GoogleID:   d.GoogleID,
		IsVerified: d.IsVerified,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{collection: s.DB.Collection(colUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	doc := userDoc{
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.Password,
		GoogleID:   u.GoogleID,
		IsVerified: u.IsVerified,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return mapWriteErr(err)
	}
	u.ID = res.InsertedID.(bson.ObjectID).Hex()
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	doc, err := findOne[userDoc](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	doc, err := findOne[userDoc](ctx, r.collection, bson.M{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *UserRepository) UpsertVerified(ctx context.Context, u *entity.User) (*entity.User, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       u.Name,
			"email":      u.Email,
			"password":   u.Password,
			"isVerified": true,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc userDoc
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&doc); err != nil {
		return nil, mapWriteErr(err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	oid, ok := parseID(u.ID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":       u.Name,
		"email":      u.Email,
		"isVerified": u.IsVerified,
		"updatedAt":  u.UpdatedAt,
	}
	if u.Password != "" {
		set["password"] = u.Password
	}
	if u.GoogleID != "" {
		set["googleId"] = u.GoogleID
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return mapWriteErr(err)
}
