package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	"github.com/nexcruit/ats-backend/internal/domain/repository"
)

type jobDoc struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"`
	Kind        string            `bson:"kind"`
	RefID       string            `bson:"refId"`
	RunAt       time.Time         `bson:"runAt"`
	Payload     map[string]string `bson:"payload,omitempty"`
	Status      string            `bson:"status"`
	Attempts    int               `bson:"attempts"`
	LastError   string            `bson:"lastError,omitempty"`
	LockedUntil *time.Time        `bson:"lockedUntil,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt"`
}

func (d *jobDoc) toEntity() *entity.ScheduledJob {
	return &entity.ScheduledJob{
		ID:          d.ID.Hex(),
		Kind:        d.Kind,
		RefID:       d.RefID,
		RunAt:       d.RunAt,
		Payload:     d.Payload,
		Status:      entity.JobStatus(d.Status),
		Attempts:    d.Attempts,
		LastError:   d.LastError,
		LockedUntil: d.LockedUntil,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type JobRepository struct {
	collection *mongo.Collection
}

func NewJobRepository(s *Store) *JobRepository {
	return &JobRepository{collection: s.DB.Collection(colJobs)}
}

func (r *JobRepository) Create(ctx context.Context, j *entity.ScheduledJob) error {
	now := time.Now().UTC()
	if j.Status == "" {
		j.Status = entity.JobPending
	}
	res, err := r.collection.InsertOne(ctx, jobDoc{
		Kind:      j.Kind,
		RefID:     j.RefID,
		RunAt:     j.RunAt.UTC(),
		Payload:   j.Payload,
		Status:    string(j.Status),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	j.ID = res.InsertedID.(bson.ObjectID).Hex()
	j.CreatedAt, j.UpdatedAt = now, now
	return nil
}

// ClaimDue leases one due job. A running job whose lease has lapsed is
// considered abandoned and may be claimed again.
func (r *JobRepository) ClaimDue(ctx context.Context, now time.Time, lease time.Duration) (*entity.ScheduledJob, error) {
	now = now.UTC()
	filter := bson.M{"$or": bson.A{
		bson.M{"status": string(entity.JobPending), "runAt": bson.M{"$lte": now}},
		bson.M{"status": string(entity.JobRunning), "lockedUntil": bson.M{"$lt": now}},
	}}
	update := bson.M{
		"$set": bson.M{
			"status":      string(entity.JobRunning),
			"lockedUntil": now.Add(lease),
			"updatedAt":   now,
		},
		"$inc": bson.M{"attempts": 1},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "runAt", Value: 1}}).
		SetReturnDocument(options.After)

	var doc jobDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// leaseFilter matches j only while it is still running under the lease it was claimed with.
func leaseFilter(j *entity.ScheduledJob) (bson.M, error) {
	oid, ok := parseID(j.ID)
	if !ok || j.LockedUntil == nil {
		return nil, repository.ErrLeaseLost
	}
	return bson.M{
		"_id":         oid,
		"status":      string(entity.JobRunning),
		"lockedUntil": j.LockedUntil.UTC(),
	}, nil
}

func (r *JobRepository) finish(ctx context.Context, j *entity.ScheduledJob, set bson.M) error {
	filter, err := leaseFilter(j)
	if err != nil {
		return err
	}
	set["updatedAt"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set":   set,
		"$unset": bson.M{"lockedUntil": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrLeaseLost
	}
	return nil
}

func (r *JobRepository) Complete(ctx context.Context, j *entity.ScheduledJob, note string) error {
	set := bson.M{"status": string(entity.JobDone)}
	if note != "" {
		set["lastError"] = note
	}
	return r.finish(ctx, j, set)
}

func (r *JobRepository) Retry(ctx context.Context, j *entity.ScheduledJob, lastError string, runAt *time.Time) error {
	set := bson.M{"lastError": lastError, "payload": j.Payload}
	if runAt == nil {
		set["status"] = string(entity.JobFailed)
	} else {
		set["status"] = string(entity.JobPending)
		set["runAt"] = runAt.UTC()
	}
	return r.finish(ctx, j, set)
}

func (r *JobRepository) CancelByRef(ctx context.Context, kind, refID string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"kind": kind, "refId": refID, "status": string(entity.JobPending)},
		bson.M{"$set": bson.M{"status": string(entity.JobCancelled), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *JobRepository) RescheduleByRef(ctx context.Context, kind, refID string, runAt time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"kind": kind, "refId": refID, "status": string(entity.JobPending)},
		bson.M{"$set": bson.M{"runAt": runAt.UTC(), "attempts": 0, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
