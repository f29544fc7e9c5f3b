package mongodb

import (
	"context"

	"academy/internal/domain/entity"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityRepository struct {
	coll *mongo.Collection
}

func (r *activityRepository) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	teacherID, ok := objectID(entry.TeacherID)
	if !ok {
		return errors.Errorf("invalid teacher id %q", entry.TeacherID)
	}

	doc := trackerDocument{
		ID:        primitive.NewObjectID(),
		TeacherID: teacherID,
		Date:      entry.Date,
		Activity:  entry.Activity,
		Details:   entry.Details,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to insert tracker entry")
	}
	entry.ID = doc.ID.Hex()

	return nil
}

func (r *activityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]*entity.ActivityEntry, error) {
	oid, ok := objectID(teacherID)
	if !ok {
		return []*entity.ActivityEntry{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"teacherId": oid}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tracker entries")
	}

	var docs []trackerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode tracker entries")
	}

	entries := make([]*entity.ActivityEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, docs[i].toEntity())
	}

	return entries, nil
}
