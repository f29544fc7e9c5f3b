package mongodb

import (
	"context"

	"academy/internal/domain/entity"
	"academy/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type studentRepository struct {
	coll *mongo.Collection
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	result, err := r.coll.InsertOne(ctx, newUserDocument(student))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}

		return errors.Wrap(err, "failed to insert student")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid.Hex()
	}

	return nil
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrAccountNotFound)
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *studentRepository) findOne(ctx context.Context, filter bson.M) (*entity.Student, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrAccountNotFound)
		}

		return nil, errors.Wrap(err, "failed to find student")
	}

	return doc.toEntity(), nil
}

type teacherRepository struct {
	coll *mongo.Collection
}

func (r *teacherRepository) Create(ctx context.Context, teacher *entity.Teacher) error {
	doc := newTeacherDocument(teacher)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}

		return errors.Wrap(err, "failed to insert teacher")
	}

	created := doc.toEntity()
	teacher.ID = created.ID
	teacher.CreatedAt = created.CreatedAt
	teacher.IndividualLessons = created.IndividualLessons

	return nil
}

func (r *teacherRepository) FindByID(ctx context.Context, id string) (*entity.Teacher, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrAccountNotFound)
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *teacherRepository) FindByEmail(ctx context.Context, email string) (*entity.Teacher, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *teacherRepository) findOne(ctx context.Context, filter bson.M) (*entity.Teacher, error) {
	var doc teacherDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrAccountNotFound)
		}

		return nil, errors.Wrap(err, "failed to find teacher")
	}

	return doc.toEntity(), nil
}
