package mongodb

import (
	"context"

	"academy/internal/domain/entity"
	"academy/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findAll runs a query and maps every decoded document.
func findAll[D any, E any](ctx context.Context, coll *mongo.Collection, filter any, opts *options.FindOptions, convert func(*D) *E) ([]*E, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", coll.Name())
	}

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", coll.Name())
	}

	out := make([]*E, 0, len(docs))
	for i := range docs {
		out = append(out, convert(&docs[i]))
	}

	return out, nil
}

type courseRepository struct {
	coll *mongo.Collection
}

func (r *courseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	return findAll(ctx, r.coll, bson.M{}, options.Find(), (*courseDocument).toEntity)
}

func (r *courseRepository) FindByNames(ctx context.Context, names []string) ([]*entity.Course, error) {
	if len(names) == 0 {
		return []*entity.Course{}, nil
	}

	return findAll(ctx, r.coll, bson.M{"name": bson.M{"$in": names}}, options.Find(), (*courseDocument).toEntity)
}

type reviewRepository struct {
	coll *mongo.Collection
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	createdAt := review.CreatedAt
	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		Text:      review.Text,
		Author:    review.Author,
		AuthorID:  review.AuthorID,
		CreatedAt: &createdAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to insert review")
	}
	review.ID = doc.ID.Hex()

	return nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*entity.Review, error) {
	return findAll(ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}), (*reviewDocument).toEntity)
}

func (r *reviewRepository) ListByAuthor(ctx context.Context, authorID, authorName string) ([]*entity.Review, error) {
	clauses := bson.A{bson.M{"authorId": authorID}}
	if authorName != "" {
		clauses = append(clauses, bson.M{"authorId": bson.M{"$exists": false}, "author": authorName})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	return findAll(ctx, r.coll, bson.M{"$or": clauses}, opts, (*reviewDocument).toEntity)
}

type blogPostRepository struct {
	coll *mongo.Collection
}

func (r *blogPostRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})

	return findAll(ctx, r.coll, bson.M{}, opts, (*blogPostDocument).toEntity)
}

func (r *blogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrContentNotFound)
	}

	var doc blogPostDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrContentNotFound)
		}

		return nil, errors.Wrap(err, "failed to find blog post")
	}

	return doc.toEntity(), nil
}

type articleRepository struct {
	coll *mongo.Collection
}

func (r *articleRepository) List(ctx context.Context) ([]*entity.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return findAll(ctx, r.coll, bson.M{}, opts, (*articleDocument).toEntity)
}

func (r *articleRepository) FindByID(ctx context.Context, id string) (*entity.Article, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrContentNotFound)
	}

	var doc articleDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrContentNotFound)
		}

		return nil, errors.Wrap(err, "failed to find article")
	}

	return doc.toEntity(), nil
}

type leadRepository struct {
	db *mongo.Database
}

// Create writes each lead to the collection its form has always used.
func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	doc := newLeadDocument(lead)
	doc.ID = primitive.NewObjectID()

	if _, err := r.db.Collection(leadCollection(lead.Source)).InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to insert lead")
	}
	lead.ID = doc.ID.Hex()

	return nil
}
