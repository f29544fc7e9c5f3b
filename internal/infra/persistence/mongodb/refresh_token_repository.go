package mongodb

import (
	"context"

	"academy/internal/domain/entity"
	"academy/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type refreshTokenRepository struct {
	coll *mongo.Collection
}

// ReplaceForAccount upserts on (userId, userType); the unique index on that pair keeps
// concurrent logins from leaving two records behind.
func (r *refreshTokenRepository) ReplaceForAccount(ctx context.Context, token *entity.RefreshToken) error {
	oid, ok := objectID(token.AccountID)
	if !ok {
		return errors.Errorf("invalid account id %q", token.AccountID)
	}

	filter := bson.M{"userId": oid, "userType": userTypeOf(token.AccountKind)}
	doc := refreshTokenDocument{
		TokenHash: token.TokenHash,
		UserID:    oid,
		UserType:  userTypeOf(token.AccountKind),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}

	_, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on an empty slot; the loser retries as a plain replace.
		_, err = r.coll.ReplaceOne(ctx, filter, doc)
	}
	if err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

func (r *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var doc refreshTokenDocument
	if err := r.coll.FindOne(ctx, bson.M{"tokenHash": tokenHash}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.WithStack(repository.ErrRefreshTokenNotFound)
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	return doc.toEntity(), nil
}

func (r *refreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"tokenHash": tokenHash})

	return errors.Wrap(err, "failed to delete refresh token")
}

func (r *refreshTokenRepository) DeleteForAccount(ctx context.Context, accountID string, kind entity.AccountKind) error {
	oid, ok := objectID(accountID)
	if !ok {
		return nil
	}

	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": oid, "userType": userTypeOf(kind)})

	return errors.Wrap(err, "failed to delete refresh tokens")
}
