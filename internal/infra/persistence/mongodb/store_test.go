package mongodb

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModels_RefreshTokensSkipUnhashedRecords(t *testing.T) {
	models := indexModels()[collectionRefreshTokens]
	require.Len(t, models, 2)

	for _, model := range models {
		require.NotNil(t, model.Options)
		require.NotNil(t, model.Options.Unique)
		assert.True(t, *model.Options.Unique)
		assert.Equal(t, bson.M{"tokenHash": bson.M{"$type": "string"}}, model.Options.PartialFilterExpression)
	}
}

func TestIndexModels_AccountEmailsUnique(t *testing.T) {
	models := indexModels()
	for _, name := range []string{collectionUsers, collectionTeachers} {
		require.Len(t, models[name], 1, name)
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, models[name][0].Keys)
		assert.Nil(t, models[name][0].Options.PartialFilterExpression)
	}
}

func TestStorePrepare_IndexFailureRetriedOnNextPing(t *testing.T) {
	calls := 0
	fail := true
	store := &Store{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	store.ensure = func(context.Context) error {
		calls++
		if fail {
			return errors.New("E11000 duplicate key error collection: academy.refreshtokens")
		}

		return nil
	}

	store.prepare(context.Background())
	assert.False(t, store.indexesReady)
	assert.Equal(t, 1, calls)

	fail = false
	store.prepare(context.Background())
	assert.True(t, store.indexesReady)

	store.prepare(context.Background())
	assert.Equal(t, 2, calls)
}
