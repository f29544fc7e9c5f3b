// Package mongodb is the primary storage backend. It reads and writes the
// collections of the existing academy database.
package mongodb

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"academy/config"
	"academy/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout         = 10 * time.Second
	defaultServerSelectionTimeout = 5 * time.Second
)

// Store holds the client and the database handle shared by every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger

	mu            sync.Mutex
	indexesReady  bool
	ensure        func(context.Context) error
	connectionBad func()
}

// Connect creates the client. The driver connects lazily, so an unreachable server
// is not an error here; Ping reports it.
func Connect(ctx context.Context, cfg *config.MongoConfig, logger *slog.Logger) (*Store, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo.uri must be provided")
	}

	store := &Store{logger: logger}
	store.ensure = store.ensureIndexes

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	selectionTimeout := cfg.ServerSelectionTimeout
	if selectionTimeout <= 0 {
		selectionTimeout = defaultServerSelectionTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectionTimeout).
		SetServerMonitor(&event.ServerMonitor{
			ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
				logger.Debug("Mongo heartbeat failed", slog.String("connectionId", e.ConnectionID), slog.Any("error", e.Failure))
				store.reportConnectionLoss()
			},
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mongo client")
	}

	store.client = client
	store.db = client.Database(cfg.Database)

	return store, nil
}

// Observe registers a callback fired whenever the driver notices a dead connection.
func (s *Store) Observe(onLoss func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectionBad = onLoss
}

func (s *Store) reportConnectionLoss() {
	s.mu.Lock()
	onLoss := s.connectionBad
	s.mu.Unlock()

	if onLoss != nil {
		onLoss()
	}
}

// Ping reports whether the primary answers. Index creation piggybacks on a successful
// round trip but never affects the result.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "failed to ping mongo")
	}

	s.prepare(ctx)

	return nil
}

// prepare builds the indexes once. A failure is logged and retried on the next ping.
func (s *Store) prepare(ctx context.Context) {
	s.mu.Lock()
	ready := s.indexesReady
	s.mu.Unlock()
	if ready || s.ensure == nil {
		return
	}

	if err := s.ensure(ctx); err != nil {
		s.logger.Warn("Mongo indexes not ready, will retry", slog.Any("error", err))

		return
	}

	s.mu.Lock()
	s.indexesReady = true
	s.mu.Unlock()
}


// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "failed to disconnect mongo")
}

// Set returns the repositories backed by this store.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Students:      &studentRepository{coll: s.db.Collection(collectionUsers)},
		Teachers:      &teacherRepository{coll: s.db.Collection(collectionTeachers)},
		RefreshTokens: &refreshTokenRepository{coll: s.db.Collection(collectionRefreshTokens)},
		Activities:    &activityRepository{coll: s.db.Collection(collectionTrackers)},
		Courses:       &courseRepository{coll: s.db.Collection(collectionCourses)},
		Reviews:       &reviewRepository{coll: s.db.Collection(collectionReviews)},
		BlogPosts:     &blogPostRepository{coll: s.db.Collection(collectionBlogPosts)},
		Articles:      &articleRepository{coll: s.db.Collection(collectionArticles)},
		Leads:         &leadRepository{db: s.db},
		Health:        s,
	}
}

// hashedTokenFilter limits refresh token indexes to hashed records. Sessions written
// before hashing carry a plaintext token and no tokenHash; they stay out of the index
// until a login replaces them.
var hashedTokenFilter = bson.M{"tokenHash": bson.M{"$type": "string"}}

func indexModels() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	uniqueHashed := options.Index().SetUnique(true).SetPartialFilterExpression(hashedTokenFilter)

	return map[string][]mongo.IndexModel{
		collectionUsers:    {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionTeachers: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionRefreshTokens: {
			{Keys: bson.D{{Key: "tokenHash", Value: 1}}, Options: uniqueHashed},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "userType", Value: 1}}, Options: uniqueHashed},
		},
		collectionTrackers: {{Keys: bson.D{{Key: "teacherId", Value: 1}, {Key: "date", Value: -1}}}},
		collectionReviews:  {{Keys: bson.D{{Key: "authorId", Value: 1}}}},
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for name, models := range indexModels() {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", name)
		}
	}
	s.logger.Info("Mongo indexes ensured", slog.String("database", s.db.Name()))

	return nil
}

// objectID parses a hex id. Unparseable ids are treated as misses by the callers.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return oid, true
}
