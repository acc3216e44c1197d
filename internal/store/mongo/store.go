// Package mongo implementa el adapter documental sobre MongoDB.
// IDs: hex de ObjectID. A diferencia del adapter relacional, acá un id
// malformado se rechaza con ErrInvalidInput ANTES de tocar la base.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ranjanashish/leh-registry/internal/observability/logger"
)

const (
	usersCollection   = "users"
	recordsCollection = "leh_data"
)

type Store struct {
	client  *mongo.Client
	users   *mongo.Collection
	records *mongo.Collection
}

func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo: database is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:  client,
		users:   db.Collection(usersCollection),
		records: db.Collection(recordsCollection),
	}

	log := logger.Named("store.mongo")
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Arranque no bloqueante, igual que el adapter pg.
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("connected", logger.String("database", database))
	}

	// Índice único sobre email: punto real de enforcement de unicidad.
	// El pre-check del service sólo mejora el mensaje de error.
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warn("ensure email index failed", logger.Err(err))
	}

	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
