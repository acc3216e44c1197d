package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
)

type recordDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	UserID             *string            `bson:"user_id"`
	Location           string             `bson:"location"`
	Description        string             `bson:"description"`
	PermissionType     string             `bson:"permission_type"`
	Agency             string             `bson:"agency"`
	Applicable         string             `bson:"applicable"`
	Registered         string             `bson:"registered"`
	RegistrationNumber string             `bson:"registration_number"`
	Remarks            string             `bson:"remarks"`
	Quantity           *int64             `bson:"quantity"`
	Validity           *string            `bson:"validity"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func recordFieldsToBSON(f repository.RecordFields) bson.D {
	return bson.D{
		{Key: "user_id", Value: f.UserID},
		{Key: "location", Value: f.Location},
		{Key: "description", Value: f.Description},
		{Key: "permission_type", Value: f.PermissionType},
		{Key: "agency", Value: f.Agency},
		{Key: "applicable", Value: f.Applicable},
		{Key: "registered", Value: f.Registered},
		{Key: "registration_number", Value: f.RegistrationNumber},
		{Key: "remarks", Value: f.Remarks},
		{Key: "quantity", Value: f.Quantity},
		{Key: "validity", Value: f.Validity},
	}
}

func (d recordDoc) toDomain() *repository.Record {
	return &repository.Record{
		ID: d.ID.Hex(),
		RecordFields: repository.RecordFields{
			UserID:             d.UserID,
			Location:           d.Location,
			Description:        d.Description,
			PermissionType:     d.PermissionType,
			Agency:             d.Agency,
			Applicable:         d.Applicable,
			Registered:         d.Registered,
			RegistrationNumber: d.RegistrationNumber,
			Remarks:            d.Remarks,
			Quantity:           d.Quantity,
			Validity:           d.Validity,
		},
		CreatedAt: d.CreatedAt,
	}
}

// sort por created_at descendente, como el listado original.
var recordSort = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (s *Store) InsertRecord(ctx context.Context, f repository.RecordFields) (string, error) {
	doc := append(recordFieldsToBSON(f), bson.E{Key: "created_at", Value: time.Now().UTC()})
	res, err := s.records.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *Store) FindRecordByID(ctx context.Context, id string) (*repository.Record, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc recordDoc
	if err := s.records.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) ListRecords(ctx context.Context) ([]repository.Record, error) {
	return s.listRecords(ctx, bson.D{})
}

func (s *Store) ListRecordsByLocation(ctx context.Context, location string) ([]repository.Record, error) {
	return s.listRecords(ctx, bson.D{{Key: "location", Value: location}})
}

func (s *Store) listRecords(ctx context.Context, filter bson.D) ([]repository.Record, error) {
	cur, err := s.records.Find(ctx, filter, recordSort)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []repository.Record{}
	for cur.Next(ctx) {
		var doc recordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *doc.toDomain())
	}
	return out, cur.Err()
}

func (s *Store) UpdateRecordByID(ctx context.Context, id string, f repository.RecordFields) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	// $set de todos los campos mutables; created_at no se toca.
	res, err := s.records.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: recordFieldsToBSON(f)}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Store) DeleteRecordByID(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	res, err := s.records.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
