package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	Phone      string             `bson:"phone"`
	Department string             `bson:"department"`
	Role       string             `bson:"role"`
}

func (d userDoc) toDomain() *repository.User {
	return &repository.User{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Password:   d.Password,
		Phone:      d.Phone,
		Department: d.Department,
		Role:       d.Role,
	}
}

// parseObjectID valida la forma del id antes de consultar.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

func userFilterToBSON(f core.UserFilter) bson.D {
	filter := bson.D{}
	if f.Email != nil {
		filter = append(filter, bson.E{Key: "email", Value: *f.Email})
	}
	if f.Password != nil {
		filter = append(filter, bson.E{Key: "password", Value: *f.Password})
	}
	if f.Role != nil {
		filter = append(filter, bson.E{Key: "role", Value: *f.Role})
	}
	return filter
}

func (s *Store) FindUser(ctx context.Context, f core.UserFilter) (*repository.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, userFilterToBSON(f)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*repository.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]repository.User, error) {
	cur, err := s.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []repository.User{}
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, *doc.toDomain())
	}
	return users, cur.Err()
}

func (s *Store) InsertUser(ctx context.Context, u repository.User) (string, error) {
	res, err := s.users.InsertOne(ctx, userDoc{
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.Password,
		Phone:      u.Phone,
		Department: u.Department,
		Role:       u.Role,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrConflict
		}
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *Store) UpdateUserByID(ctx context.Context, id string, in repository.UpdateUserInput) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: in.Name},
			{Key: "email", Value: in.Email},
			{Key: "phone", Value: in.Phone},
			{Key: "department", Value: in.Department},
		}}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, repository.ErrConflict
		}
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Store) UpdateUserPasswordByEmail(ctx context.Context, email, password string) (int64, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: password}}}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Store) DeleteUserByID(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}
	res, err := s.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
