package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formdesk/server/internal/models"
)

const UsersCollection = "users"

// ErrEmailTaken is returned when an insert collides with the unique email
// index.
var ErrEmailTaken = errors.New("user already exists")

type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index. Email uniqueness is
// enforced by the store, not by application-level checks alone.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	result, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *UserRepo) UpdatePersonalInformation(ctx context.Context, id primitive.ObjectID, pi models.PersonalInformation) error {
	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"personalInformation": pi}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SaveForms replaces the user's embedded forms array wholesale. Concurrent
// edits of the same user's list are last-write-wins.
func (r *UserRepo) SaveForms(ctx context.Context, id primitive.ObjectID, forms []models.Form) error {
	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"forms": forms}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
