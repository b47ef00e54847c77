package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/formdesk/server/internal/models"
)

// UserStore is the persistence surface the services need for users.
// *repository.UserRepo implements it against MongoDB.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePersonalInformation(ctx context.Context, id primitive.ObjectID, pi models.PersonalInformation) error
	SaveForms(ctx context.Context, id primitive.ObjectID, forms []models.Form) error
}

// TemplateStore looks up form stamping masters by type.
type TemplateStore interface {
	FindByType(ctx context.Context, formType string) (*models.Form, error)
}
