package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/formdesk/server/internal/models"
	"github.com/formdesk/server/internal/repository"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	byEmail map[string]*models.User
	savedPI map[primitive.ObjectID]models.PersonalInformation
	saves   map[primitive.ObjectID][]models.Form
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]*models.User{},
		savedPI: map[primitive.ObjectID]models.PersonalInformation{},
		saves:   map[primitive.ObjectID][]models.Form{},
	}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.byEmail[email], nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = primitive.NewObjectID()
	s.byEmail[user.Email] = user
	return nil
}

func (s *fakeUserStore) UpdatePersonalInformation(_ context.Context, id primitive.ObjectID, pi models.PersonalInformation) error {
	s.savedPI[id] = pi
	return nil
}

func (s *fakeUserStore) SaveForms(_ context.Context, id primitive.ObjectID, forms []models.Form) error {
	s.saves[id] = append([]models.Form(nil), forms...)
	return nil
}

// fakeTemplateStore serves templates from a map keyed by form type.
type fakeTemplateStore struct {
	byType map[string]*models.Form
}

func (s *fakeTemplateStore) FindByType(_ context.Context, formType string) (*models.Form, error) {
	return s.byType[formType], nil
}

func vacationTemplate() *models.Form {
	return &models.Form{
		ID:   primitive.NewObjectID(),
		Type: models.TypeVacation,
		Tag:  models.TagDraft,
		Fields: []models.Field{
			{Name: "begin", Type: models.FieldDatePicker},
			{Name: "end", Type: models.FieldDatePicker},
		},
		PdfFiles: []models.PdfFile{
			{URL: "vacation.pdf", Condition: models.Condition{Always: true}},
		},
	}
}
