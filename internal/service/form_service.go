package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/formdesk/server/internal/models"
)

var (
	ErrFormNotFound     = errors.New("form does not exist")
	ErrTemplateNotFound = errors.New("this type of form does not exist")
)

// FormService operates on the embedded forms of an already-authenticated
// user. The gate resolves the user; every mutation persists the whole
// forms list immediately and returns the post-mutation state.
type FormService struct {
	users     UserStore
	templates TemplateStore
}

func NewFormService(users UserStore, templates TemplateStore) *FormService {
	return &FormService{users: users, templates: templates}
}

// CreateFromTemplate clones the template for formType and prepends the
// fresh instance to the user's forms. The clone always gets an identifier
// distinct from the template's.
func (s *FormService) CreateFromTemplate(ctx context.Context, user *models.User, formType string) (*models.Form, error) {
	tpl, err := s.templates.FindByType(ctx, formType)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	form := tpl.Clone()
	user.Forms = append([]models.Form{form}, user.Forms...)
	if err := s.users.SaveForms(ctx, user.ID, user.Forms); err != nil {
		return nil, err
	}
	return &user.Forms[0], nil
}

func (s *FormService) Get(user *models.User, id primitive.ObjectID) (*models.Form, error) {
	form := user.FormByID(id)
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// Replace overwrites the form's contents. Completeness is recomputed from
// the incoming field list; the client's isComplete claim is not trusted.
// Identity and creation time are preserved from the stored form.
func (s *FormService) Replace(ctx context.Context, user *models.User, id primitive.ObjectID, incoming models.Form) (*models.Form, error) {
	form := user.FormByID(id)
	if form == nil {
		return nil, ErrFormNotFound
	}
	incoming.ID = form.ID
	incoming.CreatedAt = form.CreatedAt
	if incoming.Type == "" {
		incoming.Type = form.Type
	}
	if incoming.Tag == "" {
		incoming.Tag = form.Tag
	}
	incoming.IsComplete = incoming.ComputeComplete()
	incoming.LastEdit = time.Now().UTC()
	*form = incoming
	if err := s.users.SaveForms(ctx, user.ID, user.Forms); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) UpdateTag(ctx context.Context, user *models.User, id primitive.ObjectID, tag string) (*models.Form, error) {
	form := user.FormByID(id)
	if form == nil {
		return nil, ErrFormNotFound
	}
	form.Tag = tag
	form.LastEdit = time.Now().UTC()
	if err := s.users.SaveForms(ctx, user.ID, user.Forms); err != nil {
		return nil, err
	}
	return form, nil
}

// Delete removes the form and returns the removed document.
func (s *FormService) Delete(ctx context.Context, user *models.User, id primitive.ObjectID) (*models.Form, error) {
	for i := range user.Forms {
		if user.Forms[i].ID != id {
			continue
		}
		removed := user.Forms[i]
		user.Forms = append(user.Forms[:i], user.Forms[i+1:]...)
		if err := s.users.SaveForms(ctx, user.ID, user.Forms); err != nil {
			return nil, err
		}
		return &removed, nil
	}
	return nil, ErrFormNotFound
}

// ProfileForm clones the userProfile template and pre-fills it from the
// user's personal information. The clone is returned without being
// persisted; it only becomes part of the user via UpdateProfile.
func (s *FormService) ProfileForm(ctx context.Context, user *models.User) (*models.Form, error) {
	tpl, err := s.templates.FindByType(ctx, models.TypeUserProfile)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	form := tpl.Clone()
	pi := user.PersonalInformation
	for i := range form.Fields {
		switch form.Fields[i].Name {
		case "firstName":
			form.Fields[i].Value = pi.FirstName
		case "lastName":
			form.Fields[i].Value = pi.LastName
		case "institute":
			form.Fields[i].Value = pi.Institute
		case "position":
			form.Fields[i].Value = pi.Position
		case "phone":
			form.Fields[i].Value = pi.Phone
		default:
			form.Fields[i].Value = ""
		}
	}
	return &form, nil
}

// UpdateProfile writes recognised profile form fields back into the user's
// personal information and persists it.
func (s *FormService) UpdateProfile(ctx context.Context, user *models.User, form models.Form) error {
	pi := &user.PersonalInformation
	for _, f := range form.Fields {
		switch f.Name {
		case "firstName":
			pi.FirstName = f.Value
		case "lastName":
			pi.LastName = f.Value
		case "institute":
			pi.Institute = f.Value
		case "position":
			pi.Position = f.Value
		case "phone":
			pi.Phone = f.Value
		}
	}
	return s.users.UpdatePersonalInformation(ctx, user.ID, *pi)
}
