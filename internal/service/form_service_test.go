package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/formdesk/server/internal/models"
)

func newFormService(templates ...*models.Form) (*FormService, *fakeUserStore, *models.User) {
	store := newFakeUserStore()
	tplStore := &fakeTemplateStore{byType: map[string]*models.Form{}}
	for _, tpl := range templates {
		tplStore.byType[tpl.Type] = tpl
	}
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "ada@example.org",
		PersonalInformation: models.PersonalInformation{
			FirstName: "Ada", LastName: "Lovelace", Institute: "Analytical Engines",
			Position: models.PositionEmployee,
		},
	}
	store.byEmail[user.Email] = user
	return NewFormService(store, tplStore), store, user
}

func TestCreateFromTemplate(t *testing.T) {
	tpl := vacationTemplate()
	svc, store, user := newFormService(tpl)

	form, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)

	assert.NotEqual(t, tpl.ID, form.ID, "clone must get its own identifier")
	assert.Equal(t, models.TagDraft, form.Tag)
	assert.False(t, form.IsComplete)
	require.Len(t, user.Forms, 1)
	assert.Len(t, store.saves[user.ID], 1)

	// New forms are prepended.
	second, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)
	assert.Equal(t, second.ID, user.Forms[0].ID)
	assert.NotEqual(t, form.ID, second.ID)
}

func TestCreateFromTemplateUnknownType(t *testing.T) {
	svc, _, user := newFormService()

	_, err := svc.CreateFromTemplate(context.Background(), user, "karaoke")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestReplaceRecomputesCompleteness(t *testing.T) {
	svc, store, user := newFormService(vacationTemplate())
	form, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)

	// Client claims completeness but one field is invalid.
	incoming := *form
	incoming.IsComplete = true
	incoming.Fields = []models.Field{
		{Name: "begin", Type: models.FieldDatePicker, Value: "2026-07-01", IsValid: true},
		{Name: "end", Type: models.FieldDatePicker, IsValid: false},
	}
	updated, err := svc.Replace(context.Background(), user, form.ID, incoming)
	require.NoError(t, err)
	assert.False(t, updated.IsComplete, "server must not trust the client's completeness claim")

	// All fields valid, client claims incomplete.
	incoming.IsComplete = false
	incoming.Fields[1].Value = "2026-07-14"
	incoming.Fields[1].IsValid = true
	updated, err = svc.Replace(context.Background(), user, form.ID, incoming)
	require.NoError(t, err)
	assert.True(t, updated.IsComplete)
	assert.False(t, updated.LastEdit.IsZero())
	assert.Equal(t, form.ID, updated.ID)
	assert.Len(t, store.saves[user.ID], 1)
}

func TestReplaceMissingForm(t *testing.T) {
	svc, _, user := newFormService()

	_, err := svc.Replace(context.Background(), user, primitive.NewObjectID(), models.Form{})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestReplaceStampsLastEdit(t *testing.T) {
	svc, _, user := newFormService(vacationTemplate())
	form, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)
	before := form.LastEdit

	updated, err := svc.Replace(context.Background(), user, form.ID, *form)
	require.NoError(t, err)
	assert.False(t, updated.LastEdit.Before(before))
}

func TestUpdateTag(t *testing.T) {
	svc, _, user := newFormService(vacationTemplate())
	form, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)

	updated, err := svc.UpdateTag(context.Background(), user, form.ID, models.TagSent)
	require.NoError(t, err)
	assert.Equal(t, models.TagSent, updated.Tag)
	assert.Equal(t, models.TagSent, user.Forms[0].Tag)
}

func TestDelete(t *testing.T) {
	svc, store, user := newFormService(vacationTemplate())
	form, err := svc.CreateFromTemplate(context.Background(), user, models.TypeVacation)
	require.NoError(t, err)

	removed, err := svc.Delete(context.Background(), user, form.ID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, removed.ID)
	assert.Empty(t, user.Forms)
	assert.Empty(t, store.saves[user.ID])

	_, err = svc.Delete(context.Background(), user, form.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestProfileForm(t *testing.T) {
	tpl := &models.Form{
		ID:   primitive.NewObjectID(),
		Type: models.TypeUserProfile,
		Tag:  models.TagDraft,
		Fields: []models.Field{
			{Name: "firstName", Type: models.FieldText},
			{Name: "lastName", Type: models.FieldText},
			{Name: "institute", Type: models.FieldText},
			{Name: "position", Type: models.FieldButtonSelect},
			{Name: "phone", Type: models.FieldText},
			{Name: "nickname", Type: models.FieldText, Value: "stale"},
		},
	}
	svc, store, user := newFormService(tpl)

	form, err := svc.ProfileForm(context.Background(), user)
	require.NoError(t, err)

	assert.NotEqual(t, tpl.ID, form.ID)
	values := map[string]string{}
	for _, f := range form.Fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "Ada", values["firstName"])
	assert.Equal(t, "Lovelace", values["lastName"])
	assert.Equal(t, "Analytical Engines", values["institute"])
	assert.Equal(t, models.PositionEmployee, values["position"])
	assert.Equal(t, "", values["nickname"], "unrecognised fields are blanked")

	// The pre-filled clone is not persisted.
	assert.Empty(t, store.saves[user.ID])
	assert.Empty(t, user.Forms)
}

func TestProfileFormMissingTemplate(t *testing.T) {
	svc, _, user := newFormService()

	_, err := svc.ProfileForm(context.Background(), user)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, store, user := newFormService()

	form := models.Form{
		Type: models.TypeUserProfile,
		Fields: []models.Field{
			{Name: "firstName", Value: "Grace"},
			{Name: "lastName", Value: "Hopper"},
			{Name: "institute", Value: "Navy"},
			{Name: "position", Value: models.PositionGraduateStudent},
			{Name: "phone", Value: "555-0100"},
			{Name: "nickname", Value: "ignored"},
		},
	}
	require.NoError(t, svc.UpdateProfile(context.Background(), user, form))

	pi := store.savedPI[user.ID]
	assert.Equal(t, "Grace", pi.FirstName)
	assert.Equal(t, "Hopper", pi.LastName)
	assert.Equal(t, "Navy", pi.Institute)
	assert.Equal(t, models.PositionGraduateStudent, pi.Position)
	assert.Equal(t, "555-0100", pi.Phone)
	assert.Equal(t, "Grace", user.PersonalInformation.FirstName)
}
