package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formdesk/server/internal/models"
)

const TemplatesCollection = "formTemplates"

// TemplateRepo stores the stamping masters: one Form document per type,
// never mutated by API traffic.
type TemplateRepo struct {
	col *mongo.Collection
}

func NewTemplateRepo(db *mongo.Database) *TemplateRepo {
	return &TemplateRepo{col: db.Collection(TemplatesCollection)}
}

func (r *TemplateRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *TemplateRepo) FindByType(ctx context.Context, formType string) (*models.Form, error) {
	var form models.Form
	err := r.col.FindOne(ctx, bson.M{"type": formType}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// Seed loads template documents from dir (*.json, one form each) and
// inserts any whose type is not yet present. Existing templates are left
// untouched so a restart never clobbers live masters.
func (r *TemplateRepo) Seed(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		var form models.Form
		if err := json.Unmarshal(data, &form); err != nil {
			return fmt.Errorf("template %s: %w", e.Name(), err)
		}
		if form.Type == "" {
			return fmt.Errorf("template %s: missing type", e.Name())
		}
		existing, err := r.FindByType(ctx, form.Type)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		now := time.Now().UTC()
		form.ID = primitive.NewObjectID()
		form.CreatedAt = now
		form.LastEdit = now
		if form.Tag == "" {
			form.Tag = models.TagDraft
		}
		if _, err := r.col.InsertOne(ctx, form); err != nil {
			return err
		}
		log.Printf("Seeded %s form template from %s", form.Type, e.Name())
	}
	return nil
}
