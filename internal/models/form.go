package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form types. A template of each type is seeded into the store and used as
// the stamping master for user-owned instances.
const (
	TypeBusinessTrip   = "businessTrip"
	TypeTravelExpenses = "travelExpenses"
	TypeVacation       = "vacation"
	TypeUserProfile    = "userProfile"
)

// Form tags.
const (
	TagDraft    = "draft"
	TagSent     = "sent"
	TagAccepted = "accepted"
	TagRejected = "rejected"
)

// Field types the PDF mapper understands. Unknown types round-trip through
// storage untouched but contribute nothing to the PDF.
const (
	FieldText         = "textField"
	FieldDatePicker   = "datePicker"
	FieldMultiSelect  = "multiSelect"
	FieldRadioGroup   = "radioGroup"
	FieldButtonSelect = "buttonSelect"
)

type Option struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

type Field struct {
	Name    string   `bson:"name" json:"name"`
	Type    string   `bson:"type" json:"type"`
	Value   string   `bson:"value" json:"value"`
	IsValid bool     `bson:"isValid" json:"isValid"`
	Options []Option `bson:"options,omitempty" json:"options,omitempty"`
}

// ConditionRule requires the named field (or multiSelect option) to carry
// the expected value for an attachment to be merged.
type ConditionRule struct {
	Field string `bson:"field" json:"field"`
	Value string `bson:"value" json:"value"`
}

// Condition guards a PdfFile attachment. On the wire and in the store it is
// either a plain boolean or a list of rules that must all hold.
type Condition struct {
	Always bool
	Rules  []ConditionRule
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c.Rules == nil {
		return json.Marshal(c.Always)
	}
	return json.Marshal(c.Rules)
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Condition{Always: b}
		return nil
	}
	var rules []ConditionRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return fmt.Errorf("condition must be a bool or a rule list: %w", err)
	}
	*c = Condition{Rules: rules}
	return nil
}

func (c Condition) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if c.Rules == nil {
		return bson.MarshalValue(c.Always)
	}
	return bson.MarshalValue(c.Rules)
}

func (c *Condition) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Boolean:
		var b bool
		if err := bson.UnmarshalValue(t, data, &b); err != nil {
			return err
		}
		*c = Condition{Always: b}
		return nil
	case bsontype.Array:
		var rules []ConditionRule
		if err := bson.UnmarshalValue(t, data, &rules); err != nil {
			return err
		}
		*c = Condition{Rules: rules}
		return nil
	}
	return fmt.Errorf("condition: unexpected BSON type %s", t)
}

// Matches reports whether the attachment guarded by c should be merged given
// the form's current field state. A rule whose target is present with a
// different value fails the condition; for multiSelect fields the target is
// matched against option names, not the field name. A rule whose target does
// not exist anywhere in the form counts as satisfied.
func (c Condition) Matches(fields []Field) bool {
	if c.Rules == nil {
		return c.Always
	}
	for _, rule := range c.Rules {
		for _, f := range fields {
			if f.Type == FieldMultiSelect {
				for _, opt := range f.Options {
					if opt.Name == rule.Field && opt.Value != rule.Value {
						return false
					}
				}
			} else if f.Name == rule.Field && f.Value != rule.Value {
				return false
			}
		}
	}
	return true
}

// PdfFile points at a PDF asset relative to the configured assets directory.
// By convention the first entry in a form's list is the base document; the
// rest are conditional attachments.
type PdfFile struct {
	URL       string    `bson:"url" json:"url"`
	Condition Condition `bson:"condition" json:"condition"`
}

type Form struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type       string             `bson:"type" json:"type"`
	Tag        string             `bson:"tag" json:"tag"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	LastEdit   time.Time          `bson:"lastEdit" json:"lastEdit"`
	IsComplete bool               `bson:"isComplete" json:"isComplete"`
	Fields     []Field            `bson:"fields" json:"fields"`
	PdfFiles   []PdfFile          `bson:"pdfFiles" json:"pdfFiles"`
}

// ValidTag reports whether tag is one of the known lifecycle tags.
func ValidTag(tag string) bool {
	switch tag {
	case TagDraft, TagSent, TagAccepted, TagRejected:
		return true
	}
	return false
}

// Clone deep-copies f as a fresh instance with its own identity and
// timestamps.
func (f *Form) Clone() Form {
	now := time.Now().UTC()
	clone := *f
	clone.ID = primitive.NewObjectID()
	clone.CreatedAt = now
	clone.LastEdit = now
	clone.Fields = make([]Field, len(f.Fields))
	for i, fld := range f.Fields {
		fld.Options = append([]Option(nil), fld.Options...)
		clone.Fields[i] = fld
	}
	clone.PdfFiles = make([]PdfFile, len(f.PdfFiles))
	for i, pf := range f.PdfFiles {
		pf.Condition.Rules = append([]ConditionRule(nil), pf.Condition.Rules...)
		clone.PdfFiles[i] = pf
	}
	return clone
}

// ComputeComplete reports whether no field is marked invalid. Fields that
// are absent from the list do not count against completeness.
func (f *Form) ComputeComplete() bool {
	for _, fld := range f.Fields {
		if !fld.IsValid {
			return false
		}
	}
	return true
}
