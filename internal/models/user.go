package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Position values for PersonalInformation.
const (
	PositionEmployee        = "employee"
	PositionGraduateStudent = "graduateStudent"
	PositionStudent         = "student"
)

type PersonalInformation struct {
	LastName  string `bson:"lastName" json:"lastName"`
	FirstName string `bson:"firstName" json:"firstName"`
	Institute string `bson:"institute" json:"institute"`
	Position  string `bson:"position" json:"position"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// User is the aggregate root. Form instances live embedded in Forms and
// have no identity outside their owner; the password hash never leaves
// the server.
type User struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Email               string              `bson:"email" json:"email"`
	PasswordHash        string              `bson:"passwordHash" json:"-"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	PersonalInformation PersonalInformation `bson:"personalInformation" json:"personalInformation"`
	BankInformation     []map[string]any    `bson:"bankInformation" json:"bankInformation"`
	Forms               []Form              `bson:"forms" json:"forms"`
}

// FormByID returns a pointer into the embedded forms list, or nil.
func (u *User) FormByID(id primitive.ObjectID) *Form {
	for i := range u.Forms {
		if u.Forms[i].ID == id {
			return &u.Forms[i]
		}
	}
	return nil
}
