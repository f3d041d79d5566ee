// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a back-office account. Admins and affiliates share the collection;
// what a user may do is decided by Permissions, not by a role string.
//
// NOTE:
//   - NameCI/EmailCI are lowercase, diacritics-stripped copies kept for
//     search and for the unique email index.
//   - PasswordHash is never serialised to JSON.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"`
	Email   string             `bson:"email" json:"email"`
	EmailCI string             `bson:"email_ci" json:"-"`

	PhoneNumber string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Document    string `bson:"document,omitempty" json:"document,omitempty"` // CPF or CNPJ

	CEP          string `bson:"cep,omitempty" json:"cep,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	Number       string `bson:"number,omitempty" json:"number,omitempty"`
	Complement   string `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	State        string `bson:"state,omitempty" json:"state,omitempty"`

	IsAdmin     bool         `bson:"is_admin" json:"isAdmin"`
	Permissions []Permission `bson:"permissions" json:"permissions"`

	TeamID    *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`
	InvitedBy *primitive.ObjectID `bson:"invited_by,omitempty" json:"invited_by,omitempty"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
