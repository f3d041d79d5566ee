// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation is a user's referral token. Each inviter owns exactly one.
type Invitation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"token"`
	InviterID primitive.ObjectID `bson:"inviter_id" json:"inviter_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
