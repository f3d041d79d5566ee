// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team statuses.
const (
	TeamActive   = "active"
	TeamInactive = "inactive"
)

// Team is an affiliate association. Users point at it through User.TeamID.
type Team struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	Description  string             `bson:"description" json:"description"`
	Status       string             `bson:"status" json:"status"` // active | inactive
	MembersLimit string             `bson:"members_limit" json:"membersLimit"`
	Members      int                `bson:"members" json:"members"`

	LeadName  string `bson:"lead_name" json:"leadName"`
	LeadEmail string `bson:"lead_email" json:"leadEmail"`
	LeadPhone string `bson:"lead_phone" json:"leadPhone"`

	Department string `bson:"department" json:"department"`
	Location   string `bson:"location" json:"location"`
	StartDate  string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	Tags       string `bson:"tags,omitempty" json:"tags,omitempty"`

	Plan       string `bson:"plan,omitempty" json:"plan,omitempty"`
	PlanStatus string `bson:"plan_status,omitempty" json:"plan_status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PlanStatusActive marks a paid-up subscription.
const PlanStatusActive = "active"

// IsProPlan reports whether the team is on a paid tier above Start with an
// active subscription.
func (t Team) IsProPlan() bool {
	if t.PlanStatus != PlanStatusActive {
		return false
	}
	return t.Plan == "Professional" || t.Plan == "Enterprise"
}
