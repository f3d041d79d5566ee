// internal/app/features/teams/input.go
package teams

import (
	"strings"

	"github.com/dalemusser/apollo/internal/app/system/htmlsanitize"
	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/domain/models"
)

// teamInput is the body of POST /team and PUT /team/{id}. The web form
// always sends the whole team, so PUT replaces every editable field.
type teamInput struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Description  string `json:"description" validate:"max=2000"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
	MembersLimit string `json:"membersLimit" validate:"omitempty,numeric"`
	LeadName     string `json:"leadName" validate:"max=120"`
	LeadEmail    string `json:"leadEmail" validate:"omitempty,mailaddr"`
	LeadPhone    string `json:"leadPhone" validate:"omitempty,min=10,max=13"`
	Department   string `json:"department" validate:"max=120"`
	Location     string `json:"location" validate:"max=120"`
	StartDate    string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	Tags         string `json:"tags" validate:"max=500"`
	Plan         string `json:"plan" validate:"omitempty,oneof=Start Professional Enterprise"`
	PlanStatus   string `json:"plan_status" validate:"omitempty,oneof=active pending canceled"`
}

func (in *teamInput) normalize() {
	in.Name = normalize.Name(htmlsanitize.Text(in.Name))
	in.Description = htmlsanitize.Text(in.Description)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.MembersLimit = strings.TrimSpace(in.MembersLimit)
	in.LeadName = normalize.Name(htmlsanitize.Text(in.LeadName))
	in.LeadEmail = normalize.Email(in.LeadEmail)
	in.LeadPhone = normalize.Phone(in.LeadPhone)
	in.Department = normalize.Name(htmlsanitize.Text(in.Department))
	in.Location = normalize.Name(htmlsanitize.Text(in.Location))
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.Tags = normalizeTags(htmlsanitize.Text(in.Tags))
	in.Plan = strings.TrimSpace(in.Plan)
	in.PlanStatus = strings.TrimSpace(in.PlanStatus)
}

// normalizeTags trims each comma-separated tag and drops empty ones.
func normalizeTags(s string) string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = normalize.Name(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func (in teamInput) team() models.Team {
	return models.Team{
		Name:         in.Name,
		Description:  in.Description,
		Status:       in.Status,
		MembersLimit: in.MembersLimit,
		LeadName:     in.LeadName,
		LeadEmail:    in.LeadEmail,
		LeadPhone:    in.LeadPhone,
		Department:   in.Department,
		Location:     in.Location,
		StartDate:    in.StartDate,
		Tags:         in.Tags,
		Plan:         in.Plan,
		PlanStatus:   in.PlanStatus,
	}
}
