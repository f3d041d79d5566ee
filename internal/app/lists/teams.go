// internal/app/lists/teams.go
package lists

import (
	"time"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

// TeamRow is an affiliate association as the teams screen lists it.
type TeamRow struct {
	ID           string
	Name         string
	Description  string
	Status       string
	Members      int
	MembersLimit string
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	Department   string
	Location     string
	StartDate    string
	Tags         string
	Plan         string
	PlanStatus   string
	CreatedAt    time.Time
}

func (t TeamRow) EntityID() string { return t.ID }

func teamRow(t models.Team) TeamRow {
	status := t.Status
	if status == "" {
		status = models.TeamActive
	}
	return TeamRow{
		ID:           t.ID.Hex(),
		Name:         t.Name,
		Description:  t.Description,
		Status:       status,
		Members:      t.Members,
		MembersLimit: t.MembersLimit,
		LeadName:     t.LeadName,
		LeadEmail:    t.LeadEmail,
		LeadPhone:    t.LeadPhone,
		Department:   t.Department,
		Location:     t.Location,
		StartDate:    t.StartDate,
		Tags:         t.Tags,
		Plan:         t.Plan,
		PlanStatus:   t.PlanStatus,
		CreatedAt:    t.CreatedAt,
	}
}

// TeamForm is what the create/edit form submits.
type TeamForm struct {
	Name         string
	Description  string
	Status       string
	MembersLimit string
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	Department   string
	Location     string
	StartDate    string
	Tags         string
}

// TeamFormFrom prefills an edit form.
func TeamFormFrom(r TeamRow) TeamForm {
	return TeamForm{
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		MembersLimit: r.MembersLimit,
		LeadName:     r.LeadName,
		LeadEmail:    r.LeadEmail,
		LeadPhone:    r.LeadPhone,
		Department:   r.Department,
		Location:     r.Location,
		StartDate:    r.StartDate,
		Tags:         r.Tags,
	}
}

func teamPayload(f TeamForm) apiclient.TeamPayload {
	return apiclient.TeamPayload{
		Name:         f.Name,
		Description:  f.Description,
		Status:       f.Status,
		MembersLimit: f.MembersLimit,
		LeadName:     f.LeadName,
		LeadEmail:    f.LeadEmail,
		LeadPhone:    f.LeadPhone,
		Department:   f.Department,
		Location:     f.Location,
		StartDate:    f.StartDate,
		Tags:         f.Tags,
	}
}

var matchTeam = search.Fields(
	search.Field[TeamRow]{Name: "name", Get: func(t TeamRow) string { return t.Name }, Normalize: search.Fold},
	search.Field[TeamRow]{Name: "description", Get: func(t TeamRow) string { return t.Description }, Normalize: search.Fold},
	search.Field[TeamRow]{Name: "department", Get: func(t TeamRow) string { return t.Department }, Normalize: search.Fold},
	search.Field[TeamRow]{Name: "lead_name", Get: func(t TeamRow) string { return t.LeadName }, Normalize: search.Fold},
	search.Field[TeamRow]{Name: "tags", Get: func(t TeamRow) string { return t.Tags }, Normalize: search.Fold},
)

var teamMessages = listctl.Messages{
	FetchFailed:  "Erro ao buscar associações",
	CreateFailed: "Erro ao criar associação",
	UpdateFailed: "Erro ao atualizar associação",
	DeleteFailed: "Erro ao excluir associação",
	DeniedCreate: "Você não tem permissão para criar associações.",
	DeniedUpdate: "Você não tem permissão para editar associações.",
	DeniedDelete: "Você não tem permissão para excluir associações.",
	Created:      "Associação criada com sucesso!",
	Updated:      "Associação atualizada com sucesso!",
	Deleted:      "Associação excluída com sucesso!",
}

type Teams = listctl.Controller[TeamRow, TeamForm, apiclient.TeamPayload, apiclient.TeamPayload]

// NewTeams builds the teams list controller.
func NewTeams(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, logger *zap.Logger) *Teams {
	return listctl.New(listctl.Config[TeamRow, TeamForm, apiclient.TeamPayload, apiclient.TeamPayload]{
		Module:        models.ModuleTeams,
		Client:        remote[models.Team, TeamRow, apiclient.TeamPayload, apiclient.TeamPayload]{res: api.Teams(), toRow: teamRow},
		Permissions:   perms,
		Match:         matchTeam,
		CreatePayload: teamPayload,
		UpdatePayload: teamPayload,
		Messages:      teamMessages,
		Notifier:      n,
		Log:           logger,
	})
}
