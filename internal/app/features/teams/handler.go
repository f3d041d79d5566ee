// internal/app/features/teams/handler.go
package teams

import (
	"context"

	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of *teamstore.Store the teams resource needs.
type Store interface {
	List(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error)
	Create(ctx context.Context, team models.Team) (models.Team, error)
	Update(ctx context.Context, id primitive.ObjectID, team models.Team) (models.Team, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// MemberCounter reports how many users belong to a team. *userstore.Store
// satisfies it.
type MemberCounter interface {
	CountByTeam(ctx context.Context, teamID primitive.ObjectID) (int64, error)
}

// Handler serves the /team resource.
type Handler struct {
	Teams    Store
	Members  MemberCounter
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(teams Store, members MemberCounter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Teams: teams, Members: members, AuditLog: audit, Log: logger}
}

// withMembers replaces the stored head count with the live one. A failed
// count keeps the stored value.
func (h *Handler) withMembers(ctx context.Context, team models.Team) models.Team {
	if h.Members == nil {
		return team
	}
	n, err := h.Members.CountByTeam(ctx, team.ID)
	if err != nil {
		h.Log.Warn("count team members", zap.Error(err), zap.String("team_id", team.ID.Hex()))
		return team
	}
	team.Members = int(n)
	return team
}
