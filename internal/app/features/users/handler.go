// internal/app/features/users/handler.go
package users

import (
	"context"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of *userstore.Store the users resource needs.
type Store interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, up userstore.Update) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Handler serves the /user resource.
type Handler struct {
	Users    Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(users Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, AuditLog: audit, Log: logger}
}
