// internal/app/lists/users.go
package lists

import (
	"time"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

// UserRow is a user as the users screen lists it.
type UserRow struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	Document     string
	CEP          string
	Address      string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	CreatedAt    time.Time
}

func (u UserRow) EntityID() string { return u.ID }

func userRow(u models.User) UserRow {
	return UserRow{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Document:     u.Document,
		CEP:          u.CEP,
		Address:      u.Address,
		Number:       u.Number,
		Complement:   u.Complement,
		Neighborhood: u.Neighborhood,
		City:         u.City,
		State:        u.State,
		CreatedAt:    u.CreatedAt,
	}
}

// UserForm is what the create/edit form submits.
type UserForm struct {
	Name         string
	Email        string
	PhoneNumber  string
	Document     string
	CEP          string
	Address      string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

// UserFormFrom prefills an edit form.
func UserFormFrom(r UserRow) UserForm {
	return UserForm{
		Name:         r.Name,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		Document:     r.Document,
		CEP:          r.CEP,
		Address:      r.Address,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
	}
}

func (f UserForm) profile() apiclient.UserProfile {
	return apiclient.UserProfile{
		Name:         f.Name,
		Email:        f.Email,
		PhoneNumber:  f.PhoneNumber,
		Document:     f.Document,
		CEP:          f.CEP,
		Address:      f.Address,
		Number:       f.Number,
		Complement:   f.Complement,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        f.State,
	}
}

var matchUser = search.Fields(
	search.Field[UserRow]{Name: "name", Get: func(u UserRow) string { return u.Name }, Normalize: search.Fold},
	search.Field[UserRow]{Name: "email", Get: func(u UserRow) string { return u.Email }, Normalize: search.Fold},
	search.Field[UserRow]{Name: "phone", Get: func(u UserRow) string { return u.PhoneNumber }},
	search.Field[UserRow]{Name: "phone_digits", Get: func(u UserRow) string { return u.PhoneNumber }, Normalize: search.Numeric},
	search.Field[UserRow]{Name: "document", Get: func(u UserRow) string { return u.Document }},
	search.Field[UserRow]{Name: "document_digits", Get: func(u UserRow) string { return u.Document }, Normalize: search.Numeric},
)

var userMessages = listctl.Messages{
	FetchFailed:  "Erro ao buscar usuários",
	CreateFailed: "Erro ao criar usuário",
	UpdateFailed: "Erro ao atualizar usuário",
	DeleteFailed: "Erro ao excluir usuário",
	DeniedCreate: "Você não tem permissão para criar usuários.",
	DeniedUpdate: "Você não tem permissão para editar usuários.",
	DeniedDelete: "Você não tem permissão para excluir usuários.",
	Created:      "Usuário criado com sucesso!",
	Updated:      "Usuário atualizado com sucesso!",
	Deleted:      "Usuário excluído com sucesso!",
}

type Users = listctl.Controller[UserRow, UserForm, apiclient.UserCreate, apiclient.UserUpdate]

// NewUsers builds the users list controller.
func NewUsers(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, logger *zap.Logger) *Users {
	return listctl.New(listctl.Config[UserRow, UserForm, apiclient.UserCreate, apiclient.UserUpdate]{
		Module:      models.ModuleUsers,
		Client:      remote[models.User, UserRow, apiclient.UserCreate, apiclient.UserUpdate]{res: api.Users(), toRow: userRow},
		Permissions: perms,
		Match:       matchUser,
		CreatePayload: func(f UserForm) apiclient.UserCreate {
			return apiclient.UserCreate{UserProfile: f.profile()}
		},
		UpdatePayload: func(f UserForm) apiclient.UserUpdate {
			return apiclient.UserUpdate{UserProfile: f.profile()}
		},
		Messages: userMessages,
		Notifier: n,
		Log:      logger,
	})
}
