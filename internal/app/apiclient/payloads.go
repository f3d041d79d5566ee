// internal/app/apiclient/payloads.go
package apiclient

import "github.com/dalemusser/apollo/internal/domain/models"

// UserProfile is the editable part of a user, sent whole on create and
// update.
type UserProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Document     string `json:"document"`
	CEP          string `json:"cep"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type UserCreate struct {
	UserProfile
	Password    string              `json:"password,omitempty"`
	TeamID      string              `json:"team_id,omitempty"`
	IsAdmin     bool                `json:"isAdmin,omitempty"`
	Permissions []models.Permission `json:"permissions,omitempty"`
}

// UserUpdate changes a profile and, when NewPassword is set, the password.
// OldPassword is required when users change their own password.
type UserUpdate struct {
	UserProfile
	OldPassword        string `json:"oldPassword,omitempty"`
	NewPassword        string `json:"newPassword,omitempty"`
	ConfirmNewPassword string `json:"confirmNewPassword,omitempty"`
}

// TeamPayload is used for both create and update.
type TeamPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Status       string `json:"status,omitempty"`
	MembersLimit string `json:"membersLimit,omitempty"`
	LeadName     string `json:"leadName"`
	LeadEmail    string `json:"leadEmail,omitempty"`
	LeadPhone    string `json:"leadPhone,omitempty"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate,omitempty"`
	Tags         string `json:"tags"`
}

// RequestPayload is used for both create and update. Empty statuses let the
// server apply its defaults.
type RequestPayload struct {
	CPFCNPJ  string `json:"cpf_cnpj"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Status   string `json:"status,omitempty"`
	Serasa   string `json:"serasa,omitempty"`
	BoaVista string `json:"boa_vista,omitempty"`
	Cenprot  string `json:"cenprot,omitempty"`
	SPC      string `json:"spc,omitempty"`
}

type SignupPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Invite          string `json:"invite,omitempty"`
}
