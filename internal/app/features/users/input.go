// internal/app/features/users/input.go
package users

import (
	"strings"

	"github.com/dalemusser/apollo/internal/app/system/normalize"
	"github.com/dalemusser/apollo/internal/domain/models"
)

// profile holds the contact fields shared by create and update. Update
// merges the patch onto the stored values and validates the result, so both
// paths enforce the same rules.
type profile struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Email        string `json:"email" validate:"required,mailaddr"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,min=10,max=13"`
	Document     string `json:"document" validate:"omitempty,cpfcnpj"`
	CEP          string `json:"cep" validate:"omitempty,len=8"`
	Address      string `json:"address" validate:"max=200"`
	Number       string `json:"number" validate:"max=20"`
	Complement   string `json:"complement" validate:"max=120"`
	Neighborhood string `json:"neighborhood" validate:"max=120"`
	City         string `json:"city" validate:"max=120"`
	State        string `json:"state" validate:"omitempty,len=2"`
}

func (p *profile) normalize() {
	p.Name = normalize.Name(p.Name)
	p.Email = normalize.Email(p.Email)
	p.PhoneNumber = normalize.Phone(p.PhoneNumber)
	p.Document = normalize.Document(p.Document)
	p.CEP = normalize.Phone(p.CEP)
	p.Address = normalize.Name(p.Address)
	p.Number = normalize.Name(p.Number)
	p.Complement = normalize.Name(p.Complement)
	p.Neighborhood = normalize.Name(p.Neighborhood)
	p.City = normalize.Name(p.City)
	p.State = strings.ToUpper(normalize.Name(p.State))
}

func profileOf(u models.User) profile {
	return profile{
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
	}
}

func (p profile) apply(u *models.User) {
	u.Name = p.Name
	u.Email = p.Email
	u.PhoneNumber = p.PhoneNumber
	u.Document = p.Document
	u.CEP = p.CEP
	u.Address = p.Address
	u.Number = p.Number
	u.Complement = p.Complement
	u.Neighborhood = p.Neighborhood
	u.City = p.City
	u.State = p.State
}

// checkPermissions returns a field error for the first unknown grant.
func checkPermissions(perms []models.Permission) map[string]string {
	for _, p := range perms {
		if !p.Valid() {
			return map[string]string{"permissions": "invalid"}
		}
	}
	return nil
}

// dedupe drops repeated grants, keeping first occurrences in order.
func dedupe(perms []models.Permission) []models.Permission {
	seen := make(map[models.Permission]bool, len(perms))
	out := make([]models.Permission, 0, len(perms))
	for _, p := range perms {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func merge(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = map[string]string{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
