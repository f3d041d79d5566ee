// internal/domain/models/plan.go
package models

// Plan is a subscription tier of the affiliate programme.
type Plan struct {
	Name        string   `json:"name"`
	Price       int      `json:"price"` // BRL, monthly
	Description string   `json:"description"`
	Users       string   `json:"users"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

// Plans is the published catalogue, cheapest first.
var Plans = []Plan{
	{
		Name:        "Start",
		Price:       397,
		Description: "Ideal para afiliados iniciantes que querem começar a vender!",
		Users:       "01 Usuário",
		Features: []string{
			"Sistema de envio de nomes",
			"Treinamento - Academia de negócios",
		},
	},
	{
		Name:        "Professional",
		Price:       797,
		Description: "Plano para afiliados que estão em busca de crescimento.",
		Users:       "03 Usuários",
		Features:    fullFeatures,
		Popular:     true,
	},
	{
		Name:        "Enterprise",
		Price:       1297,
		Description: "Ideal para empresas que buscam a construção de um império",
		Users:       "15 Usuários",
		Features:    fullFeatures,
	},
}

var fullFeatures = []string{
	"Sistema de envio de nomes",
	"Treinamento - Academia de negócios",
	"Agenda",
	"Apollo Atende",
	"Pesquisa em tempo real",
	"Ranking",
	"Conquista",
}
