// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BureauStatus tracks a request at one credit bureau.
type BureauStatus string

const (
	BureauClean   BureauStatus = "limpo"
	BureauPending BureauStatus = "andamento"
	BureauDenied  BureauStatus = "negado"
	BureauResent  BureauStatus = "reenviado"
)

// Defaults applied when a request is stored without explicit statuses.
const (
	DefaultBureau        = BureauPending
	DefaultRequestStatus = "Pendente"
)

// Valid reports whether s is one of the known bureau statuses.
func (s BureauStatus) Valid() bool {
	switch s {
	case BureauClean, BureauPending, BureauDenied, BureauResent:
		return true
	}
	return false
}

// Request is a debt-cleanup ("limpa nome") request for one CPF/CNPJ.
type Request struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CPFCNPJ string             `bson:"cpf_cnpj" json:"cpf_cnpj"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status  string             `bson:"status" json:"status"` // Pendente | Pago | Enviado | free text

	Serasa   BureauStatus `bson:"serasa" json:"serasa"`
	BoaVista BureauStatus `bson:"boa_vista" json:"boa_vista"`
	Cenprot  BureauStatus `bson:"cenprot" json:"cenprot"`
	SPC      BureauStatus `bson:"spc" json:"spc"`

	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ApplyDefaults fills the status fields the backend always stores.
func (r *Request) ApplyDefaults() {
	if r.Status == "" {
		r.Status = DefaultRequestStatus
	}
	for _, s := range []*BureauStatus{&r.Serasa, &r.BoaVista, &r.Cenprot, &r.SPC} {
		if *s == "" {
			*s = DefaultBureau
		}
	}
}
