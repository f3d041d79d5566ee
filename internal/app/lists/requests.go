// internal/app/lists/requests.go
package lists

import (
	"time"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

// RequestRow is a debt-cleanup request as the requests screen lists it.
// Status and the four bureau columns are never empty.
type RequestRow struct {
	ID        string
	CPFCNPJ   string
	Name      string
	Phone     string
	Status    string
	Serasa    models.BureauStatus
	BoaVista  models.BureauStatus
	Cenprot   models.BureauStatus
	SPC       models.BureauStatus
	CreatedAt time.Time
}

func (r RequestRow) EntityID() string { return r.ID }

func requestRow(r models.Request) RequestRow {
	r.ApplyDefaults()
	return RequestRow{
		ID:        r.ID.Hex(),
		CPFCNPJ:   r.CPFCNPJ,
		Name:      r.Name,
		Phone:     r.Phone,
		Status:    r.Status,
		Serasa:    r.Serasa,
		BoaVista:  r.BoaVista,
		Cenprot:   r.Cenprot,
		SPC:       r.SPC,
		CreatedAt: r.CreatedAt,
	}
}

// RequestForm is what the create/edit form submits. Empty statuses are left
// for the server to default.
type RequestForm struct {
	CPFCNPJ  string
	Name     string
	Phone    string
	Status   string
	Serasa   models.BureauStatus
	BoaVista models.BureauStatus
	Cenprot  models.BureauStatus
	SPC      models.BureauStatus
}

// RequestFormFrom prefills an edit form.
func RequestFormFrom(r RequestRow) RequestForm {
	return RequestForm{
		CPFCNPJ:  r.CPFCNPJ,
		Name:     r.Name,
		Phone:    r.Phone,
		Status:   r.Status,
		Serasa:   r.Serasa,
		BoaVista: r.BoaVista,
		Cenprot:  r.Cenprot,
		SPC:      r.SPC,
	}
}

func requestPayload(f RequestForm) apiclient.RequestPayload {
	return apiclient.RequestPayload{
		CPFCNPJ:  f.CPFCNPJ,
		Name:     f.Name,
		Phone:    f.Phone,
		Status:   f.Status,
		Serasa:   string(f.Serasa),
		BoaVista: string(f.BoaVista),
		Cenprot:  string(f.Cenprot),
		SPC:      string(f.SPC),
	}
}

var matchRequest = search.Fields(
	search.Field[RequestRow]{Name: "name", Get: func(r RequestRow) string { return r.Name }, Normalize: search.Fold},
	search.Field[RequestRow]{Name: "cpf_cnpj", Get: func(r RequestRow) string { return r.CPFCNPJ }},
	search.Field[RequestRow]{Name: "cpf_cnpj_digits", Get: func(r RequestRow) string { return r.CPFCNPJ }, Normalize: search.Numeric},
	search.Field[RequestRow]{Name: "phone", Get: func(r RequestRow) string { return r.Phone }},
	search.Field[RequestRow]{Name: "phone_digits", Get: func(r RequestRow) string { return r.Phone }, Normalize: search.Numeric},
	search.Field[RequestRow]{Name: "status", Get: func(r RequestRow) string { return r.Status }, Normalize: search.Fold},
)

var requestMessages = listctl.Messages{
	FetchFailed:  "Erro ao buscar solicitações",
	CreateFailed: "Erro ao criar solicitação",
	UpdateFailed: "Erro ao atualizar solicitação",
	DeleteFailed: "Erro ao excluir solicitação",
	DeniedCreate: "Você não tem permissão para criar solicitações.",
	DeniedUpdate: "Você não tem permissão para editar solicitações.",
	DeniedDelete: "Você não tem permissão para excluir solicitações.",
	Created:      "Solicitação criada com sucesso!",
	Updated:      "Solicitação atualizada com sucesso!",
	Deleted:      "Solicitação excluída com sucesso!",
}

type Requests = listctl.Controller[RequestRow, RequestForm, apiclient.RequestPayload, apiclient.RequestPayload]

// NewRequests builds the requests list controller.
func NewRequests(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, logger *zap.Logger) *Requests {
	return listctl.New(listctl.Config[RequestRow, RequestForm, apiclient.RequestPayload, apiclient.RequestPayload]{
		Module:        models.ModuleRequests,
		Client:        remote[models.Request, RequestRow, apiclient.RequestPayload, apiclient.RequestPayload]{res: api.Requests(), toRow: requestRow},
		Permissions:   perms,
		Match:         matchRequest,
		CreatePayload: requestPayload,
		UpdatePayload: requestPayload,
		Messages:      requestMessages,
		Notifier:      n,
		Log:           logger,
	})
}
