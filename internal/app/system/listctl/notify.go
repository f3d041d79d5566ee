// internal/app/system/listctl/notify.go
package listctl

import "github.com/dalemusser/apollo/internal/domain/models"

// Level is the severity of a Notification.
type Level uint8

const (
	LevelSuccess Level = iota + 1
	LevelError
)

// Notification is a transient, user-visible message. Kind is zero for
// success messages.
type Notification struct {
	Level   Level
	Kind    Kind
	Message string
}

// Notifier receives notifications. Implementations must not call back into
// the controller synchronously.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Messages are the user-facing texts for one entity kind. Empty success
// texts suppress the corresponding success notification.
type Messages struct {
	FetchFailed  string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string

	// Denied* are raised when the permission for that action is missing.
	DeniedCreate string
	DeniedUpdate string
	DeniedDelete string

	Created string
	Updated string
	Deleted string
}

func (m Messages) forKind(k Kind) string {
	switch k {
	case FetchFailed:
		return m.FetchFailed
	case CreateFailed:
		return m.CreateFailed
	case UpdateFailed:
		return m.UpdateFailed
	case DeleteFailed:
		return m.DeleteFailed
	}
	return ""
}

func (m Messages) denied(a models.Action) string {
	switch a {
	case models.ActionCreate:
		return m.DeniedCreate
	case models.ActionUpdate:
		return m.DeniedUpdate
	}
	return m.DeniedDelete
}

// withDefaults fills empty failure texts with generic Portuguese wording.
func (m Messages) withDefaults() Messages {
	if m.FetchFailed == "" {
		m.FetchFailed = "Erro ao carregar os registros."
	}
	for _, d := range []*string{&m.DeniedCreate, &m.DeniedUpdate, &m.DeniedDelete} {
		if *d == "" {
			*d = "Você não tem permissão para realizar esta ação."
		}
	}
	if m.CreateFailed == "" {
		m.CreateFailed = "Erro ao criar o registro."
	}
	if m.UpdateFailed == "" {
		m.UpdateFailed = "Erro ao atualizar o registro."
	}
	if m.DeleteFailed == "" {
		m.DeleteFailed = "Erro ao excluir o registro."
	}
	return m
}
