// internal/app/system/listctl/form.go
package listctl

// FormMode is the visible state of the create/edit form.
type FormMode uint8

const (
	FormClosed FormMode = iota
	FormCreating
	FormEditing
)

func (m FormMode) String() string {
	switch m {
	case FormCreating:
		return "creating"
	case FormEditing:
		return "editing"
	}
	return "closed"
}

// FormState is Closed, Creating, or Editing(target). The fields are
// unexported so an open form without a mode, or a closed form holding a
// target, cannot be built.
type FormState[E any] struct {
	mode   FormMode
	target E
}

func closedForm[E any]() FormState[E]    { return FormState[E]{} }
func creatingForm[E any]() FormState[E]  { return FormState[E]{mode: FormCreating} }
func editingForm[E any](e E) FormState[E] { return FormState[E]{mode: FormEditing, target: e} }

func (f FormState[E]) Mode() FormMode { return f.mode }

// Open reports whether the form is showing.
func (f FormState[E]) Open() bool { return f.mode != FormClosed }

// Target returns the entity being edited. ok is false unless Mode is
// FormEditing.
func (f FormState[E]) Target() (e E, ok bool) {
	if f.mode != FormEditing {
		return e, false
	}
	return f.target, true
}
