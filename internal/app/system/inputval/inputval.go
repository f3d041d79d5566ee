// internal/app/system/inputval/inputval.go
package inputval

import (
	"errors"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/apollo/internal/app/system/search"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator. Field errors are reported under
// their JSON names, and the custom "cpfcnpj", "mailaddr" and "bureau" tags are
// registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("cpfcnpj", func(fl validator.FieldLevel) bool {
			return IsValidDocument(fl.Field().String())
		})
		_ = v.RegisterValidation("mailaddr", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("bureau", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "limpo", "andamento", "negado", "reenviado":
				return true
			}
			return false
		})
	})
	return v
}

// Struct validates s. On failure it returns the offending fields keyed by
// JSON name, with the failed tag as the value.
func Struct(s any) (map[string]string, error) {
	err := Validator().Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return fields, nil
}

// IsValidDocument accepts a CPF (11 digits) or CNPJ (14 digits) once
// punctuation is stripped.
func IsValidDocument(s string) bool {
	d := search.Digits(s)
	return len(d) == 11 || len(d) == 14
}

// IsValidEmail reports whether s is a bare RFC 5322 address without a
// display name.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}
