package main

import (
	"strconv"

	"github.com/dalemusser/apollo/internal/app/apiclient"
	"github.com/dalemusser/apollo/internal/app/lists"
	"github.com/dalemusser/apollo/internal/app/system/listctl"
	"github.com/dalemusser/apollo/internal/domain/models"
	"go.uber.org/zap"
)

const dateLayout = "02/01/2006"

var usersKind = kind[lists.UserRow, lists.UserForm]{
	use:   "users",
	alias: "user",
	short: "Manage users",
	build: func(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, log *zap.Logger) controller[lists.UserRow, lists.UserForm] {
		return lists.NewUsers(api, perms, n, log)
	},
	columns: []column[lists.UserRow]{
		{"ID", func(u lists.UserRow) string { return u.ID }},
		{"NAME", func(u lists.UserRow) string { return u.Name }},
		{"EMAIL", func(u lists.UserRow) string { return u.Email }},
		{"PHONE", func(u lists.UserRow) string { return u.PhoneNumber }},
		{"DOCUMENT", func(u lists.UserRow) string { return u.Document }},
		{"CITY", func(u lists.UserRow) string { return u.City }},
		{"STATE", func(u lists.UserRow) string { return u.State }},
	},
	fields: map[string]func(*lists.UserForm, string){
		"name":         func(f *lists.UserForm, v string) { f.Name = v },
		"email":        func(f *lists.UserForm, v string) { f.Email = v },
		"phone":        func(f *lists.UserForm, v string) { f.PhoneNumber = v },
		"document":     func(f *lists.UserForm, v string) { f.Document = v },
		"cep":          func(f *lists.UserForm, v string) { f.CEP = v },
		"address":      func(f *lists.UserForm, v string) { f.Address = v },
		"number":       func(f *lists.UserForm, v string) { f.Number = v },
		"complement":   func(f *lists.UserForm, v string) { f.Complement = v },
		"neighborhood": func(f *lists.UserForm, v string) { f.Neighborhood = v },
		"city":         func(f *lists.UserForm, v string) { f.City = v },
		"state":        func(f *lists.UserForm, v string) { f.State = v },
	},
	fromRow: lists.UserFormFrom,
}

var teamsKind = kind[lists.TeamRow, lists.TeamForm]{
	use:   "teams",
	alias: "team",
	short: "Manage affiliate associations",
	build: func(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, log *zap.Logger) controller[lists.TeamRow, lists.TeamForm] {
		return lists.NewTeams(api, perms, n, log)
	},
	columns: []column[lists.TeamRow]{
		{"ID", func(t lists.TeamRow) string { return t.ID }},
		{"NAME", func(t lists.TeamRow) string { return t.Name }},
		{"STATUS", func(t lists.TeamRow) string { return t.Status }},
		{"MEMBERS", func(t lists.TeamRow) string { return strconv.Itoa(t.Members) }},
		{"LEAD", func(t lists.TeamRow) string { return t.LeadName }},
		{"DEPARTMENT", func(t lists.TeamRow) string { return t.Department }},
		{"PLAN", func(t lists.TeamRow) string { return t.Plan }},
	},
	fields: map[string]func(*lists.TeamForm, string){
		"name":          func(f *lists.TeamForm, v string) { f.Name = v },
		"description":   func(f *lists.TeamForm, v string) { f.Description = v },
		"status":        func(f *lists.TeamForm, v string) { f.Status = v },
		"members_limit": func(f *lists.TeamForm, v string) { f.MembersLimit = v },
		"lead_name":     func(f *lists.TeamForm, v string) { f.LeadName = v },
		"lead_email":    func(f *lists.TeamForm, v string) { f.LeadEmail = v },
		"lead_phone":    func(f *lists.TeamForm, v string) { f.LeadPhone = v },
		"department":    func(f *lists.TeamForm, v string) { f.Department = v },
		"location":      func(f *lists.TeamForm, v string) { f.Location = v },
		"start_date":    func(f *lists.TeamForm, v string) { f.StartDate = v },
		"tags":          func(f *lists.TeamForm, v string) { f.Tags = v },
	},
	fromRow: lists.TeamFormFrom,
}

var requestsKind = kind[lists.RequestRow, lists.RequestForm]{
	use:   "requests",
	alias: "request",
	short: "Manage debt-cleanup requests",
	build: func(api *apiclient.Client, perms []models.Permission, n listctl.Notifier, log *zap.Logger) controller[lists.RequestRow, lists.RequestForm] {
		return lists.NewRequests(api, perms, n, log)
	},
	columns: []column[lists.RequestRow]{
		{"ID", func(r lists.RequestRow) string { return r.ID }},
		{"CPF/CNPJ", func(r lists.RequestRow) string { return r.CPFCNPJ }},
		{"NAME", func(r lists.RequestRow) string { return r.Name }},
		{"PHONE", func(r lists.RequestRow) string { return r.Phone }},
		{"STATUS", func(r lists.RequestRow) string { return r.Status }},
		{"SERASA", func(r lists.RequestRow) string { return string(r.Serasa) }},
		{"BOA VISTA", func(r lists.RequestRow) string { return string(r.BoaVista) }},
		{"CENPROT", func(r lists.RequestRow) string { return string(r.Cenprot) }},
		{"SPC", func(r lists.RequestRow) string { return string(r.SPC) }},
		{"CREATED", func(r lists.RequestRow) string { return r.CreatedAt.Format(dateLayout) }},
	},
	fields: map[string]func(*lists.RequestForm, string){
		"cpf_cnpj":  func(f *lists.RequestForm, v string) { f.CPFCNPJ = v },
		"name":      func(f *lists.RequestForm, v string) { f.Name = v },
		"phone":     func(f *lists.RequestForm, v string) { f.Phone = v },
		"status":    func(f *lists.RequestForm, v string) { f.Status = v },
		"serasa":    func(f *lists.RequestForm, v string) { f.Serasa = models.BureauStatus(v) },
		"boa_vista": func(f *lists.RequestForm, v string) { f.BoaVista = models.BureauStatus(v) },
		"cenprot":   func(f *lists.RequestForm, v string) { f.Cenprot = models.BureauStatus(v) },
		"spc":       func(f *lists.RequestForm, v string) { f.SPC = models.BureauStatus(v) },
	},
	fromRow: lists.RequestFormFrom,
}
