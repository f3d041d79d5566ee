// internal/app/system/listctl/doc.go

// Package listctl holds the permission-gated list controller shared by the
// Users, Teams and Requests screens.
//
// A Controller owns one resource's collection: it loads it from a Client,
// derives a search-filtered view, tracks the create/edit form, and reconciles
// the collection with whatever the server returns after each mutation.
// Every mutating call re-checks the caller's permission set before any
// network round trip, and every failure becomes both a Notification and a
// returned *Error. A Controller is safe for concurrent use.
package listctl
