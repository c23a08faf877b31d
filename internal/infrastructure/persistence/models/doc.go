// Package models holds the GORM persistence models. Each model maps one
// table and converts to and from its domain entity; no business logic lives
// here.
package models
