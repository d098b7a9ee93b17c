// Package models holds the GORM table mappings. Domain types stay free of
// ORM tags; each model converts to and from its domain counterpart.
package models
