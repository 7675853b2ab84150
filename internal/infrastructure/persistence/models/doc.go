// Package models contains the GORM persistence models for the storefront tables.
// Domain types in internal/domain stay free of ORM tags; repositories convert
// between the two with ToDomain / FromDomain.
package models
