// Package ent declares the persisted entity schemas. The generated client
// is produced by `go generate ./...` and is not checked in; the raw-SQL
// repository backends mirror these schemas for deployments that skip
// codegen.
package ent

//go:generate go run -mod=mod entgo.io/ent/cmd/ent generate ./schema
