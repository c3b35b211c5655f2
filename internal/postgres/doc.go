// Package postgres implements the persistence boundary on PostgreSQL via
// pgx, including connection setup and embedded tern migrations.
package postgres
