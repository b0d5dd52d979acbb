// Package postgres implements the store interfaces against PostgreSQL,
// mapping rows to domain entities and driver errors to store sentinels.
package postgres
