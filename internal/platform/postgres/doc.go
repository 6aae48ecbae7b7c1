// Package postgres implements the internal/store interfaces on PostgreSQL
// through database/sql and the pgx driver. Queries are built with squirrel;
// driver errors are translated to store sentinels by MapError. The schema is
// embedded as goose migrations.
package postgres
