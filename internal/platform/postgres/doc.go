// Package postgres implements the store interfaces against PostgreSQL,
// accessed through database/sql with the pgx stdlib driver. It also provides
// the connection provider that every store operation acquires its
// connection from, and the mapping from PostgreSQL error codes to the
// store error taxonomy.
package postgres
