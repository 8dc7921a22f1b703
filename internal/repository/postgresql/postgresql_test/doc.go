// Package postgresqltest runs the PostgreSQL repositories against a real
// database. Tests are skipped unless TEST_DATABASE_URL is set.
package postgresqltest
