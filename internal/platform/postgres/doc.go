// Package postgres contains the PostgreSQL implementations of the store
// interfaces.
package postgres
