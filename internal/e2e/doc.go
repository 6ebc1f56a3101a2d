// Package e2e holds the container-backed lifecycle tests. They migrate a real
// PostgreSQL instance and drive every domain service together, so they live
// outside any single domain package. Run with -short to skip them.
package e2e
