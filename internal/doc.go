// Package internal documents the CityNights server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem rendering, and routing
// - domain: business logic (venues, users, city config, bucketing)
// - storage: database access and repositories (JSONB documents on Postgres)
// - auth, config, metrics, telemetry: shared infrastructure
// - sanitize, slug: text normalization helpers
//
// Code in internal/ is not meant for external import.
package internal
