// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package testinfra provides container-backed dependencies for integration
// tests. The sources carry the integration build tag, so only this doc
// file is visible to a plain go test run:
//
//	go test -tags integration ./...
//
// # PostgreSQL
//
// NewPostgresContainer starts an empty server and returns a pgx DSN. The
// database package runs its whole query suite against it with Migrate
// enabled.
//
// # Redis
//
// NewRedisContainer starts a Redis server for the shared response cache.
//
// Tests call SkipIfNoDocker first and are skipped gracefully where Docker
// is missing. The first run downloads the images.
package testinfra
