// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package services adapts Registhor components to suture.Service.
//
// HTTPServerService drives the API's *http.Server: it listens until the
// context is canceled, then drains in-flight requests with Shutdown.
//
// StoreMonitorService pings the store on an interval and publishes
// registhor_db_up and registhor_db_open_connections. It logs when the store
// goes down and when it comes back.
package services
