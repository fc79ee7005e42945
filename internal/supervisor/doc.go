// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package supervisor runs Registhor's long-lived services under a suture v4
supervisor tree.

	root ("registhor")
	├── data-layer
	│   └── store-monitor
	└── api-layer
	    └── api-server

Each layer restarts its own services with suture's backoff. A service that
returns suture.ErrDoNotRestart is left stopped.

Supervisor events are logged through sutureslog into the zerolog stream
(see logging.NewSlogLogger).

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewStoreMonitorService(db, cfg.Database.HealthInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
