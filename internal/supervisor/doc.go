// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

/*
Package supervisor runs stylematch's long-lived services under a suture v4
supervisor tree.

	stylematch (root)
	├── catalog-layer
	│   └── catalog-service
	├── messaging-layer
	│   └── chat-hub
	└── api-layer
	    └── http-server

Services that return an error are restarted with suture's failure
threshold, decay and backoff. Supervisor events are logged through
sutureslog, with logging.NewSlogLogger bridging them to zerolog:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddCatalogService(catalogSvc)
	tree.AddMessagingService(services.NewChatHubService(hub))
	tree.AddAPIService(httpSvc)
	err := tree.Serve(ctx)
*/
package supervisor
