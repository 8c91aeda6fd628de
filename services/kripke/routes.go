// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package kripke

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all Kripke workbench routes with the router.
//
// Description:
//
//	Registers all /v1/kripke/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Model Endpoints:
//
//	POST   /v1/kripke/models - Create an empty model
//	GET    /v1/kripke/models - List models
//	GET    /v1/kripke/models/:name - Export a model snapshot
//	PUT    /v1/kripke/models/:name - Import a model snapshot
//	DELETE /v1/kripke/models/:name - Delete a model
//
// Editing Endpoints:
//
//	POST   /v1/kripke/models/:name/worlds - Add a world
//	DELETE /v1/kripke/models/:name/worlds/:id - Remove a world
//	POST   /v1/kripke/models/:name/relations - Add a relation
//	DELETE /v1/kripke/models/:name/relations - Remove a relation
//	PUT    /v1/kripke/models/:name/valuations - Set a valuation
//	PUT    /v1/kripke/models/:name/default-valuation - Set the fallback value
//	POST   /v1/kripke/models/:name/closure - Apply frame closures
//
// Query Endpoints:
//
//	GET  /v1/kripke/models/:name/validate - Structural consistency check
//	GET  /v1/kripke/models/:name/reachable - Bounded reachability
//	POST /v1/kripke/models/:name/eval - Evaluate a formula at one world
//	POST /v1/kripke/models/:name/eval-all - Evaluate a formula at all worlds
//	GET  /v1/kripke/models/:name/render - Render as DOT or Mermaid
//
// Health Endpoints:
//
//	GET /v1/kripke/health - Health check
//	GET /v1/kripke/ready - Readiness check
//
// Example:
//
//	service := kripke.NewService(logger)
//	handlers := kripke.NewHandlers(service)
//
//	v1 := router.Group("/v1")
//	kripke.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	k := rg.Group("/kripke")
	{
		// Model lifecycle
		k.POST("/models", handlers.HandleCreateModel)
		k.GET("/models", handlers.HandleListModels)
		k.GET("/models/:name", handlers.HandleGetModel)
		k.PUT("/models/:name", handlers.HandleImportModel)
		k.DELETE("/models/:name", handlers.HandleDeleteModel)

		// Frame and valuation editing
		k.POST("/models/:name/worlds", handlers.HandleAddWorld)
		k.DELETE("/models/:name/worlds/:id", handlers.HandleRemoveWorld)
		k.POST("/models/:name/relations", handlers.HandleAddRelation)
		k.DELETE("/models/:name/relations", handlers.HandleRemoveRelation)
		k.PUT("/models/:name/valuations", handlers.HandleSetValuation)
		k.PUT("/models/:name/default-valuation", handlers.HandleSetDefaultValuation)
		k.POST("/models/:name/closure", handlers.HandleClosure)

		// Queries
		k.GET("/models/:name/validate", handlers.HandleValidate)
		k.GET("/models/:name/reachable", handlers.HandleReachable)
		k.POST("/models/:name/eval", handlers.HandleEval)
		k.POST("/models/:name/eval-all", handlers.HandleEvalAll)
		k.GET("/models/:name/render", handlers.HandleRender)

		// Health checks
		k.GET("/health", handlers.HandleHealth)
		k.GET("/ready", handlers.HandleReady)
	}
}
