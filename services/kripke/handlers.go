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
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/kripke/services/kripke/eval"
	"github.com/AleutianAI/kripke/services/kripke/formula"
	"github.com/AleutianAI/kripke/services/kripke/model"
	"github.com/AleutianAI/kripke/services/kripke/visualization"
)

// Handlers contains the HTTP handlers for the Kripke workbench.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// errorStatus maps a service error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrModelNotFound):
		return http.StatusNotFound, "MODEL_NOT_FOUND"
	case errors.Is(err, ErrModelExists):
		return http.StatusConflict, "MODEL_EXISTS"
	case errors.Is(err, ErrEmptyModelName), errors.Is(err, ErrNoSnapshot):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, ErrUnknownClosure):
		return http.StatusBadRequest, "UNKNOWN_CLOSURE"
	case errors.Is(err, model.ErrWorldNotFound):
		return http.StatusNotFound, "WORLD_NOT_FOUND"
	case errors.Is(err, model.ErrRelationNotFound):
		return http.StatusNotFound, "RELATION_NOT_FOUND"
	case errors.Is(err, model.ErrInvalidWorldID):
		return http.StatusBadRequest, "INVALID_WORLD_ID"
	case errors.Is(err, model.ErrInvalidProposition):
		return http.StatusBadRequest, "INVALID_PROPOSITION"
	case errors.Is(err, formula.ErrParse):
		return http.StatusBadRequest, "PARSE_ERROR"
	case errors.Is(err, eval.ErrUnknownWorld):
		return http.StatusNotFound, "WORLD_NOT_FOUND"
	case errors.Is(err, eval.ErrInvalidModel):
		return http.StatusUnprocessableEntity, "INVALID_MODEL"
	case errors.Is(err, visualization.ErrUnknownFormat):
		return http.StatusBadRequest, "UNKNOWN_FORMAT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondError logs err and writes the mapped error response.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", code)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// HandleCreateModel handles POST /v1/kripke/models.
//
// Request Body:
//
//	CreateModelRequest
//
// Response:
//
//	201 Created: ModelSummary
//	400 Bad Request: Validation error
//	409 Conflict: Model already exists
func (h *Handlers) HandleCreateModel(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCreateModel")

	var req CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("Invalid model name", "name", req.Name, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid model name",
			Code:  "INVALID_NAME",
		})
		return
	}

	if err := h.svc.CreateModel(c.Request.Context(), req.Name); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, ModelSummary{Name: req.Name})
}

// HandleListModels handles GET /v1/kripke/models.
func (h *Handlers) HandleListModels(c *gin.Context) {
	c.JSON(http.StatusOK, ListModelsResponse{Models: h.svc.ListModels()})
}

// HandleGetModel handles GET /v1/kripke/models/:name.
//
// Response:
//
//	200 OK: model.Snapshot
//	404 Not Found: Unknown model
func (h *Handlers) HandleGetModel(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetModel")

	snap, err := h.svc.GetSnapshot(c.Param("name"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// HandleImportModel handles PUT /v1/kripke/models/:name.
//
// Request Body:
//
//	ImportModelRequest
//
// Response:
//
//	200 OK: ModelSummary
//	400 Bad Request: Invalid snapshot
//	409 Conflict: Model exists and overwrite not set
func (h *Handlers) HandleImportModel(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleImportModel")

	var req ImportModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	name := c.Param("name")
	if err := h.svc.ImportModel(c.Request.Context(), name, req.Snapshot, req.Overwrite); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, ModelSummary{
		Name:      name,
		Worlds:    len(req.Snapshot.Worlds),
		Relations: len(req.Snapshot.Relations),
	})
}

// HandleDeleteModel handles DELETE /v1/kripke/models/:name.
func (h *Handlers) HandleDeleteModel(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDeleteModel")

	if err := h.svc.DeleteModel(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAddWorld handles POST /v1/kripke/models/:name/worlds.
func (h *Handlers) HandleAddWorld(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAddWorld")

	var req AddWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("Invalid world id", "id", req.ID, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid world id",
			Code:  "INVALID_WORLD_ID",
		})
		return
	}

	if err := h.svc.AddWorld(c.Request.Context(), c.Param("name"), req.ID); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleRemoveWorld handles DELETE /v1/kripke/models/:name/worlds/:id.
func (h *Handlers) HandleRemoveWorld(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRemoveWorld")

	if err := h.svc.RemoveWorld(c.Request.Context(), c.Param("name"), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAddRelation handles POST /v1/kripke/models/:name/relations.
func (h *Handlers) HandleAddRelation(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAddRelation")

	var req AddRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if err := h.svc.AddRelation(c.Request.Context(), c.Param("name"), req.Source, req.Target); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleRemoveRelation handles DELETE /v1/kripke/models/:name/relations.
// The pair to remove is carried in the body, same shape as adds.
func (h *Handlers) HandleRemoveRelation(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRemoveRelation")

	var req AddRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if err := h.svc.RemoveRelation(c.Request.Context(), c.Param("name"), req.Source, req.Target); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSetValuation handles PUT /v1/kripke/models/:name/valuations.
func (h *Handlers) HandleSetValuation(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleSetValuation")

	var req SetValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	err := h.svc.SetValuation(c.Request.Context(), c.Param("name"), req.World, req.Proposition, req.Value)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSetDefaultValuation handles
// PUT /v1/kripke/models/:name/default-valuation.
func (h *Handlers) HandleSetDefaultValuation(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleSetDefaultValuation")

	var req SetDefaultValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if err := h.svc.SetDefaultValuation(c.Request.Context(), c.Param("name"), req.Value); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleClosure handles POST /v1/kripke/models/:name/closure.
//
// Request Body:
//
//	ClosureRequest
//
// Response:
//
//	200 OK: model.Snapshot (the model after closure)
//	400 Bad Request: Unknown closure operation
//	404 Not Found: Unknown model
func (h *Handlers) HandleClosure(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleClosure")

	var req ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	name := c.Param("name")
	if err := h.svc.ApplyClosure(c.Request.Context(), name, req.Operations); err != nil {
		respondError(c, logger, err)
		return
	}

	snap, err := h.svc.GetSnapshot(name)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	logger.Info("Applied closure", "model", name, "operations", req.Operations)
	c.JSON(http.StatusOK, snap)
}

// HandleValidate handles GET /v1/kripke/models/:name/validate.
func (h *Handlers) HandleValidate(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleValidate")

	valid, err := h.svc.Validate(c.Param("name"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: valid})
}

// HandleReachable handles GET /v1/kripke/models/:name/reachable.
//
// Query Parameters:
//
//	from      - starting world (required)
//	to        - target world (required)
//	max_steps - depth bound, negative for the default
func (h *Handlers) HandleReachable(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleReachable")

	var q ReachableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid query", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid query parameters",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	reachable, err := h.svc.Reachable(c.Param("name"), q.From, q.To, q.MaxSteps)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ReachableResponse{
		From:      q.From,
		To:        q.To,
		MaxSteps:  q.MaxSteps,
		Reachable: reachable,
	})
}

// HandleEval handles POST /v1/kripke/models/:name/eval.
//
// Request Body:
//
//	EvalRequest
//
// Response:
//
//	200 OK: EvalResponse
//	400 Bad Request: Parse error
//	404 Not Found: Unknown model or world
//	422 Unprocessable Entity: Structurally inconsistent model
func (h *Handlers) HandleEval(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleEval")

	var req EvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	canonical, result, err := h.svc.Evaluate(c.Request.Context(), c.Param("name"), req.Formula, req.World)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Evaluated formula",
		"model", c.Param("name"), "formula", canonical, "world", req.World, "result", result)
	c.JSON(http.StatusOK, EvalResponse{
		Formula: canonical,
		World:   req.World,
		Result:  result,
	})
}

// HandleEvalAll handles POST /v1/kripke/models/:name/eval-all.
func (h *Handlers) HandleEvalAll(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleEvalAll")

	var req EvalAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	canonical, results, err := h.svc.EvaluateAll(c.Request.Context(), c.Param("name"), req.Formula)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, EvalAllResponse{Formula: canonical, Results: results})
}

// HandleRender handles GET /v1/kripke/models/:name/render.
//
// Query Parameters:
//
//	format     - "dot" or "mermaid" (default "dot")
//	direction  - layout direction (default "LR")
//	valuations - include valuation labels (default true)
func (h *Handlers) HandleRender(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRender")

	var q RenderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid query", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid query parameters",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	opts := visualization.Options{
		Direction:      q.Direction,
		ShowValuations: q.Valuations,
	}
	content, err := h.svc.Render(c.Param("name"), visualization.OutputFormat(q.Format), &opts)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, RenderResponse{Format: q.Format, Content: content})
}

// HandleHealth handles GET /v1/kripke/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: ServiceVersion})
}

// HandleReady handles GET /v1/kripke/ready.
func (h *Handlers) HandleReady(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ready", Version: ServiceVersion})
}

// getOrCreateRequestID returns the X-Request-ID header, generating one
// when absent, and echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
