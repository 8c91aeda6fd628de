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
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/kripke/services/kripke/model"
)

// MaxNameLength bounds model names, world ids, and proposition names
// accepted over HTTP. The in-memory model itself only rejects empty
// strings; the service is stricter so names stay usable in URLs,
// formulas, and rendered output.
const MaxNameLength = 128

// kripkeValidate is the validator instance for request types.
// Initialized in init() with custom validators.
var kripkeValidate *validator.Validate

func init() {
	kripkeValidate = validator.New()
	_ = kripkeValidate.RegisterValidation("identifier", validateIdentifier)
}

// validateIdentifier accepts non-empty strings up to MaxNameLength with
// no whitespace or control characters. Applies to model names, world
// ids, and proposition names.
func validateIdentifier(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > MaxNameLength {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// CreateModelRequest is the body for POST /v1/kripke/models.
type CreateModelRequest struct {
	// Name is the model's identifier.
	Name string `json:"name" binding:"required" validate:"identifier"`
}

// Validate validates the request beyond binding.
func (r *CreateModelRequest) Validate() error {
	return kripkeValidate.Struct(r)
}

// ImportModelRequest is the body for PUT /v1/kripke/models/:name.
type ImportModelRequest struct {
	// Snapshot is the model content to import.
	Snapshot *model.Snapshot `json:"snapshot" binding:"required"`

	// Overwrite allows replacing an existing model of the same name.
	Overwrite bool `json:"overwrite"`
}

// AddWorldRequest is the body for POST /v1/kripke/models/:name/worlds.
type AddWorldRequest struct {
	// ID is the world identifier.
	ID string `json:"id" binding:"required" validate:"identifier"`
}

// Validate validates the request beyond binding.
func (r *AddWorldRequest) Validate() error {
	return kripkeValidate.Struct(r)
}

// AddRelationRequest is the body for POST /v1/kripke/models/:name/relations.
// The same shape is used for DELETE on the same path.
type AddRelationRequest struct {
	// Source is the world the relation leaves from.
	Source string `json:"source" binding:"required" validate:"identifier"`

	// Target is the world the relation points to.
	Target string `json:"target" binding:"required" validate:"identifier"`
}

// Validate validates the request beyond binding.
func (r *AddRelationRequest) Validate() error {
	return kripkeValidate.Struct(r)
}

// SetValuationRequest is the body for PUT /v1/kripke/models/:name/valuations.
type SetValuationRequest struct {
	// World is the world being assigned.
	World string `json:"world" binding:"required" validate:"identifier"`

	// Proposition is the atomic proposition name.
	Proposition string `json:"proposition" binding:"required" validate:"identifier"`

	// Value is the truth value.
	Value bool `json:"value"`
}

// Validate validates the request beyond binding.
func (r *SetValuationRequest) Validate() error {
	return kripkeValidate.Struct(r)
}

// SetDefaultValuationRequest is the body for
// PUT /v1/kripke/models/:name/default-valuation.
type SetDefaultValuationRequest struct {
	// Value is the fallback truth value for unassigned propositions.
	Value bool `json:"value"`
}

// ClosureRequest is the body for POST /v1/kripke/models/:name/closure.
type ClosureRequest struct {
	// Operations lists closures to apply in order: "reflexive",
	// "symmetric", "transitive".
	Operations []string `json:"operations" binding:"required,min=1"`
}

// EvalRequest is the body for POST /v1/kripke/models/:name/eval.
type EvalRequest struct {
	// Formula is the modal formula text, e.g. "□(p → q)" or "[](p -> q)".
	Formula string `json:"formula" binding:"required"`

	// World is the world to evaluate at.
	World string `json:"world" binding:"required"`
}

// EvalAllRequest is the body for POST /v1/kripke/models/:name/eval-all.
type EvalAllRequest struct {
	// Formula is the modal formula text.
	Formula string `json:"formula" binding:"required"`
}

// ReachableQuery is the query string for
// GET /v1/kripke/models/:name/reachable.
type ReachableQuery struct {
	// From is the starting world.
	From string `form:"from" binding:"required"`

	// To is the target world.
	To string `form:"to" binding:"required"`

	// MaxSteps bounds the search depth. Negative means the default bound.
	MaxSteps int `form:"max_steps,default=-1"`
}

// RenderQuery is the query string for GET /v1/kripke/models/:name/render.
type RenderQuery struct {
	// Format is the output format: "dot" or "mermaid".
	Format string `form:"format,default=dot"`

	// Direction is the graph layout direction.
	Direction string `form:"direction,default=LR"`

	// Valuations toggles valuation labels on world nodes.
	Valuations bool `form:"valuations,default=true"`
}

// ModelSummary describes one model in list responses.
type ModelSummary struct {
	// Name is the model's identifier.
	Name string `json:"name"`

	// Worlds is the number of worlds.
	Worlds int `json:"worlds"`

	// Relations is the number of accessibility pairs.
	Relations int `json:"relations"`
}

// ListModelsResponse is the response for GET /v1/kripke/models.
type ListModelsResponse struct {
	// Models lists all models, sorted by name.
	Models []ModelSummary `json:"models"`
}

// EvalResponse is the response for a single-world evaluation.
type EvalResponse struct {
	// Formula is the parsed formula rendered in canonical form.
	Formula string `json:"formula"`

	// World is the world evaluated at.
	World string `json:"world"`

	// Result is the truth value.
	Result bool `json:"result"`
}

// EvalAllResponse is the response for an all-worlds evaluation.
type EvalAllResponse struct {
	// Formula is the parsed formula rendered in canonical form.
	Formula string `json:"formula"`

	// Results maps world id to truth value.
	Results map[string]bool `json:"results"`
}

// ReachableResponse is the response for a reachability query.
type ReachableResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	MaxSteps  int    `json:"max_steps"`
	Reachable bool   `json:"reachable"`
}

// ValidateResponse reports structural consistency of a model.
type ValidateResponse struct {
	// Valid is true when every relation endpoint and valuation world
	// exists in the world set.
	Valid bool `json:"valid"`
}

// RenderResponse carries a rendered model.
type RenderResponse struct {
	// Format is the output format that was produced.
	Format string `json:"format"`

	// Content is the rendered text.
	Content string `json:"content"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`
}

// HealthResponse is the response for health and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
