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
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for workbench operations.
var meter = otel.Meter("aleutian.kripke")

// Metrics for model mutations and formula evaluations.
var (
	mutationLatency metric.Float64Histogram
	mutationTotal   metric.Int64Counter
	evalLatency     metric.Float64Histogram
	evalTotal       metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		mutationLatency, err = meter.Float64Histogram(
			"kripke_mutation_duration_seconds",
			metric.WithDescription("Duration of model mutation operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		mutationTotal, err = meter.Int64Counter(
			"kripke_mutation_total",
			metric.WithDescription("Total number of model mutation operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		evalLatency, err = meter.Float64Histogram(
			"kripke_eval_duration_seconds",
			metric.WithDescription("Duration of formula evaluations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		evalTotal, err = meter.Int64Counter(
			"kripke_eval_total",
			metric.WithDescription("Total number of formula evaluations"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordMutation records metrics for a model mutation.
func recordMutation(ctx context.Context, op string, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("success", success),
	)
	mutationLatency.Record(ctx, duration.Seconds(), attrs)
	mutationTotal.Add(ctx, 1, attrs)
}

// recordEvaluation records metrics for a formula evaluation.
func recordEvaluation(ctx context.Context, mode string, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("success", success),
	)
	evalLatency.Record(ctx, duration.Seconds(), attrs)
	evalTotal.Add(ctx, 1, attrs)
}
