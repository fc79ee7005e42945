// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/registhor/internal/auth"
	"github.com/tomtom215/registhor/internal/middleware"
	"github.com/tomtom215/registhor/internal/models"
)

// Router wires the handlers, the key check and the Chi middleware.
type Router struct {
	handler         *Handler
	auth            *auth.APIKeyAuth
	chiMiddleware   *ChiMiddleware
	commentsEnabled bool
}

// NewRouter creates a router. The comments routes are mounted only when the
// feature is enabled in the handler's configuration.
func NewRouter(handler *Handler, keyAuth *auth.APIKeyAuth, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(ChiMiddlewareConfigFrom(handler.config))
	}
	return &Router{
		handler:         handler,
		auth:            keyAuth,
		chiMiddleware:   chiMW,
		commentsEnabled: handler.config.Features.Comments,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP) // Extract real IP from X-Forwarded-For
	r.Use(middleware.RequestLogger(middleware.DefaultSlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Compression)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusNotFound, models.Failure(models.StatusNotFound, "NOT FOUND"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, models.Failure(models.StatusInvalidRequest, "Method not allowed."))
	})

	// ========================
	// Operational Endpoints (no API key)
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Data Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.auth.Middleware)

		r.Route("/offerings", func(r chi.Router) {
			r.Get("/offering-information", router.handler.OfferingInformation)
			r.Get("/counts-by-city", router.handler.OfferingCountsByCity)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/course-codes", router.handler.CourseCodes)
			r.Get("/department-codes", router.handler.DepartmentCodes)
			r.Get("/training-locations", router.handler.TrainingLocations)
		})

		r.Route("/departments/mandatory-courses", func(r chi.Router) {
			r.Get("/", router.handler.MandatoryCourses)
			r.Post("/", router.handler.AddMandatoryCourse)
			r.Delete("/", router.handler.RemoveMandatoryCourse)
		})

		r.Route("/evalhalla", func(r chi.Router) {
			r.Get("/cities", router.handler.LearnerCities)
			r.Get("/classifications", router.handler.LearnerClassifications)
			r.Get("/departments", router.handler.BillingDepartments)
		})

		r.Route("/tombstone/{course_code}", func(r chi.Router) {
			r.Get("/", router.handler.Tombstone)
			r.Get("/{course_attr}", router.handler.TombstoneAttr)
		})

		if router.commentsEnabled {
			r.Route("/comments", func(r chi.Router) {
				r.Get("/course-codes/{short_question}", router.handler.CommentCourseCodes)
				r.Get("/counts/{short_question}", router.handler.CommentStarCounts)
				r.Get("/text/{short_question}", router.handler.Comments)
			})
		}
	})

	return r
}
