// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/registhor/internal/cache"
	"github.com/tomtom215/registhor/internal/config"
	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/models"
	"github.com/tomtom215/registhor/internal/normalize"
)

// Version is reported by /health. Release builds set it with
// -ldflags "-X github.com/tomtom215/registhor/internal/api.Version=...".
var Version = "dev"

// Store is the data access the handlers need. *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	Driver() string
	BreakerState() string

	Offerings(ctx context.Context, f database.OfferingFilter) ([]database.OfferingRow, error)
	OfferingCountsByCity(ctx context.Context, f database.OfferingFilter) ([]models.LocationCount, error)

	CourseCodes(ctx context.Context, lang string) ([]models.CourseCode, error)
	Departments(ctx context.Context, lang string) ([]models.DepartmentCode, error)
	TrainingLocations(ctx context.Context, lang, departmentCode string) ([]models.LocationCount, error)
	DepartmentExists(ctx context.Context, code string) (bool, error)
	CourseExists(ctx context.Context, code string) (bool, error)

	MandatoryCourseCodes(ctx context.Context, departmentCode string) ([]string, error)
	AddMandatoryCourse(ctx context.Context, departmentCode, courseCode string) error
	RemoveMandatoryCourse(ctx context.Context, departmentCode, courseCode string) error

	LearnerCities(ctx context.Context, lang string) ([]database.LearnerCity, error)
	LearnerClassifications(ctx context.Context) ([]string, error)
	BillingDepartments(ctx context.Context, lang string) ([]string, error)

	Tombstone(ctx context.Context, courseCode string) (*models.CourseTombstone, error)
	TombstoneAttr(ctx context.Context, courseCode, attr string) (string, error)

	CommentCourseCodes(ctx context.Context, f database.CommentFilter) ([]string, error)
	CommentStarCounts(ctx context.Context, f database.CommentFilter) (models.StarCounts, error)
	Comments(ctx context.Context, f database.CommentFilter) ([]models.Comment, error)
}

var _ Store = (*database.DB)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by route group:
//   - handlers_offerings.go: offerings dashboard
//   - handlers_registrations.go: registration lookups and training locations
//   - handlers_departments.go: mandatory courses (the only writes)
//   - handlers_evalhalla.go: survey filter lists
//   - handlers_tombstone.go: course catalogue entries
//   - handlers_comments.go: survey comments (feature flagged)
//   - handlers_health.go: health probes
type Handler struct {
	db        Store
	config    *config.Config
	cache     cache.Store // nil disables response caching
	flight    singleflight.Group
	startTime time.Time
	now       func() time.Time

	colors          normalize.ColorRules
	junkDeptCodes   normalize.Junk
	junkDepartments normalize.Junk
	junkCities      normalize.Junk
}

// NewHandler creates the API handler. store may be nil to serve every
// request straight from the database.
func NewHandler(db Store, cfg *config.Config, store cache.Store) *Handler {
	return &Handler{
		db:        db,
		config:    cfg,
		cache:     store,
		startTime: time.Now(),
		now:       time.Now,
		colors: normalize.ColorRules{
			ConfirmedThreshold: cfg.Offerings.ConfirmedThreshold,
			UpcomingDays:       cfg.Offerings.UpcomingDays,
		},
		junkDeptCodes:   normalize.NewJunk(cfg.Lookups.JunkDepartmentCodes),
		junkDepartments: normalize.NewJunk(cfg.Lookups.JunkDepartments),
		junkCities:      normalize.NewJunk(cfg.Lookups.JunkCities),
	}
}

// ClearCache drops every cached response. Failures are logged; stale
// entries expire with the TTL anyway.
func (h *Handler) ClearCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Clear(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("backend", h.cache.Backend()).Msg("Failed to clear response cache")
	}
}

func (h *Handler) cacheBackend() string {
	if h.cache == nil {
		return "disabled"
	}
	return h.cache.Backend()
}
