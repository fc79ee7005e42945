// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package api implements the Registhor HTTP surface on the Chi router.

# Routes

All /api/v1 routes require ?key= and are rate limited per client IP:

	GET    /api/v1/offerings/offering-information
	GET    /api/v1/offerings/counts-by-city
	GET    /api/v1/registrations/course-codes
	GET    /api/v1/registrations/department-codes
	GET    /api/v1/registrations/training-locations
	GET    /api/v1/departments/mandatory-courses
	POST   /api/v1/departments/mandatory-courses
	DELETE /api/v1/departments/mandatory-courses
	GET    /api/v1/evalhalla/{cities,classifications,departments}
	GET    /api/v1/tombstone/{course_code}
	GET    /api/v1/tombstone/{course_code}/{course_attr}
	GET    /api/v1/comments/{course-codes,counts,text}/{short_question}

The comments routes exist only with features.comments enabled. /health,
/health/live and /metrics need no key.

# Responses

Every body is a models.Envelope. Missing arguments answer 400
INVALID_REQUEST, malformed ones 406, store failures 500 (503 while the
circuit breaker is open) and an absent tombstone 404 NOT FOUND.

Lookup lists and tombstones are served through the response cache
(internal/cache). Concurrent misses on one key share a single store query
and the X-Cache header reports HIT or MISS. Mandatory course writes clear
the cache.

Values leave the store raw; handlers clean titles, drop junk lookup values,
translate French labels and cluster map locations (internal/cluster) before
encoding.
*/
package api
