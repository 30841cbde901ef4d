// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis booking session keys.
const SessionKeyPrefix = "booking:session:"

// SubmitLockSuffix marks the per-session submission lock key.
const SubmitLockSuffix = ":submit"

// GeoCachePrefix is the prefix used for cached IP geolocation lookups.
const GeoCachePrefix = "geo:ip:"

// HealthCheckSpec is the cron schedule of the dependency health monitor.
const HealthCheckSpec = "@every 60s"

// ShutdownGrace bounds graceful HTTP shutdown.
const ShutdownGrace = 5 * time.Second
