// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// UnreadCachePrefix keys the cached unread-notification count per user.
const UnreadCachePrefix = "unread:"

// UnreadCacheTTL bounds how stale a cached unread count may get.
const UnreadCacheTTL = 5 * time.Minute
