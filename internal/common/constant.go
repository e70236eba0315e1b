package common

// AccessTokenHeaderName is the HTTP header used to carry the access token
// on authenticated requests.
const AccessTokenHeaderName = "Authorization"

// DateLayout is the calendar-day format used for cache keys and the
// daily_updates table. Advice caching is keyed by this value, not by a
// rolling duration.
const DateLayout = "2006-01-02"
