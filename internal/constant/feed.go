package constant

const (
	// Feed page size bounds. Requests outside the range are clamped, not rejected.
	DEFAULT_LIMIT = 10
	MIN_LIMIT     = 1
	MAX_LIMIT     = 50

	// Post content length bounds, counted after trimming whitespace.
	MAX_CONTENT_LENGTH = 280
)
