package profile

// DefaultMaxBytes is used whenever a non-positive limit is configured.
const DefaultMaxBytes int64 = 20 << 20

// EffectiveLimit returns limit, or DefaultMaxBytes when limit is not positive.
func EffectiveLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxBytes
	}
	return limit
}

// CheckSize rejects inputs larger than limit before any parsing happens.
func CheckSize(size, limit int64) error {
	limit = EffectiveLimit(limit)
	if size > limit {
		return &PayloadTooLargeError{Size: size, Limit: limit}
	}
	return nil
}
