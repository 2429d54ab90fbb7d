package timezone

import "time"

// The service-wide fallback for firms without a timezone of their own.
// Configured once at startup; UTC until then.
var defaultTZ = "UTC"

// SetDefault installs the fallback timezone. Invalid names are ignored
// and the previous value stays in effect.
func SetDefault(tz string) {
	if IsValid(tz) {
		defaultTZ = tz
	}
}

func Default() string {
	return defaultTZ
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(defaultTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(defaultTZ))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
