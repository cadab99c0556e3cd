package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

type durationCheck struct {
	ok   func(time.Duration) bool
	rule string
}

var (
	positive    = durationCheck{func(d time.Duration) bool { return d > 0 }, "> 0"}
	nonNegative = durationCheck{func(d time.Duration) bool { return d >= 0 }, ">= 0"}
)

// envReader reads typed variables and collects every problem it meets so
// Load can report them together. A blank variable means "use the default".
type envReader struct {
	errs []error
}

func (r *envReader) fail(format string, args ...any) {
	r.errs = append(r.errs, fmt.Errorf("%w: "+format, append([]any{errInvalid}, args...)...))
}

func (r *envReader) require(ok bool, msg string) {
	if !ok {
		r.fail("%s", msg)
	}
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (r *envReader) str(key, fallback string) string {
	if value, ok := r.lookup(key); ok {
		return value
	}
	return fallback
}

func (r *envReader) oneOf(key, fallback string, allowed ...string) string {
	value := strings.ToLower(r.str(key, fallback))
	if !slices.Contains(allowed, value) {
		r.fail("%s %q: valid values are %s", key, value, strings.Join(allowed, ", "))
	}
	return value
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	return value
}

func (r *envReader) integer(key string, fallback, min int) int {
	return int(r.integer64(key, int64(fallback), int64(min)))
}

func (r *envReader) integer64(key string, fallback, min int64) int64 {
	raw, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	if value < min {
		r.fail("%s must be >= %d", key, min)
	}
	return value
}

func (r *envReader) duration(key string, fallback time.Duration, check durationCheck) time.Duration {
	raw, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	if !check.ok(value) {
		r.fail("%s must be %s", key, check.rule)
	}
	return value
}
