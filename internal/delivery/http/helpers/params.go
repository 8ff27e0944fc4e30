package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const dateOnly = "2006-01-02"

// PathID reads the named path value and checks it is a UUID. On failure it writes a 400 and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if err := uuid.Validate(id); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// ParseDateTime accepts RFC 3339 or a bare YYYY-MM-DD (midnight UTC).
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not an RFC 3339 timestamp or YYYY-MM-DD date", s)
	}
	return t, nil
}

// ParseDateRange reads start_date and end_date from the query string. A bare end date
// covers the whole day, so events later that day still match.
func ParseDateRange(r *http.Request) (start, end *time.Time, err error) {
	q := r.URL.Query()
	if s := q.Get("start_date"); s != "" {
		t, err := ParseDateTime(s)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date: %w", err)
		}
		start = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := ParseDateTime(s)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date: %w", err)
		}
		if len(s) == len(dateOnly) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = &t
	}
	return start, end, nil
}

// ParseLimit reads a positive integer query parameter, falling back to def when absent or malformed.
func ParseLimit(r *http.Request, name string, def int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			return v
		}
	}
	return def
}
