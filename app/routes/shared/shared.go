// Package shared holds request parsing and response helpers used by every route package.
package shared

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/database"
	"nfm-facility/app/metrics"
	"nfm-facility/app/reports"
)

const DateLayout = "2006-01-02"

// Location is the site's business timezone. main sets it from configuration.
var Location = time.UTC

// Now returns the current time in the site timezone.
func Now() time.Time {
	return time.Now().In(Location)
}

// Fail writes the standard JSON error body.
func Fail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"success": false, "error": msg})
}

// InputError is a request parameter problem reported to the caller as 400.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Invalid builds an InputError.
func Invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// StoreFailure maps data-access and input errors onto HTTP responses. A failed query is never
// reported as an empty result.
func StoreFailure(c *fiber.Ctx, err error) error {
	var input *InputError
	switch {
	case errors.As(err, &input):
		return Fail(c, fiber.StatusBadRequest, input.Msg)
	case errors.Is(err, database.ErrNotFound):
		return Fail(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, database.ErrDuplicate):
		return Fail(c, fiber.StatusConflict, "Record already exists")
	case errors.Is(err, database.ErrReference):
		return Fail(c, fiber.StatusBadRequest, "Referenced record does not exist")
	case errors.Is(err, aggregation.ErrInvalidRange):
		return Fail(c, fiber.StatusBadRequest, "Start date cannot be after End date.")
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return Fail(c, fiber.StatusServiceUnavailable, "could not reach database")
}

// PageFailure is StoreFailure for rendered pages: it returns a fiber error for the error handler
// to render instead of writing JSON.
func PageFailure(c *fiber.Ctx, err error) error {
	var input *InputError
	switch {
	case errors.As(err, &input):
		return fiber.NewError(fiber.StatusBadRequest, input.Msg)
	case errors.Is(err, aggregation.ErrInvalidRange):
		return fiber.NewError(fiber.StatusBadRequest, "Start date cannot be after End date.")
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Record not found")
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return fiber.NewError(fiber.StatusServiceUnavailable, "could not reach database")
}

// Month reads ?year=&month= (defaulting to the current month) and returns the month's first and last day.
func Month(c *fiber.Ctx) (year, month int, start, end time.Time, err error) {
	now := Now()
	year, month = now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil || year < 2000 || year > 2100 {
			return 0, 0, start, end, Invalid("invalid year %q", v)
		}
	}
	if v := c.Query("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			return 0, 0, start, end, Invalid("invalid month %q", v)
		}
	}
	start, end = MonthBounds(year, month)
	return year, month, start, end, nil
}

// MonthBounds returns the first and last calendar day of a month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// Today is the current site date at midnight UTC, comparable with parsed query dates.
func Today() time.Time {
	n := Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Range reads ?from=&to= as dates. A missing from is the first of the month; a missing to is
// today while today falls inside that month, else the month's last day.
func Range(c *fiber.Ctx) (start, end time.Time, err error) {
	_, _, start, end, err = Month(c)
	if err != nil {
		return start, end, err
	}
	if v := c.Query("from"); v != "" {
		if start, err = time.Parse(DateLayout, v); err != nil {
			return start, end, Invalid("invalid from date %q, use YYYY-MM-DD", v)
		}
	}
	if v := c.Query("to"); v != "" {
		if end, err = time.Parse(DateLayout, v); err != nil {
			return start, end, Invalid("invalid to date %q, use YYYY-MM-DD", v)
		}
	} else if today := Today(); !today.After(end) && !today.Before(start) {
		end = today
	}
	if start.After(end) {
		return start, end, aggregation.ErrInvalidRange
	}
	return start, end, nil
}

// Bool reads a boolean query parameter, falling back to def when absent or malformed.
func Bool(c *fiber.Ctx, key string, def bool) bool {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// ID validates a UUID path parameter.
func ID(c *fiber.Ctx, key string) (string, bool) {
	id := c.Params(key)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// OptionalID normalizes an optional UUID reference: empty means none.
func OptionalID(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(*s); err != nil {
		return nil, Invalid("invalid id %q", *s)
	}
	return s, nil
}

// Download sends t as an attachment and archives a copy in dataDir. Archive failures are logged only.
func Download(c *fiber.Ctx, t reports.Table, f reports.Format, name, dataDir string) error {
	data, err := reports.Render(t, f)
	if err != nil {
		log.Printf("render %s: %v", name, err)
		return Fail(c, fiber.StatusInternalServerError, "Failed to build report")
	}
	if dataDir != "" {
		if path, err := reports.Save(dataDir, name, data); err != nil {
			log.Printf("Warning: could not archive %s: %v", name, err)
		} else {
			log.Printf("Report saved to %s", path)
		}
	}
	metrics.ReportsGenerated.WithLabelValues(strings.ToLower(t.Title)).Inc()
	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
