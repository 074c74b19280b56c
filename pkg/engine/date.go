package engine

import (
	"strings"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// dateLayouts are tried in order when coercing a string: full ISO-8601
// date-time, then the naive date-time form without a zone, then date-only.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// checkDate ensures the value is a time.Time. In convert mode ISO-8601
// strings are parsed and normalized to UTC; without convert only structured
// values pass.
func (e *Engine) checkDate(rule schema.Rule, value any, convert bool) (any, any) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	if convert {
		if s, ok := value.(string); ok {
			s = strings.TrimSpace(s)
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t.UTC(), nil
				}
			}
		}
	}
	return nil, Errors{NewError(CodeDate, "must be a valid date", nil)}
}
