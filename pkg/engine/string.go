package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// emailRegex matches localpart@domain.tld addresses for web use. It is
// deliberately stricter than RFC 5322: quoted local parts and dotless
// domains are rejected.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

// checkString ensures the value is a string, normalizes whitespace in
// convert mode, and collects every constraint violation in declaration
// order: min, max, pattern, email.
func (e *Engine) checkString(rule schema.Rule, value any, convert bool) (any, any) {
	s, ok := value.(string)
	if !ok {
		return nil, Errors{NewError(CodeString, "must be a string", nil)}
	}
	if convert {
		s = strings.Join(strings.Fields(s), " ")
	}

	var errs Errors
	if rule.MinLen != nil && len(s) < *rule.MinLen {
		errs = append(errs, NewError(CodeStringMin,
			fmt.Sprintf("must be at least %d characters long", *rule.MinLen),
			map[string]any{"min": *rule.MinLen}))
	}
	if rule.MaxLen != nil && len(s) > *rule.MaxLen {
		errs = append(errs, NewError(CodeStringMax,
			fmt.Sprintf("must be at most %d characters long", *rule.MaxLen),
			map[string]any{"max": *rule.MaxLen}))
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
		errs = append(errs, NewError(CodeStringPattern,
			"has an invalid format",
			map[string]any{"pattern": rule.Pattern.String()}))
	}
	if rule.Email && !emailRegex.MatchString(s) {
		errs = append(errs, NewError(CodeStringEmail,
			"must be a valid email address", nil))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return s, nil
}
