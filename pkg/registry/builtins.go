package registry

import (
	"context"
	"net"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schemakit/pkg/engine"
)

// builtins returns the validators preloaded by WithBuiltins. Each accepts
// only string input and reports failures with the "custom" code so callers
// can translate them like any other entry.
func builtins() map[string]engine.CustomValidator {
	return map[string]engine.CustomValidator{
		"uuid": checkAdapter(validUUID),
		"url":  checkAdapter(validURL),
		"ip":   checkAdapter(validIP),
	}
}

func validUUID(_ context.Context, value any) error {
	s, ok := value.(string)
	if !ok {
		return engine.NewError(engine.CodeCustom, "must be a valid UUID",
			map[string]any{"type": "uuid"})
	}

	// Fast rejection before parsing: canonical UUIDs are 36 bytes with
	// fixed hyphen positions.
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return engine.NewError(engine.CodeCustom, "must be a valid UUID",
			map[string]any{"type": "uuid"})
	}
	if _, err := uuid.Parse(s); err != nil {
		return engine.NewError(engine.CodeCustom, "must be a valid UUID",
			map[string]any{"type": "uuid"})
	}
	return nil
}

func validURL(_ context.Context, value any) error {
	s, ok := value.(string)
	if !ok {
		return invalidURL()
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalidURL()
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidURL()
	}
	return nil
}

func invalidURL() error {
	return engine.NewError(engine.CodeCustom, "must be a valid URL",
		map[string]any{"type": "url"})
}

func validIP(_ context.Context, value any) error {
	s, ok := value.(string)
	if !ok || net.ParseIP(strings.TrimSpace(s)) == nil {
		return engine.NewError(engine.CodeCustom, "must be a valid IP address",
			map[string]any{"type": "ip"})
	}
	return nil
}
