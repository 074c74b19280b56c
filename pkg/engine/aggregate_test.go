package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/engine"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// codeTranslator rewrites messages from a code-keyed map, interpolating the
// meta values into the template with Sprintf-style ordering ignored.
type codeTranslator map[string]string

func (ct codeTranslator) Translate(code, message string, meta map[string]any) string {
	tmpl, ok := ct[code]
	if !ok {
		return message
	}
	if min, ok := meta["min"]; ok {
		return fmt.Sprintf(tmpl, min)
	}
	return tmpl
}

func TestAggregate_Translator(t *testing.T) {
	t.Parallel()
	eng := engine.New(engine.WithTranslator(codeTranslator{
		"required":   "darf nicht fehlen",
		"string_min": "mindestens %v Zeichen",
	}))

	s := schema.New().
		Add("name", schema.String(schema.Required())).
		Add("bio", schema.String(schema.MinLen(10)))

	_, err := eng.Validate(context.Background(),
		map[string]any{"bio": "kurz"}, s)
	res, ok := engine.AsResult(err)
	require.True(t, ok)

	t.Run("messages translated by code", func(t *testing.T) {
		assert.Equal(t, []string{"darf nicht fehlen"}, res.Fields["name"])
		assert.Equal(t, []string{"mindestens 10 Zeichen"}, res.Fields["bio"])
	})

	t.Run("codes and meta survive translation", func(t *testing.T) {
		errs := res.Errors["bio"].(engine.Errors)
		assert.Equal(t, engine.CodeStringMin, errs[0].Code)
		assert.Equal(t, 10, errs[0].Meta["min"])
	})
}

func TestAggregate_FlattenedPaths(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	s := schema.New().
		Add("user", schema.Object(schema.New().
			Add("email", schema.String(schema.Required(), schema.Email())).
			Add("addresses", schema.Array(schema.Object(schema.New().
				Add("zip", schema.String(schema.Required())),
			))))).
		Add("tags", schema.Array(schema.String(schema.MinLen(3))))

	input := map[string]any{
		"user": map[string]any{
			"addresses": []any{
				map[string]any{"zip": "12345"},
				map[string]any{},
			},
		},
		"tags": []any{"good", "no"},
	}

	_, err := eng.Validate(context.Background(), input, s)
	res, ok := engine.AsResult(err)
	require.True(t, ok)

	assert.Contains(t, res.Fields, "user.email")
	assert.Contains(t, res.Fields, "user.addresses.1.zip")
	assert.Contains(t, res.Fields, "tags.1")
	assert.NotContains(t, res.Fields, "user.addresses.0.zip")
	assert.Equal(t, []string{"field is required"}, res.Fields["user.addresses.1.zip"])
}
