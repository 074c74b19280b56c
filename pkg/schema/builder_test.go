package schema_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func TestBuilders_SetParameters(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		r := schema.String(schema.Required(), schema.MinLen(2), schema.MaxLen(5), schema.Email())
		assert.Equal(t, schema.TypeString, r.Type)
		assert.True(t, r.Required)
		require.NotNil(t, r.MinLen)
		assert.Equal(t, 2, *r.MinLen)
		require.NotNil(t, r.MaxLen)
		assert.Equal(t, 5, *r.MaxLen)
		assert.True(t, r.Email)
	})

	t.Run("pattern compiles eagerly", func(t *testing.T) {
		r := schema.String(schema.Pattern(`^\d+$`))
		require.NotNil(t, r.Pattern)
		assert.True(t, r.Pattern.MatchString("123"))

		assert.Panics(t, func() { schema.Pattern(`([`) })
	})

	t.Run("number", func(t *testing.T) {
		r := schema.Number(schema.Min(1), schema.Max(9), schema.Integer())
		assert.Equal(t, schema.TypeNumber, r.Type)
		assert.Equal(t, 1.0, *r.Min)
		assert.Equal(t, 9.0, *r.Max)
		assert.True(t, r.Integer)
	})

	t.Run("array", func(t *testing.T) {
		r := schema.Array(schema.String(),
			schema.MinItems(1), schema.MaxItems(4), schema.Unique(), schema.Delimiter(";"))
		require.NotNil(t, r.Of)
		assert.Equal(t, schema.TypeString, r.Of.Type)
		assert.Equal(t, 1, *r.MinItems)
		assert.Equal(t, 4, *r.MaxItems)
		assert.True(t, r.Unique)
		assert.Equal(t, ";", r.Delimiter)
	})

	t.Run("hook option attaches", func(t *testing.T) {
		r := schema.String(
			schema.WithHook(func(_ context.Context, _ any, _ map[string]any) error { return nil }),
		)
		assert.NotNil(t, r.Hook)
	})
}

func TestObject_RequiresSchema(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { schema.Object(nil) })

	r := schema.Object(schema.New().Add("x", schema.String()))
	require.NotNil(t, r.Fields)
	assert.Equal(t, 1, r.Fields.Len())
}

func TestCustom_RequiresName(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { schema.Custom("") })
	assert.Equal(t, "uuid", schema.Custom("uuid").CustomType)
}

func TestWhen_Builder(t *testing.T) {
	t.Parallel()

	t.Run("builds conditional with branches", func(t *testing.T) {
		r := schema.When("role").
			Is("admin").
			Then(schema.String(schema.Required())).
			Else(schema.String()).
			Rule()

		assert.Equal(t, schema.TypeConditional, r.Type)
		require.NotNil(t, r.When)
		assert.Equal(t, "role", r.When.Field)
		assert.True(t, r.When.IsSet)
		require.NotNil(t, r.When.Then)
		require.NotNil(t, r.When.Otherwise)
	})

	t.Run("panics without checks", func(t *testing.T) {
		assert.Panics(t, func() {
			schema.When("role").Then(schema.String()).Rule()
		})
	})

	t.Run("panics without then branch", func(t *testing.T) {
		assert.Panics(t, func() {
			schema.When("role").Is("admin").Rule()
		})
	})

	t.Run("panics on empty field", func(t *testing.T) {
		assert.Panics(t, func() { schema.When("") })
	})

	t.Run("hook timeout override", func(t *testing.T) {
		r := schema.String(schema.WithHookTimeout(50 * time.Millisecond))
		assert.Equal(t, 50*time.Millisecond, r.HookTimeout)
	})
}
