package engine

import (
	"context"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// checkObject ensures the value is a record and validates it against the
// rule's nested schema. Nested errors surface under the field's key
// unmodified; nested conditionals resolve against the nested record.
func (e *Engine) checkObject(ctx context.Context, run *runState, rule schema.Rule, value any) (any, any) {
	record, ok := asRecord(value)
	if !ok {
		return nil, Errors{NewError(CodeObject, "must be an object", nil)}
	}

	out, tree := e.validateSchema(ctx, run, rule.Fields, record)
	if len(tree) > 0 {
		return nil, tree
	}
	return out, nil
}
