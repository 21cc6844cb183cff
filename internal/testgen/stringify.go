package testgen

import (
	"fmt"
	"strings"
)

// ArgTuple is one set of arguments a parameterised test body is invoked
// with. Tuples may be unary or N-ary; a zero-arg body uses no tuple at all
// (Declare builds its single leaf directly).
type ArgTuple []any

// ValueSource is a nullary function producing a sequence of argument tuples,
// evaluated eagerly at registration time.
type ValueSource func() []ArgTuple

// stringify renders a tuple as a deterministic, language-neutral,
// comma-separated, positional text - used to build the "(v1, v2, ...)"
// suffix of a generated leaf's name.
func stringify(tuple ArgTuple) string {
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		parts[i] = stringifyArg(v)
	}
	return strings.Join(parts, ", ")
}

func stringifyArg(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
