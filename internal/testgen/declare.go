package testgen

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"muster/internal/testgraph"
)

// Declaration is the input to Declare: a textual test declaration, ready to
// be expanded into a subtree.
type Declaration struct {
	Name string
	File string
	Line int

	// Body is the test function. It must be a func value taking zero or
	// more value-comparable parameters and returning nothing.
	Body any

	ValueCases   []ArgTuple
	ValueSources []ValueSource

	Concurrency testgraph.Concurrency
	Timeout     time.Duration
}

// Declare expands one Declaration into a subtree rooted at Name, per
// spec.md 4.2:
//
//  1. gather all argument tuples from ValueSources (evaluated eagerly, in
//     order, then concatenated) followed by ValueCases;
//  2. if Body takes no parameters, produce a single leaf whose Definition
//     runs Body directly - the returned Node IS the leaf;
//  3. otherwise synthesise one closed-over leaf per tuple, named
//     "Name(v1, v2, ...)", all attached as children of a category node
//     named Name.
//
// Declare fails if Body takes parameters but zero tuples were gathered -
// a declaration asking for arguments but providing no data is a
// programmer error, caught at registration time rather than silently
// producing an empty subtree.
func Declare(d Declaration) (*testgraph.Node, error) {
	bodyVal := reflect.ValueOf(d.Body)
	bodyType := bodyVal.Type()
	if bodyType.Kind() != reflect.Func {
		return nil, fmt.Errorf("testgen: Body for %q is not a function", d.Name)
	}

	if bodyType.NumIn() == 0 {
		node := testgraph.NewNode(d.Name, d.File, d.Line)
		node.Definition = &testgraph.Definition{
			Run:         func() { bodyVal.Call(nil) },
			Node:        node,
			Concurrency: d.Concurrency,
			Timeout:     d.Timeout,
		}
		return node, nil
	}

	tuples := gatherTuples(d)
	if len(tuples) == 0 {
		return nil, fmt.Errorf("testgen: %q takes %d argument(s) but no ValueCase or ValueSource produced any tuples", d.Name, bodyType.NumIn())
	}

	root := testgraph.NewNode(d.Name, d.File, d.Line)
	seen := make(map[string]bool, len(tuples))

	for _, tuple := range tuples {
		name := disambiguate(d.Name, stringify(tuple), seen)
		leaf := testgraph.NewNode(name, d.File, d.Line)

		args, err := reflectArgs(bodyType, tuple)
		if err != nil {
			return nil, fmt.Errorf("testgen: %q: %w", name, err)
		}

		leaf.Definition = &testgraph.Definition{
			Run:         func() { bodyVal.Call(args) },
			Node:        leaf,
			Concurrency: d.Concurrency,
			Timeout:     d.Timeout,
		}
		root.AddChild(leaf)
	}

	return root, nil
}

func gatherTuples(d Declaration) []ArgTuple {
	var tuples []ArgTuple
	for _, source := range d.ValueSources {
		tuples = append(tuples, source()...)
	}
	tuples = append(tuples, d.ValueCases...)
	return tuples
}

// disambiguate returns label, or label with a short uuid-derived suffix if
// label has already been produced by an earlier tuple in this declaration -
// the tie-breaker the deterministic-stringification rule leaves unspecified
// for tuples whose printed form collides (e.g. two distinct struct values
// with the same %v rendering).
func disambiguate(declName, label string, seen map[string]bool) string {
	full := fmt.Sprintf("%s(%s)", declName, label)
	if !seen[full] {
		seen[full] = true
		return full
	}
	full = fmt.Sprintf("%s(%s)#%s", declName, label, uuid.NewString()[:8])
	seen[full] = true
	return full
}

func reflectArgs(bodyType reflect.Type, tuple ArgTuple) ([]reflect.Value, error) {
	if len(tuple) != bodyType.NumIn() {
		return nil, fmt.Errorf("argument tuple has %d value(s), body takes %d", len(tuple), bodyType.NumIn())
	}

	args := make([]reflect.Value, len(tuple))
	for i, v := range tuple {
		want := bodyType.In(i)
		val := reflect.ValueOf(v)
		if !val.Type().AssignableTo(want) {
			if !val.Type().ConvertibleTo(want) {
				return nil, fmt.Errorf("argument %d: cannot use %v (%T) as %s", i, v, v, want)
			}
			val = val.Convert(want)
		}
		args[i] = val
	}
	return args, nil
}
