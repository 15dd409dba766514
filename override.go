package structmap

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/expr-lang/expr"
	"github.com/viant/structmap/conv"
)

// Overrides supplies values for target members ahead of pair copying.
// Overridden names are excluded from name matching.
type Overrides interface {
	entries() []override
}

type override struct {
	name  string
	value func(src any) (any, error)
}

type (
	// ValueMap overrides target members with constants
	ValueMap map[string]any

	// FuncMap overrides target members with values computed from the source
	FuncMap[S any] map[string]func(S) any

	// NamedValue represents a constant override
	NamedValue struct {
		Name  string
		Value any
	}

	// ValueList overrides target members with constants; the first entry of a name wins
	ValueList []NamedValue

	// NamedFunc represents a source derived override
	NamedFunc[S any] struct {
		Name string
		Func func(S) (any, error)
	}

	// FuncList overrides target members with source derived values; the first entry of a name wins
	FuncList[S any] []NamedFunc[S]
)

// Value creates a constant override
func Value(name string, value any) NamedValue {
	return NamedValue{Name: name, Value: value}
}

// From creates a source derived override
func From[S any](name string, fn func(S) any) NamedFunc[S] {
	return NamedFunc[S]{Name: name, Func: func(src S) (any, error) {
		return fn(src), nil
	}}
}

// Expr creates a source derived override from an expr-lang expression evaluated with the source as environment
//
//	structmap.Expr[User]("FullName", `First + " " + Last`)
func Expr[S any](name string, expression string) (NamedFunc[S], error) {
	var compileOptions []expr.Option
	var zero S
	if rType := reflect.TypeOf(zero); rType != nil && rType.Kind() == reflect.Struct {
		compileOptions = append(compileOptions, expr.Env(zero))
	}
	program, err := expr.Compile(expression, compileOptions...)
	if err != nil {
		return NamedFunc[S]{}, fmt.Errorf("failed to compile %v expression: %w", name, err)
	}
	return NamedFunc[S]{Name: name, Func: func(src S) (any, error) {
		return expr.Run(program, src)
	}}, nil
}

func (m ValueMap) entries() []override {
	result := make([]override, 0, len(m))
	for _, name := range sortedKeys(m) {
		value := m[name]
		result = append(result, override{name: name, value: constant(value)})
	}
	return result
}

func (m FuncMap[S]) entries() []override {
	result := make([]override, 0, len(m))
	for _, name := range sortedKeys(m) {
		fn := m[name]
		result = append(result, override{name: name, value: func(src any) (any, error) {
			source, err := sourceAs[S](src)
			if err != nil {
				return nil, err
			}
			return fn(source), nil
		}})
	}
	return result
}

func (l ValueList) entries() []override {
	result := make([]override, 0, len(l))
	for _, item := range l {
		result = append(result, override{name: item.Name, value: constant(item.Value)})
	}
	return result
}

func (l FuncList[S]) entries() []override {
	result := make([]override, 0, len(l))
	for _, item := range l {
		fn := item.Func
		result = append(result, override{name: item.Name, value: func(src any) (any, error) {
			source, err := sourceAs[S](src)
			if err != nil {
				return nil, err
			}
			return fn(source)
		}})
	}
	return result
}

// resolveOverrides flattens overrides in order; the first entry of a name wins
func resolveOverrides(overrides []Overrides) ([]override, map[string]bool) {
	if len(overrides) == 0 {
		return nil, nil
	}
	var result []override
	seen := make(map[string]bool)
	for _, carrier := range overrides {
		if carrier == nil {
			continue
		}
		for _, entry := range carrier.entries() {
			if seen[entry.name] {
				continue
			}
			seen[entry.name] = true
			result = append(result, entry)
		}
	}
	return result, seen
}

func constant(value any) func(any) (any, error) {
	return func(any) (any, error) {
		return value, nil
	}
}

// sourceAs asserts src as S, dereferencing a pointer when S is its element type
func sourceAs[S any](src any) (S, error) {
	if source, ok := src.(S); ok {
		return source, nil
	}
	var zero S
	expected := reflect.TypeOf((*S)(nil)).Elem()
	value := reflect.ValueOf(src)
	if value.Kind() == reflect.Ptr && !value.IsNil() && value.Type().Elem() == expected {
		return value.Elem().Interface().(S), nil
	}
	return zero, fmt.Errorf("%w: override expected source %v, got %T", ErrTypeMismatch, expected, src)
}

func sortedKeys[V any](m map[string]V) []string {
	result := make([]string, 0, len(m))
	for key := range m {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

// assign sets an override value without coercion
func assign(member *Member, destPtr unsafe.Pointer, value any) error {
	dest := member.Value(destPtr)
	if value == nil {
		if !conv.IsNillable(member.Type) {
			return fmt.Errorf("%w: can not assign nil to %v %v", ErrTypeMismatch, member.Name, member.Type)
		}
		dest.SetZero()
		return nil
	}
	source := reflect.ValueOf(value)
	if !source.Type().AssignableTo(member.Type) {
		return fmt.Errorf("%w: can not assign %v to %v %v", ErrTypeMismatch, source.Type(), member.Name, member.Type)
	}
	dest.Set(source)
	return nil
}
