package structmap

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/viant/structmap/conv"
	"github.com/viant/xunsafe"
)

// Mapper maps structs by member name; it is safe for concurrent use
type Mapper struct {
	options   *options
	converter *conv.Converter
	shapes    *syncMap[reflect.Type, *Shape]
	plans     *syncMap[typeKey, *Plan]
}

var defaultMapper = New()

// Default returns the mapper used by package level functions
func Default() *Mapper {
	return defaultMapper
}

// New creates a mapper
func New(opts ...Option) *Mapper {
	o := newOptions(opts)
	return &Mapper{
		options:   o,
		converter: conv.NewConverter(conv.Options{Enums: o.enums}),
		shapes:    newSyncMap[reflect.Type, *Shape](),
		plans:     newSyncMap[typeKey, *Plan](),
	}
}

// Into maps src into an existing struct pointed by dest; members without a match are left untouched.
// dest is only updated when the whole mapping succeeds.
func (m *Mapper) Into(src any, dest any, overrides ...Overrides) error {
	if dest == nil {
		return ErrNilDestination
	}
	destValue := reflect.ValueOf(dest)
	if !isStructPtr(destValue.Type()) {
		return fmt.Errorf("%w, got destination %T", ErrNotStruct, dest)
	}
	if destValue.IsNil() {
		return ErrNilDestination
	}
	destType := destValue.Type().Elem()
	scratch := reflect.New(destType)
	scratch.Elem().Set(destValue.Elem())
	shape, err := m.Shape(destType)
	if err != nil {
		return err
	}
	if marker := shape.Marker(); marker != nil {
		marker.detach(scratch.UnsafePointer())
	}
	entries, excluded := resolveOverrides(overrides)
	if _, err = m.mapValue(src, scratch.UnsafePointer(), destType, entries, excluded, nil); err != nil {
		return err
	}
	destValue.Elem().Set(scratch.Elem())
	return nil
}

// To maps src into a new T using the default mapper; T is a struct or pointer to struct
func To[T any](src any, overrides ...Overrides) (T, error) {
	return ToWith[T](defaultMapper, src, overrides...)
}

// ToWith maps src into a new T
func ToWith[T any](m *Mapper, src any, overrides ...Overrides) (T, error) {
	entries, excluded := resolveOverrides(overrides)
	result, _, err := mapTo[T](m, src, entries, excluded, nil)
	return result, err
}

// All lazily maps sources using the default mapper
func All[S, T any](sources iter.Seq[S], overrides ...Overrides) iter.Seq2[T, error] {
	return AllWith[S, T](defaultMapper, sources, overrides...)
}

// AllWith lazily maps sources, one result per step. The plan discovered for the first
// element is reused while elements share its type; an element of another dynamic type
// gets its own plan. Function overrides are called for every element.
func AllWith[S, T any](m *Mapper, sources iter.Seq[S], overrides ...Overrides) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		entries, excluded := resolveOverrides(overrides)
		var plan *Plan
		for src := range sources {
			var result T
			var err error
			result, plan, err = mapTo[T](m, src, entries, excluded, plan)
			if !yield(result, err) {
				return
			}
		}
	}
}

// Slice maps all sources using the default mapper, stopping at the first error
func Slice[S, T any](sources []S, overrides ...Overrides) ([]T, error) {
	return SliceWith[S, T](defaultMapper, sources, overrides...)
}

// SliceWith maps all sources, stopping at the first error
func SliceWith[S, T any](m *Mapper, sources []S, overrides ...Overrides) ([]T, error) {
	result := make([]T, 0, len(sources))
	for item, err := range AllWith[S, T](m, slices.Values(sources), overrides...) {
		if err != nil {
			return nil, fmt.Errorf("failed to map item %d: %w", len(result), err)
		}
		result = append(result, item)
	}
	return result, nil
}

func mapTo[T any](m *Mapper, src any, entries []override, excluded map[string]bool, plan *Plan) (T, *Plan, error) {
	var result, zero T
	target := reflect.ValueOf(&result).Elem()
	if isStructPtr(target.Type()) {
		target.Set(reflect.New(target.Type().Elem()))
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		return zero, plan, fmt.Errorf("%w, got target %v", ErrNotStruct, target.Type())
	}
	plan, err := m.mapValue(src, target.Addr().UnsafePointer(), target.Type(), entries, excluded, plan)
	if err != nil {
		return zero, plan, err
	}
	return result, plan, nil
}

func (m *Mapper) mapValue(src any, destPtr unsafe.Pointer, destType reflect.Type, entries []override, excluded map[string]bool, plan *Plan) (*Plan, error) {
	srcPtr, srcType, err := sourcePointer(src)
	if err != nil {
		return plan, err
	}
	if plan == nil || plan.Source.Type != srcType || plan.Target.Type != destType || plan.enums != m.converter.Enums().Version() {
		if plan, err = m.Plan(srcType, destType); err != nil {
			return nil, err
		}
	}
	return plan, m.apply(plan, src, srcPtr, destPtr, entries, excluded)
}

// apply writes overrides first, then copies every pair that is not overridden
func (m *Mapper) apply(plan *Plan, src any, srcPtr, destPtr unsafe.Pointer, entries []override, excluded map[string]bool) error {
	logger := m.options.logger
	marker := plan.Target.marker
	for _, entry := range entries {
		member := plan.Target.Lookup(entry.name)
		if member == nil {
			logger.Debug("override ignored", "member", entry.name, "target", plan.Target.Type.String())
			continue
		}
		value, err := entry.value(src)
		if err != nil {
			return fmt.Errorf("failed to compute override %v: %w", entry.name, err)
		}
		if err = assign(member, destPtr, value); err != nil {
			return err
		}
		if marker != nil {
			marker.Set(destPtr, member.Name)
		}
	}
	for _, pair := range plan.Pairs {
		if excluded[pair.Target.Name] {
			continue
		}
		if pair.Rule == conv.Unsupported {
			logger.Debug("pair skipped", "member", pair.Target.Name, "target", pair.Target.Type.String(), "source", pair.Source.Type.String())
			continue
		}
		if !m.converter.Apply(pair.Rule, pair.Target.Value(destPtr), pair.Source.Value(srcPtr)) {
			logger.Debug("value skipped", "member", pair.Target.Name, "rule", pair.Rule.String())
			continue
		}
		if marker != nil {
			marker.Set(destPtr, pair.Target.Name)
		}
	}
	return nil
}

// sourcePointer returns a pointer to the source struct; struct values are copied
func sourcePointer(src any) (unsafe.Pointer, reflect.Type, error) {
	if src == nil {
		return nil, nil, ErrNilSource
	}
	value := reflect.ValueOf(src)
	switch {
	case value.Kind() == reflect.Struct:
		holder := reflect.New(value.Type())
		holder.Elem().Set(value)
		return holder.UnsafePointer(), value.Type(), nil
	case isStructPtr(value.Type()):
		if value.IsNil() {
			return nil, nil, ErrNilSource
		}
		return xunsafe.AsPointer(src), value.Type().Elem(), nil
	}
	return nil, nil, fmt.Errorf("%w, got source %T", ErrNotStruct, src)
}
