package conv

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	// ErrNotEnum is returned when a type cannot be registered as an enum.
	ErrNotEnum = errors.New("type is not a named integer type")
	// ErrEmptyEnum is returned when an enum is registered without members.
	ErrEmptyEnum = errors.New("enum has no members")
)

// Integer is the constraint for enum types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Enum holds the members of a registered enum type.
type Enum struct {
	Type   reflect.Type
	names  map[string]int64
	values map[int64]string
}

// Parse resolves text against member names first, then against member values.
func (e *Enum) Parse(text string) (int64, bool) {
	if v, ok := e.names[text]; ok {
		return v, true
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	if _, ok := e.values[v]; !ok {
		return 0, false
	}
	return v, true
}

// Name returns the member name for v.
func (e *Enum) Name(v int64) (string, bool) {
	name, ok := e.values[v]
	return name, ok
}

// Names returns member names ordered by value.
func (e *Enum) Names() []string {
	result := make([]string, 0, len(e.names))
	for name := range e.names {
		result = append(result, name)
	}
	sort.Slice(result, func(i, j int) bool {
		vi, vj := e.names[result[i]], e.names[result[j]]
		if vi == vj {
			return result[i] < result[j]
		}
		return vi < vj
	})
	return result
}

// Registry indexes enums by type; it is safe for concurrent use.
type Registry struct {
	mux     sync.RWMutex
	enums   map[reflect.Type]*Enum
	version atomic.Uint64
}

// DefaultRegistry is used by converters built with DefaultOptions.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty enum registry
func NewRegistry() *Registry {
	return &Registry{enums: make(map[reflect.Type]*Enum)}
}

// Register registers rType with supplied members, replacing any previous registration.
func (r *Registry) Register(rType reflect.Type, members map[string]int64) error {
	if !isNamedInteger(rType) {
		return fmt.Errorf("%w: %v", ErrNotEnum, rType)
	}
	if len(members) == 0 {
		return fmt.Errorf("%w: %v", ErrEmptyEnum, rType)
	}
	enum := &Enum{Type: rType, names: make(map[string]int64, len(members)), values: make(map[int64]string, len(members))}
	for name, value := range members {
		enum.names[name] = value
		if prev, ok := enum.values[value]; !ok || name < prev {
			enum.values[value] = name
		}
	}
	r.mux.Lock()
	r.enums[rType] = enum
	r.version.Add(1)
	r.mux.Unlock()
	return nil
}

// Version changes with every registration; rules resolved under an older version may be stale.
func (r *Registry) Version() uint64 {
	if r == nil {
		return 0
	}
	return r.version.Load()
}

// Lookup returns the enum registered for rType.
func (r *Registry) Lookup(rType reflect.Type) (*Enum, bool) {
	if r == nil || rType == nil {
		return nil, false
	}
	r.mux.RLock()
	defer r.mux.RUnlock()
	enum, ok := r.enums[rType]
	return enum, ok
}

// IsEnum returns true if rType was registered.
func (r *Registry) IsEnum(rType reflect.Type) bool {
	_, ok := r.Lookup(rType)
	return ok
}

// Register registers E in registry r.
func Register[E Integer](r *Registry, members map[string]E) error {
	rType := reflect.TypeOf((*E)(nil)).Elem()
	values := make(map[string]int64, len(members))
	for name, value := range members {
		values[name] = int64(value)
	}
	return r.Register(rType, values)
}

// RegisterEnum registers E in the DefaultRegistry.
func RegisterEnum[E Integer](members map[string]E) error {
	return Register(DefaultRegistry, members)
}

func isNamedInteger(rType reflect.Type) bool {
	if rType == nil || rType.PkgPath() == "" {
		return false
	}
	switch rType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
