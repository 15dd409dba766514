package conv

import (
	"math"
	"reflect"
	"strconv"
)

// Options contains configuration for the converter
type Options struct {
	// Enums resolves enum typed members; nil disables enum rules
	Enums *Registry
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{Enums: DefaultRegistry}
}

// Converter resolves and applies coercion rules
type Converter struct {
	options Options
}

// NewConverter creates a new converter with the provided options
func NewConverter(options Options) *Converter {
	return &Converter{options: options}
}

// Enums returns converter enum registry
func (c *Converter) Enums() *Registry {
	return c.options.Enums
}

// Resolve returns the first rule matching (target, source); the order is significant:
// enum rules have to be checked before the nullable fallbacks.
func (c *Converter) Resolve(target, source reflect.Type) Rule {
	if target == nil || source == nil {
		return Unsupported
	}
	if target == source {
		return Direct
	}
	enums := c.options.Enums
	if enums.IsEnum(target) && isFixedSigned(source) && !enums.IsEnum(source) {
		return EnumFromIntegral
	}
	if target.Kind() == reflect.Int32 && !enums.IsEnum(target) && enums.IsEnum(source) {
		return IntegralFromEnum
	}
	if target.Kind() == reflect.Ptr && target.Elem() == source {
		return NullableWrap
	}
	if source.Kind() == reflect.Ptr && source.Elem() == target {
		return NullableUnwrap
	}
	return Unsupported
}

// Apply moves src into dest using rule, dest has to be settable.
// It returns false when the value could not be moved, leaving dest untouched.
func (c *Converter) Apply(rule Rule, dest, src reflect.Value) bool {
	switch rule {
	case Direct:
		dest.Set(src)
		return true
	case EnumFromIntegral:
		return c.enumFromIntegral(dest, src)
	case IntegralFromEnum:
		return integralFromEnum(dest, src)
	case NullableWrap:
		ptr := reflect.New(dest.Type().Elem())
		ptr.Elem().Set(src)
		dest.Set(ptr)
		return true
	case NullableUnwrap:
		if src.IsNil() {
			if !IsNillable(dest.Type()) {
				return false
			}
			dest.SetZero()
			return true
		}
		dest.Set(src.Elem())
		return true
	}
	return false
}

// Convert resolves a rule for dest and src types and applies it
func (c *Converter) Convert(dest, src reflect.Value) (Rule, bool) {
	rule := c.Resolve(dest.Type(), src.Type())
	if rule == Unsupported {
		return rule, false
	}
	return rule, c.Apply(rule, dest, src)
}

func (c *Converter) enumFromIntegral(dest, src reflect.Value) bool {
	enum, ok := c.options.Enums.Lookup(dest.Type())
	if !ok {
		return false
	}
	value, ok := enum.Parse(strconv.FormatInt(src.Int(), 10))
	if !ok {
		return false
	}
	return setInteger(dest, value)
}

func integralFromEnum(dest, src reflect.Value) bool {
	var value int64
	switch src.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value = src.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := src.Uint()
		if u > math.MaxInt32 {
			return false
		}
		value = int64(u)
	default:
		return false
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return false
	}
	dest.SetInt(value)
	return true
}

func setInteger(dest reflect.Value, value int64) bool {
	switch dest.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if dest.OverflowInt(value) {
			return false
		}
		dest.SetInt(value)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value < 0 || dest.OverflowUint(uint64(value)) {
			return false
		}
		dest.SetUint(uint64(value))
		return true
	}
	return false
}

func isFixedSigned(rType reflect.Type) bool {
	switch rType.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return true
	}
	return false
}

// IsNillable returns true if a value of rType can be nil
func IsNillable(rType reflect.Type) bool {
	switch rType.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
