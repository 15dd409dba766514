package conv

// Rule describes how a source value is moved into a target value.
type Rule int

const (
	// Unsupported - no rule applies, the target keeps its zero value.
	Unsupported Rule = iota
	// Direct - identical declared types, value copied verbatim.
	Direct
	// EnumFromIntegral - int8/int16/int32 source parsed against a registered enum.
	EnumFromIntegral
	// IntegralFromEnum - registered enum source copied into an int32 target.
	IntegralFromEnum
	// NullableWrap - target is *T and source is T.
	NullableWrap
	// NullableUnwrap - source is *T and target is T.
	NullableUnwrap
)

// String returns a human-readable rule name.
func (r Rule) String() string {
	switch r {
	case Unsupported:
		return "unsupported"
	case Direct:
		return "direct"
	case EnumFromIntegral:
		return "enum_from_integral"
	case IntegralFromEnum:
		return "integral_from_enum"
	case NullableWrap:
		return "nullable_wrap"
	case NullableUnwrap:
		return "nullable_unwrap"
	default:
		return "unknown"
	}
}
