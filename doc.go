// Package structmap copies values between structs by field name.
//
// A target struct is created and each exported target field is paired with the
// exported source field of the same name. A pair is copied when one of the
// coercion rules from package conv applies:
//   - identical types
//   - registered enum from int8, int16 or int32
//   - int32 from registered enum
//   - *T from T
//   - T from non-nil *T
//
// Any other pair is skipped and the target field keeps its zero value.
//
// Overrides bind a target field to a constant or to a function of the source:
//
//	dto, err := structmap.To[UserDTO](user, structmap.ValueMap{"Role": "admin"})
//
//	dto, err := structmap.To[UserDTO](user, structmap.FuncList[User]{
//		structmap.From("FullName", func(u User) any { return u.First + " " + u.Last }),
//	})
//
// Sequences are mapped lazily:
//
//	for dto, err := range structmap.All[User, UserDTO](slices.Values(users)) {
//		...
//	}
//
// Field pairs are discovered once per (source type, target type) and cached by
// the Mapper.
package structmap
