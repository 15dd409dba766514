package structmap

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// MapperTag excludes a field from mapping with `mapper:"-"`
const MapperTag = "mapper"

type (
	// Member represents an exported struct field that can be read and written
	Member struct {
		Name  string
		Type  reflect.Type
		Index []int
		Tag   reflect.StructTag
		field *xunsafe.Field
	}

	// Shape represents the ordered members of a struct type
	Shape struct {
		Type    reflect.Type
		Members []*Member
		byName  map[string]*Member
		marker  *Marker
	}
)

// Value returns an addressable member value of the struct at ptr
func (m *Member) Value(ptr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(m.Type, m.field.Pointer(ptr)).Elem()
}

// Lookup returns a member by name
func (s *Shape) Lookup(name string) *Member {
	return s.byName[name]
}

// Marker returns the presence marker or nil
func (s *Shape) Marker() *Marker {
	return s.marker
}

// Names returns member names in declaration order
func (s *Shape) Names() []string {
	result := make([]string, len(s.Members))
	for i, member := range s.Members {
		result[i] = member.Name
	}
	return result
}

// NewShape creates a shape for a struct or pointer to struct type.
// Promoted fields are included unless they are reached through an embedded pointer.
func NewShape(rType reflect.Type) (*Shape, error) {
	structType := EnsureStructType(rType)
	if structType == nil {
		return nil, fmt.Errorf("%w, got %v", ErrNotStruct, rType)
	}
	result := &Shape{Type: structType, byName: make(map[string]*Member)}
	for _, field := range reflect.VisibleFields(structType) {
		if !field.IsExported() {
			continue
		}
		if IsSetMarker(field.Tag) {
			if len(field.Index) == 1 && result.marker == nil {
				result.marker = newMarker(field)
			}
			continue
		}
		if field.Tag.Get(MapperTag) == "-" {
			continue
		}
		if _, ok := result.byName[field.Name]; ok {
			continue
		}
		offset, ok := fieldOffset(structType, field.Index)
		if !ok {
			continue
		}
		structField := field
		structField.Offset = offset
		member := &Member{
			Name:  field.Name,
			Type:  field.Type,
			Index: field.Index,
			Tag:   field.Tag,
			field: xunsafe.NewField(structField),
		}
		result.Members = append(result.Members, member)
		result.byName[member.Name] = member
	}
	return result, nil
}

func fieldOffset(t reflect.Type, index []int) (uintptr, bool) {
	var offset uintptr
	for i, idx := range index {
		field := t.Field(idx)
		offset += field.Offset
		if i == len(index)-1 {
			break
		}
		if field.Type.Kind() != reflect.Struct {
			return 0, false
		}
		t = field.Type
	}
	return offset, true
}
