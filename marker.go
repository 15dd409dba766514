package structmap

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

//SetMarkerTag defines set marker tag
const SetMarkerTag = "setMarker"

//IsSetMarker returns true if the field holds a presence marker
func IsSetMarker(tag reflect.StructTag) bool {
	_, ok := tag.Lookup(SetMarkerTag)
	return ok
}

//Marker flags which target members were assigned by a mapping.
//
//	type UserHas struct {
//		Name bool
//		Role bool
//	}
//	type User struct {
//		Name string
//		Role string
//		Has  *UserHas `setMarker:"true"`
//	}
type Marker struct {
	holder     *xunsafe.Field
	holderType reflect.Type
	fields     map[string]*xunsafe.Field
}

func newMarker(field reflect.StructField) *Marker {
	if !isStructPtr(field.Type) {
		return nil
	}
	result := &Marker{holder: xunsafe.NewField(field), holderType: field.Type, fields: make(map[string]*xunsafe.Field)}
	markerType := field.Type.Elem()
	for i := 0; i < markerType.NumField(); i++ {
		markerField := markerType.Field(i)
		if !markerField.IsExported() || markerField.Type.Kind() != reflect.Bool {
			continue
		}
		result.fields[markerField.Name] = xunsafe.NewField(markerField)
	}
	return result
}

//Set flags name as set, allocating the marker holder when needed
func (m *Marker) Set(ptr unsafe.Pointer, name string) {
	field, ok := m.fields[name]
	if !ok {
		return
	}
	field.SetBool(m.markerPointer(ptr, true), true)
}

//IsSet returns true if name was flagged
func (m *Marker) IsSet(ptr unsafe.Pointer, name string) bool {
	field, ok := m.fields[name]
	if !ok {
		return false
	}
	markerPtr := m.markerPointer(ptr, false)
	if markerPtr == nil {
		return false
	}
	return field.Bool(markerPtr)
}

//detach replaces a non nil marker holder with its copy
func (m *Marker) detach(ptr unsafe.Pointer) {
	holder := reflect.NewAt(m.holderType, m.holder.Pointer(ptr)).Elem()
	if holder.IsNil() {
		return
	}
	clone := reflect.New(m.holderType.Elem())
	clone.Elem().Set(holder.Elem())
	holder.Set(clone)
}

func (m *Marker) markerPointer(ptr unsafe.Pointer, allocate bool) unsafe.Pointer {
	holder := reflect.NewAt(m.holderType, m.holder.Pointer(ptr)).Elem()
	if holder.IsNil() {
		if !allocate {
			return nil
		}
		holder.Set(reflect.New(m.holderType.Elem()))
	}
	return holder.UnsafePointer()
}
