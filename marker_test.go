package structmap

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ContactHas struct {
	Name  bool
	Email bool
	Phone bool
	Note  bool
}

type Contact struct {
	Name  string
	Email string
	Phone *string
	Note  string
	Has   *ContactHas `setMarker:"true"`
}

type ContactRow struct {
	Name  string
	Email *string
	Phone string
}

func TestMarker(t *testing.T) {
	testCases := []struct {
		description string
		source      ContactRow
		overrides   []Overrides
		expect      ContactHas
	}{
		{
			description: "copied members flagged",
			source:      ContactRow{Name: "ada", Email: strPtr("ada@example.com"), Phone: "1"},
			expect:      ContactHas{Name: true, Email: true, Phone: true},
		},
		{
			description: "nil unwrap not flagged",
			source:      ContactRow{Name: "ada"},
			expect:      ContactHas{Name: true, Phone: true},
		},
		{
			description: "override flagged",
			source:      ContactRow{Name: "ada"},
			overrides:   []Overrides{ValueMap{"Note": "vip"}},
			expect:      ContactHas{Name: true, Phone: true, Note: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := To[Contact](tc.source, tc.overrides...)
			require.NoError(t, err)
			require.NotNil(t, actual.Has)
			assert.Equal(t, tc.expect, *actual.Has)
		})
	}
}

func TestMarker_IsSet(t *testing.T) {
	shape, err := Default().Shape(reflect.TypeOf(Contact{}))
	require.NoError(t, err)
	marker := shape.Marker()
	require.NotNil(t, marker)
	assert.Nil(t, shape.Lookup("Has"))

	contact := &Contact{}
	ptr := unsafe.Pointer(contact)
	assert.False(t, marker.IsSet(ptr, "Name"))
	assert.Nil(t, contact.Has)

	marker.Set(ptr, "Email")
	marker.Set(ptr, "Unknown")
	require.NotNil(t, contact.Has)
	assert.True(t, marker.IsSet(ptr, "Email"))
	assert.False(t, marker.IsSet(ptr, "Name"))
	assert.False(t, marker.IsSet(ptr, "Unknown"))
}
