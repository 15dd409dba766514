package structmap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/structmap/conv"
)

func TestMapper_Pairs(t *testing.T) {
	type pairInfo struct {
		Name string
		Rule conv.Rule
	}
	testCases := []struct {
		description string
		excluded    []string
		expect      []pairInfo
	}{
		{
			description: "all pairs in target order",
			expect: []pairInfo{
				{"ID", conv.Direct},
				{"First", conv.Direct},
				{"Last", conv.Direct},
				{"Email", conv.NullableUnwrap},
				{"Age", conv.NullableWrap},
				{"RoleCode", conv.EnumFromIntegral},
				{"Level", conv.IntegralFromEnum},
				{"Score", conv.Direct},
				{"Tags", conv.Direct},
			},
		},
		{
			description: "excluded names",
			excluded:    []string{"First", "Email", "Level", "Unknown"},
			expect: []pairInfo{
				{"ID", conv.Direct},
				{"Last", conv.Direct},
				{"Age", conv.NullableWrap},
				{"RoleCode", conv.EnumFromIntegral},
				{"Score", conv.Direct},
				{"Tags", conv.Direct},
			},
		},
	}

	m := New()
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			pairs, err := m.Pairs(reflect.TypeOf(User{}), reflect.TypeOf(UserDTO{}), tc.excluded...)
			require.NoError(t, err)
			var actual []pairInfo
			for _, pair := range pairs {
				assert.Equal(t, pair.Target.Name, pair.Source.Name)
				actual = append(actual, pairInfo{Name: pair.Target.Name, Rule: pair.Rule})
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestMapper_Pairs_Unsupported(t *testing.T) {
	type Source struct {
		Count int64
		Code  int
		Name  string
	}
	type Target struct {
		Count int32
		Code  Role
		Name  *string
		Extra string
	}
	pairs, err := New().Pairs(reflect.TypeOf(Source{}), reflect.TypeOf(Target{}))
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, conv.Unsupported, pairs[0].Rule)
	assert.Equal(t, conv.Unsupported, pairs[1].Rule)
	assert.Equal(t, conv.NullableWrap, pairs[2].Rule)
}

func TestMapper_Pairs_NotStruct(t *testing.T) {
	_, err := New().Pairs(reflect.TypeOf(""), reflect.TypeOf(User{}))
	assert.ErrorIs(t, err, ErrNotStruct)
	_, err = New().Pairs(reflect.TypeOf(User{}), reflect.TypeOf([]User{}))
	assert.ErrorIs(t, err, ErrNotStruct)
}
