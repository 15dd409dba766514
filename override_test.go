package structmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOverrides(t *testing.T) {
	testCases := []struct {
		description string
		overrides   []Overrides
		expectNames []string
		expectValue map[string]any
	}{
		{
			description: "none",
		},
		{
			description: "nil carrier skipped",
			overrides:   []Overrides{nil, ValueMap{"B": 2, "A": 1}},
			expectNames: []string{"A", "B"},
			expectValue: map[string]any{"A": 1, "B": 2},
		},
		{
			description: "first entry wins across carriers",
			overrides:   []Overrides{ValueList{Value("B", "first"), Value("B", "second")}, ValueMap{"B": "third", "C": 3}},
			expectNames: []string{"B", "C"},
			expectValue: map[string]any{"B": "first", "C": 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			entries, excluded := resolveOverrides(tc.overrides)
			var names []string
			for _, entry := range entries {
				names = append(names, entry.name)
				value, err := entry.value(nil)
				require.NoError(t, err)
				assert.Equal(t, tc.expectValue[entry.name], value)
				assert.True(t, excluded[entry.name])
			}
			assert.Equal(t, tc.expectNames, names)
			assert.Len(t, excluded, len(tc.expectNames))
		})
	}
}

func TestSourceAs(t *testing.T) {
	user := User{ID: 4}
	actual, err := sourceAs[User](user)
	require.NoError(t, err)
	assert.Equal(t, 4, actual.ID)

	actual, err = sourceAs[User](&user)
	require.NoError(t, err)
	assert.Equal(t, 4, actual.ID)

	pointer, err := sourceAs[*User](&user)
	require.NoError(t, err)
	assert.Same(t, &user, pointer)

	var nilUser *User
	_, err = sourceAs[User](nilUser)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = sourceAs[User](Audit{})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	anything, err := sourceAs[any](user)
	require.NoError(t, err)
	assert.Equal(t, user, anything)
}

func TestExpr(t *testing.T) {
	testCases := []struct {
		description string
		expression  string
		source      User
		expect      any
	}{
		{description: "concat", expression: `First + "." + Last`, source: User{First: "a", Last: "b"}, expect: "a.b"},
		{description: "arithmetic", expression: `Age * 2`, source: User{Age: 21}, expect: 42},
		{description: "condition", expression: `Age >= 18 ? "adult" : "minor"`, source: User{Age: 12}, expect: "minor"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			fn, err := Expr[User]("Name", tc.expression)
			require.NoError(t, err)
			assert.Equal(t, "Name", fn.Name)
			actual, err := fn.Func(tc.source)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
		})
	}
}
