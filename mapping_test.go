package automap_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centraunit/automap"
	"github.com/centraunit/automap/mock"
)

func TestNewTypeMapping(t *testing.T) {
	m, err := automap.NewTypeMapping(databaseType, mockDBType)
	require.NoError(t, err)
	assert.Equal(t, automap.MappingOf[mock.Database, *mock.MockDB](), m)

	var argErr *automap.InvalidArgumentError
	_, err = automap.NewTypeMapping(nil, mockDBType)
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "from", argErr.Argument)

	_, err = automap.NewTypeMapping(databaseType, nil)
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "to", argErr.Argument)
}

func TestTypeMappingIsComparable(t *testing.T) {
	seen := map[automap.TypeMapping]int{}
	seen[automap.MappingOf[mock.Database, *mock.MockDB]()]++
	seen[automap.MappingOf[mock.Database, *mock.MockDB]()]++
	seen[automap.MappingOf[mock.Cache, *mock.MemoryCache]()]++

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[automap.TypeMapping{From: databaseType, To: mockDBType}])
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{stringType, "string"},
		{objectType, "interface {}"},
		{databaseType, "github.com/centraunit/automap/mock.Database"},
		{mockDBType, "*github.com/centraunit/automap/mock.MockDB"},
		{reflect.TypeOf([]int{}), "[]int"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, automap.TypeName(tt.typ))
	}
}

func TestTypeMappingString(t *testing.T) {
	m := automap.MappingOf[mock.Database, *mock.MockDB]()
	assert.Equal(t, "github.com/centraunit/automap/mock.Database -> *github.com/centraunit/automap/mock.MockDB", m.String())
}
