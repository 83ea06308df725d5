package jerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/stretchr/testify/require"

	"go.appointy.com/guild/jerrors"
)

func TestConvertError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		e := jerrors.ConvertError(errors.New("boom"))
		require.Equal(t, "boom", e.Message)
		require.Equal(t, jerrors.Unknown, e.Code())
		require.NotNil(t, e.Paths)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", jerrors.New(jerrors.NotFound, "project %q not found", "p1"))
		e := jerrors.ConvertError(err)
		require.Equal(t, `project "p1" not found`, e.Message)
		require.Equal(t, jerrors.NotFound, e.Code())
		require.Equal(t, jerrors.NotFound, jerrors.CodeOf(err))
	})
}

func TestExtensions(t *testing.T) {
	e := jerrors.New(jerrors.AlreadyExists, "taken")
	require.Equal(t, map[string]interface{}{"code": "AlreadyExists"}, e.Extensions())
	require.Equal(t, jerrors.Unknown, (&jerrors.Error{Message: "x"}).Code())
}

func TestFromFormatted(t *testing.T) {
	require.Nil(t, jerrors.FromFormatted(nil))

	out := jerrors.FromFormatted([]gqlerrors.FormattedError{
		{Message: "a", Extensions: map[string]interface{}{"code": "InvalidArgument"}, Path: []interface{}{"project", "owner"}},
		{Message: "b"},
	})
	require.Len(t, out, 2)
	require.Equal(t, jerrors.InvalidArgument, out[0].Code())
	require.Equal(t, []interface{}{"project", "owner"}, out[0].Paths)
	require.Equal(t, jerrors.Unknown, out[1].Code())
	require.Equal(t, []interface{}{}, out[1].Paths)
}
