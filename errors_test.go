package dirtar_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/dirtar"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
		kind dirtar.ErrorKind
	}{
		{
			name: "directory io",
			err:  dirtar.DirectoryIOError(cause),
			want: "tar error: boom",
			kind: dirtar.KindDirectoryIO,
		},
		{
			name: "response construction",
			err:  dirtar.ResponseConstructionError(cause),
			want: "response error: boom",
			kind: dirtar.KindResponseConstruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)

			kind, ok := dirtar.KindOf(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", dirtar.DirectoryIOError(errors.New("denied")))

	kind, ok := dirtar.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, dirtar.KindDirectoryIO, kind)
}

func TestKindOf_Plain(t *testing.T) {
	_, ok := dirtar.KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = dirtar.KindOf(nil)
	assert.False(t, ok)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "directory_io", dirtar.KindDirectoryIO.String())
	assert.Equal(t, "response_construction", dirtar.KindResponseConstruction.String())
	assert.Equal(t, "unknown", dirtar.ErrorKind(0).String())
}
