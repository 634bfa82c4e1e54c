package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound("category not found")))
	assert.True(t, IsNotFound(fmt.Errorf("get category: %w", ErrNotFound("category not found"))))
	assert.False(t, IsNotFound(ErrInvalid("bad id")))
	assert.False(t, IsNotFound(errors.New("not found")))
	assert.False(t, IsNotFound(nil))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalid("x"), http.StatusBadRequest},
		{ErrNotFound("x"), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", ErrConflict("x")), http.StatusConflict},
		{ErrInternal("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.err), tt.err.Error())
	}
}
