package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tts := map[string]struct {
		err  error
		code int
		msg  string
	}{
		"no enricher": {
			err:  New("boom"),
			code: DefaultCode,
			msg:  "boom",
		},
		"with code": {
			err:  New("missing", NotFound()),
			code: http.StatusNotFound,
			msg:  "missing",
		},
		"last code wins": {
			err:  New("clash", BadRequest(), Conflict()),
			code: http.StatusConflict,
			msg:  "clash",
		},
	}

	for name, tt := range tts {
		err, ok := tt.err.(Error)
		if assert.True(t, ok, "%s - should be an Error", name) {
			assert.Equal(t, tt.code, err.Code(), name)
			assert.Equal(t, tt.msg, err.Message(), name)
		}
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(http.StatusForbidden)(errors.New("plain"))
	apiErr, ok := err.(Error)
	if assert.True(t, ok, "plain errors should be wrapped") {
		assert.Equal(t, http.StatusForbidden, apiErr.Code())
	}

	assert.Nil(t, WithCode(404)(nil), "nil in, nil out")
}

func TestWithCause(t *testing.T) {
	cause := New("root cause", BadRequest())
	err := WithCause(cause)(errors.New("wrapper"))

	apiErr, ok := err.(Error)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, apiErr.Code(), "code should be forwarded from the cause")
		assert.Equal(t, "wrapper: root cause", apiErr.Error())
		assert.Error(t, apiErr.Cause())
	}
}
