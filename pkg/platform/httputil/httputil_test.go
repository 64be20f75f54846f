package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "filmorate/pkg/domain-errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantMessage string
	}{
		{
			name:        "validation maps to 400",
			err:         dErrors.New(dErrors.CodeValidation, "email must contain @"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "validation_error",
			wantMessage: "email must contain @",
		},
		{
			name:        "not found maps to 404",
			err:         dErrors.New(dErrors.CodeNotFound, "user 7 does not exist"),
			wantStatus:  http.StatusNotFound,
			wantError:   "not_found",
			wantMessage: "user 7 does not exist",
		},
		{
			name:        "coded internal hides the detail",
			err:         dErrors.New(dErrors.CodeInternal, "dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "internal_error",
			wantMessage: "internal server error",
		},
		{
			name:        "uncoded errors are internal and hidden",
			err:         errors.New("sensitive detail"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "internal_error",
			wantMessage: "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body["error"])
			assert.Equal(t, tc.wantMessage, body["message"])
		})
	}
}
