package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidation(rec, "Invalid input.", map[string][]string{"email": {"This field is required."}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeValidation, body.Code)
	assert.Equal(t, []string{"This field is required."}, body.Errors["email"])
}

func TestRespondInternal_HidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternal(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sql")
	assert.Contains(t, rec.Body.String(), CodeInternal)
}
