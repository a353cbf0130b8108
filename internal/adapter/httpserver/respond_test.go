package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maron09/Product-Store/internal/usecase"
)

func TestRespondError_MapsKindsToStatuses(t *testing.T) {
	cases := []struct {
		name string
		kind usecase.Kind
		want int
	}{
		{"validation", usecase.KindValidation, http.StatusBadRequest},
		{"authentication", usecase.KindAuthentication, http.StatusUnauthorized},
		{"not found", usecase.KindNotFound, http.StatusNotFound},
		{"permission", usecase.KindPermission, http.StatusForbidden},
		{"conflict", usecase.KindConflict, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, &usecase.Error{Kind: tc.kind, Message: "boom"})

			assert.Equal(t, tc.want, rec.Code)

			var body response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, "boom", body.Message)
		})
	}
}

func TestRespondError_UnclassifiedErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestRespondOK_WrapsDataInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondOK(rec, http.StatusCreated, "created", map[string]string{"id": "x"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "created", body.Message)
	assert.NotNil(t, body.Data)
}
