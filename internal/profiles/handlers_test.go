package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGet_NotFound(t *testing.T) {
	handler := NewHandler(newTestService())

	w := httptest.NewRecorder()
	handler.HandleGet(w, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestHandlePatchThenGet(t *testing.T) {
	handler := NewHandler(newTestService())

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"daily_calorie_goal": 1800, "region": "USA"}`)
	handler.HandlePatch(w, httptest.NewRequest(http.MethodPatch, "/v1/profile", body))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.HandleGet(w, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var dto ProfileDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	require.NotNil(t, dto.DailyCalorieGoal)
	assert.Equal(t, 1800.0, *dto.DailyCalorieGoal)
	assert.Equal(t, "USA", dto.Region)
	assert.Nil(t, dto.HeightM)
}

func TestHandlePatch_Errors(t *testing.T) {
	handler := NewHandler(newTestService())

	cases := []struct {
		name string
		body string
		code string
	}{
		{"invalid json", `{`, "invalid_json"},
		{"empty patch", `{}`, "empty_patch"},
		{"invalid value", `{"activity_level": "couch"}`, "invalid_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.HandlePatch(w, httptest.NewRequest(http.MethodPatch, "/v1/profile", strings.NewReader(tc.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}

	w := httptest.NewRecorder()
	handler.HandlePatch(w, httptest.NewRequest(http.MethodPost, "/v1/profile", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
