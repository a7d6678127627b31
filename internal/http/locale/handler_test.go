package locale_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localeHandler "github.com/lehrbaum/firefly/internal/http/locale"
	"github.com/lehrbaum/firefly/internal/locale"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	table, err := locale.NewTable("de_DE")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/locales", localeHandler.NewHandler(table).Routes)

	return r
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestHandler_List(t *testing.T) {
	w := get(newRouter(t), "/locales/")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Default string   `json:"default"`
		Locales []string `json:"locales"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

	assert.Equal(t, "de_DE", got.Default)
	assert.Len(t, got.Locales, 20)
	assert.Contains(t, got.Locales, "pt_PT")
	assert.IsIncreasing(t, got.Locales)
}

func TestHandler_Get(t *testing.T) {
	type testCase struct {
		name         string
		id           string
		wantStatus   int
		wantLocale   string
		wantDecimal  string
		wantGrouping []string
	}

	tests := []testCase{
		{name: "Exact", id: "de_DE", wantStatus: http.StatusOK, wantLocale: "de_DE", wantDecimal: ",", wantGrouping: []string{"."}},
		{name: "BCP47", id: "en-IN", wantStatus: http.StatusOK, wantLocale: "en_IN", wantDecimal: ".", wantGrouping: []string{","}},
		{name: "Swiss", id: "de_CH", wantStatus: http.StatusOK, wantLocale: "de_CH", wantDecimal: ".", wantGrouping: []string{"\u2019"}},
		{name: "Unknown", id: "ja_JP", wantStatus: http.StatusNotFound},
		{name: "Garbage", id: "!!", wantStatus: http.StatusNotFound},
	}

	router := newRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/locales/"+tt.id)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got struct {
				Locale   string   `json:"locale"`
				Decimal  string   `json:"decimal"`
				Grouping []string `json:"grouping"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

			assert.Equal(t, tt.wantLocale, got.Locale)
			assert.Equal(t, tt.wantDecimal, got.Decimal)
			assert.Equal(t, tt.wantGrouping, got.Grouping)
		})
	}
}
