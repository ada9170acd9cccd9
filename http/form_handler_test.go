package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depreciation-calculator/domain"
)

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFormShow(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Depreciation Calculator")
	assert.Contains(t, body, `<option value="4">Sum-of-the-Years-Digits</option>`)
	assert.Contains(t, body, "Machinery Cost (INR)")
	assert.Contains(t, body, `<fieldset id="units" style="grid-column: 1 / 3" hidden>`)
}

func TestFormSubmit_RendersTable(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postForm(t, router, url.Values{
		"method":  {"1"},
		"cost":    {"10000"},
		"salvage": {"1000"},
		"life":    {"5"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Depreciation Schedule: Straight-Line")
	assert.Contains(t, body, "<th>Depreciation per Month (INR)</th>")
	assert.Contains(t, body, "<td>1</td><td>8,200.00</td><td>1,800.00</td><td>150.00</td>")
	assert.Contains(t, body, "<td>5</td><td>1,000.00</td>")
}

func TestFormSubmit_UnitsOfProduction(t *testing.T) {
	router := newTestRouter(t, nil)

	w := postForm(t, router, url.Values{
		"method":         {"3"},
		"cost":           {"10000"},
		"salvage":        {"1000"},
		"life":           {"3"},
		"units_produced": {"200"},
		"total_units":    {"1000"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<td>3</td><td>4,600.00</td><td>1,800.00</td><td>150.00</td>")
	assert.Contains(t, body, `<fieldset id="units" style="grid-column: 1 / 3">`)
}

func TestFormSubmit_Invalid(t *testing.T) {
	router := newTestRouter(t, nil)

	cases := map[string]url.Values{
		"uop without units": {"method": {"3"}, "cost": {"100"}, "salvage": {"0"}, "life": {"2"}},
		"unknown method":    {"method": {"6"}, "cost": {"100"}, "salvage": {"0"}, "life": {"2"}},
		"life not a number": {"method": {"1"}, "cost": {"100"}, "salvage": {"0"}, "life": {"two"}},
		"empty cost":        {"method": {"1"}, "cost": {""}, "salvage": {"0"}, "life": {"2"}},
		"units overflow": {"method": {"3"}, "cost": {"10000"}, "salvage": {"1000"}, "life": {"3"},
			"units_produced": {"1e300"}, "total_units": {"1e-10"}},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			w := postForm(t, router, values)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), domain.InvalidRequestMessage)
			assert.NotContains(t, w.Body.String(), "<table>")
		})
	}
}

func TestParseForm(t *testing.T) {
	input, err := parseForm(formValues{
		Method: "straight-line", Cost: "12,500.50", Salvage: " 500 ", Life: "4",
		UnitsProduced: "10", TotalUnits: "20",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StraightLine, input.Method)
	assert.Equal(t, 12500.5, input.Cost)
	assert.Equal(t, 500.0, input.Salvage)
	assert.Nil(t, input.UnitsProduced, "units are only read for units of production")

	input, err = parseForm(formValues{
		Method: "3", Cost: "1", Salvage: "0", Life: "1", UnitsProduced: "10",
	})
	require.NoError(t, err)
	require.NotNil(t, input.UnitsProduced)
	assert.Nil(t, input.TotalUnits)
}
