package http

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"depreciation-calculator/domain"
	"depreciation-calculator/presenter"
	"depreciation-calculator/service"
)

// FormHandler serves the interactive calculator page and renders results
// as an HTML table.
type FormHandler struct {
	service  *service.DepreciationService
	currency string
}

func NewFormHandler(service *service.DepreciationService, currency string) *FormHandler {
	if currency == "" {
		currency = presenter.DefaultCurrency
	}
	return &FormHandler{service: service, currency: currency}
}

type formValues struct {
	Method        string
	Cost          string
	Salvage       string
	Life          string
	UnitsProduced string
	TotalUnits    string
}

type formView struct {
	Currency   string
	Methods    []domain.MethodInfo
	Values     formValues
	ShowUnits  bool
	Error      string
	MethodName string
	Headers    []string
	Rows       []presenter.Row
}

func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, formView{
		Values: formValues{Method: "1", Cost: "0.00", Salvage: "0.00", Life: "1"},
	})
}

func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, formView{Error: domain.InvalidRequestMessage})
		return
	}

	values := formValues{
		Method:        r.PostForm.Get("method"),
		Cost:          r.PostForm.Get("cost"),
		Salvage:       r.PostForm.Get("salvage"),
		Life:          r.PostForm.Get("life"),
		UnitsProduced: r.PostForm.Get("units_produced"),
		TotalUnits:    r.PostForm.Get("total_units"),
	}
	view := formView{Values: values}

	input, err := parseForm(values)
	if err == nil {
		var schedule domain.Schedule
		schedule, err = h.service.Calculate(r.Context(), input)
		if err == nil {
			view.MethodName = schedule.Method.String()
			view.Headers = presenter.Headers(h.currency)
			view.Rows = presenter.Rows(schedule)
			h.render(w, r, http.StatusOK, view)
			return
		}
	}

	if !domain.IsInvalidRequest(err) {
		slog.ErrorContext(r.Context(), "form calculation failed", "err", err)
		view.Error = "internal server error"
		h.render(w, r, http.StatusInternalServerError, view)
		return
	}
	slog.InfoContext(r.Context(), "invalid form submission", "err", err)
	view.Error = domain.InvalidRequestMessage
	h.render(w, r, http.StatusUnprocessableEntity, view)
}

// parseForm turns the submitted strings into an input. Unit fields are read
// only when units of production is selected.
func parseForm(v formValues) (domain.DepreciationInput, error) {
	method, ok := domain.ParseMethod(v.Method)
	if !ok {
		return domain.DepreciationInput{}, domain.Invalid("method", "unrecognized method")
	}
	cost, err := parseNumber(v.Cost)
	if err != nil {
		return domain.DepreciationInput{}, domain.Invalid("cost", "not a number")
	}
	salvage, err := parseNumber(v.Salvage)
	if err != nil {
		return domain.DepreciationInput{}, domain.Invalid("salvage", "not a number")
	}
	life, err := strconv.Atoi(strings.TrimSpace(v.Life))
	if err != nil {
		return domain.DepreciationInput{}, domain.Invalid("life", "not a whole number")
	}

	input := domain.DepreciationInput{Method: method, Cost: cost, Salvage: salvage, Life: life}
	if method.RequiresUnits() {
		if units, err := parseNumber(v.UnitsProduced); err == nil {
			input.UnitsProduced = &units
		}
		if total, err := parseNumber(v.TotalUnits); err == nil {
			input.TotalUnits = &total
		}
	}
	return input, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, view formView) {
	view.Currency = h.currency
	view.Methods = h.service.Methods()
	if code, ok := domain.ParseMethod(view.Values.Method); ok {
		view.ShowUnits = code.RequiresUnits()
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		slog.ErrorContext(r.Context(), "render form", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(r.Context(), "write form", "err", err)
	}
}

var formTemplate = template.Must(template.New("form").Funcs(template.FuncMap{
	"selected": func(current string, code domain.MethodCode) bool {
		c, ok := domain.ParseMethod(current)
		return ok && c == code
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Depreciation Calculator</title>
<style>
body { font-family: system-ui; max-width: 960px; margin: 40px auto; padding: 0 20px; }
form { display: grid; grid-template-columns: 280px 1fr; gap: 8px 16px; max-width: 640px; }
table { border-collapse: collapse; margin-top: 24px; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: right; }
.error { color: #b00020; margin-top: 16px; }
</style>
</head>
<body>
<h1>Depreciation Calculator</h1>
<form method="post" action="/calculate">
  <label for="method">Depreciation Method</label>
  <select id="method" name="method" onchange="document.getElementById('units').hidden = this.value !== '3'">
  {{- range .Methods}}
    <option value="{{.Code | printf "%d"}}"{{if selected $.Values.Method .Code}} selected{{end}}>{{.Name}}</option>
  {{- end}}
  </select>
  <label for="cost">Machinery Cost ({{.Currency}})</label>
  <input id="cost" name="cost" type="number" min="0" step="0.01" value="{{.Values.Cost}}">
  <label for="salvage">Salvage Value ({{.Currency}})</label>
  <input id="salvage" name="salvage" type="number" min="0" step="0.01" value="{{.Values.Salvage}}">
  <label for="life">Useful Life of Asset (Years)</label>
  <input id="life" name="life" type="number" min="1" step="1" value="{{.Values.Life}}">
  <fieldset id="units" style="grid-column: 1 / 3"{{if not .ShowUnits}} hidden{{end}}>
    <label for="units_produced">Units Produced This Year</label>
    <input id="units_produced" name="units_produced" type="number" min="0" step="0.01" value="{{.Values.UnitsProduced}}">
    <label for="total_units">Total Estimated Units</label>
    <input id="total_units" name="total_units" type="number" min="1" step="0.01" value="{{.Values.TotalUnits}}">
  </fieldset>
  <button type="submit">Calculate Depreciation</button>
</form>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
{{- if .Rows}}
<h2>Depreciation Schedule: {{.MethodName}}</h2>
<table>
  <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>
  {{- range .Rows}}
    <tr><td>{{.Year}}</td><td>{{.BookValue}}</td><td>{{.Depreciation}}</td><td>{{.MonthlyDepreciation}}</td></tr>
  {{- end}}
  </tbody>
</table>
{{- end}}
</body>
</html>
`))
