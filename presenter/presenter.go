// Package presenter renders schedules as four-column tables: Year, Book
// Value, Depreciation per Year and Depreciation per Month.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"depreciation-calculator/domain"
)

const DefaultCurrency = "INR"

// Row is one schedule row with every amount already formatted.
type Row struct {
	Year                string
	BookValue           string
	Depreciation        string
	MonthlyDepreciation string
}

// Headers returns the column titles with the currency label appended to the
// money columns.
func Headers(currency string) []string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return []string{
		"Year",
		fmt.Sprintf("Book Value (%s)", currency),
		fmt.Sprintf("Depreciation per Year (%s)", currency),
		fmt.Sprintf("Depreciation per Month (%s)", currency),
	}
}

func Rows(schedule domain.Schedule) []Row {
	rows := make([]Row, 0, len(schedule.Rows))
	for _, r := range schedule.Rows {
		rows = append(rows, Row{
			Year:                fmt.Sprintf("%d", r.Year),
			BookValue:           FormatMoney(r.BookValue),
			Depreciation:        FormatMoney(r.Depreciation),
			MonthlyDepreciation: FormatMoney(r.MonthlyDepreciation),
		})
	}
	return rows
}

// WriteTable writes an aligned plain-text table.
func WriteTable(w io.Writer, schedule domain.Schedule, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(Headers(currency), "\t")+"\t"); err != nil {
		return err
	}
	for _, r := range Rows(schedule) {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.Year, r.BookValue, r.Depreciation, r.MonthlyDepreciation); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteComparison writes one summary line per method.
func WriteComparison(w io.Writer, result domain.ComparisonResult, currency string) error {
	if currency == "" {
		currency = DefaultCurrency
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Method\tFirst Year (%s)\tTotal (%s)\tFinal Book Value (%s)\n", currency, currency, currency); err != nil {
		return err
	}
	for _, m := range result.Methods {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.Name,
			FormatMoney(m.FirstYearDepreciation),
			FormatMoney(m.TotalDepreciation),
			FormatMoney(m.FinalBookValue),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteInvalid writes the single message shown for any rejected request.
func WriteInvalid(w io.Writer) error {
	_, err := fmt.Fprintln(w, domain.InvalidRequestMessage)
	return err
}

// FormatMoney rounds half away from zero to two places and groups thousands.
func FormatMoney(v float64) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	if sign == "-" && strings.Trim(whole+frac, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
