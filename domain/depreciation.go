package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MethodCode is the numeric selector used by forms and the JSON API.
type MethodCode int

const (
	StraightLine MethodCode = iota + 1
	DecliningBalance
	UnitsOfProduction
	SumOfYearsDigits
	DoubleDecliningBalance
)

// AllMethods lists the supported methods in selector order.
var AllMethods = []MethodCode{
	StraightLine,
	DecliningBalance,
	UnitsOfProduction,
	SumOfYearsDigits,
	DoubleDecliningBalance,
}

var methodNames = map[MethodCode]string{
	StraightLine:           "Straight-Line",
	DecliningBalance:       "Declining Balance",
	UnitsOfProduction:      "Units of Production",
	SumOfYearsDigits:       "Sum-of-the-Years-Digits",
	DoubleDecliningBalance: "Double Declining Balance",
}

var methodSlugs = map[MethodCode]string{
	StraightLine:           "straight-line",
	DecliningBalance:       "declining-balance",
	UnitsOfProduction:      "units-of-production",
	SumOfYearsDigits:       "sum-of-years-digits",
	DoubleDecliningBalance: "double-declining-balance",
}

// Valid reports whether c is one of the five known selectors.
func (c MethodCode) Valid() bool {
	_, ok := methodNames[c]
	return ok
}

func (c MethodCode) String() string {
	if name, ok := methodNames[c]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(c)) + ")"
}

// Slug is the lowercase identifier used on the command line and in metrics.
func (c MethodCode) Slug() string {
	if slug, ok := methodSlugs[c]; ok {
		return slug
	}
	return "unknown"
}

// RequiresUnits is true only for units of production.
func (c MethodCode) RequiresUnits() bool {
	return c == UnitsOfProduction
}

// ParseMethod accepts a numeric code, a slug or a display name.
func ParseMethod(s string) (MethodCode, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		c := MethodCode(n)
		return c, c.Valid()
	}
	for _, c := range AllMethods {
		if strings.EqualFold(s, methodSlugs[c]) || strings.EqualFold(s, methodNames[c]) {
			return c, true
		}
	}
	return 0, false
}

// UnmarshalJSON accepts either the numeric code or a method name. Unknown
// names decode to the zero code, which fails validation later rather than
// being reported as a malformed body.
func (c *MethodCode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		code, _ := ParseMethod(name)
		*c = code
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = MethodCode(n)
	return nil
}

// Method is a depreciation method together with the parameters only it needs.
// The set of implementations is closed: StraightLineMethod,
// DecliningBalanceMethod, UnitsOfProductionMethod, SumOfYearsDigitsMethod
// and DoubleDecliningBalanceMethod.
type Method interface {
	Code() MethodCode
	isMethod()
}

type StraightLineMethod struct{}

type DecliningBalanceMethod struct{}

// UnitsOfProductionMethod applies one production ratio to every year.
type UnitsOfProductionMethod struct {
	UnitsProduced float64
	TotalUnits    float64
}

type SumOfYearsDigitsMethod struct{}

type DoubleDecliningBalanceMethod struct{}

func (StraightLineMethod) Code() MethodCode           { return StraightLine }
func (DecliningBalanceMethod) Code() MethodCode       { return DecliningBalance }
func (UnitsOfProductionMethod) Code() MethodCode      { return UnitsOfProduction }
func (SumOfYearsDigitsMethod) Code() MethodCode       { return SumOfYearsDigits }
func (DoubleDecliningBalanceMethod) Code() MethodCode { return DoubleDecliningBalance }

func (StraightLineMethod) isMethod()           {}
func (DecliningBalanceMethod) isMethod()       {}
func (UnitsOfProductionMethod) isMethod()      {}
func (SumOfYearsDigitsMethod) isMethod()       {}
func (DoubleDecliningBalanceMethod) isMethod() {}

// DepreciationInput is the raw request as collected from a form, the CLI or
// the JSON API. Unit fields are pointers so that "absent" differs from zero.
type DepreciationInput struct {
	Method        MethodCode `json:"method"`
	Cost          float64    `json:"cost"`
	Salvage       float64    `json:"salvage"`
	Life          int        `json:"life"`
	UnitsProduced *float64   `json:"units_produced,omitempty"`
	TotalUnits    *float64   `json:"total_units,omitempty"`
}

// DepreciationRequest is a validated input.
type DepreciationRequest struct {
	Method  Method
	Cost    float64
	Salvage float64
	Life    int
}

type ScheduleRow struct {
	Year                int     `json:"year"`
	BookValue           float64 `json:"book_value"`
	Depreciation        float64 `json:"depreciation"`
	MonthlyDepreciation float64 `json:"monthly_depreciation"`
}

// Schedule holds one row per year of useful life, in year order.
type Schedule struct {
	Method MethodCode    `json:"method"`
	Rows   []ScheduleRow `json:"rows"`
}

func (s Schedule) TotalDepreciation() float64 {
	total := 0.0
	for _, row := range s.Rows {
		total += row.Depreciation
	}
	return total
}

func (s Schedule) FinalBookValue() float64 {
	if len(s.Rows) == 0 {
		return 0
	}
	return s.Rows[len(s.Rows)-1].BookValue
}

// MethodInfo describes a method for catalogs and form selects.
type MethodInfo struct {
	Code          MethodCode `json:"code"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	RequiresUnits bool       `json:"requires_units"`
}

type MethodSummary struct {
	Method                MethodCode `json:"method"`
	Name                  string     `json:"name"`
	FirstYearDepreciation float64    `json:"first_year_depreciation"`
	TotalDepreciation     float64    `json:"total_depreciation"`
	FinalBookValue        float64    `json:"final_book_value"`
	Schedule              Schedule   `json:"schedule"`
}

// ComparisonResult lists every method that could be applied to one asset.
type ComparisonResult struct {
	Cost    float64         `json:"cost"`
	Salvage float64         `json:"salvage"`
	Life    int             `json:"life"`
	Methods []MethodSummary `json:"methods"`
}
