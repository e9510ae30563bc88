package models

import (
	"strconv"
	"strings"
)

// JobResult is one normalized listing as returned by the search service.
// Every attribute is optional; absent values decode to nil.
// Field order is the column order used by the CSV and JSON exports.
type JobResult struct {
	ID                  *string  `json:"id"`
	Site                *string  `json:"site"`
	JobURL              *string  `json:"job_url"`
	JobURLDirect        *string  `json:"job_url_direct"`
	Title               *string  `json:"title"`
	Company             *string  `json:"company"`
	Location            *string  `json:"location"`
	DatePosted          *string  `json:"date_posted"`
	JobType             *string  `json:"job_type"`
	SalarySource        *string  `json:"salary_source"`
	Interval            *string  `json:"interval"`
	MinAmount           *float64 `json:"min_amount"`
	MaxAmount           *float64 `json:"max_amount"`
	Currency            *string  `json:"currency"`
	IsRemote            *bool    `json:"is_remote"`
	JobLevel            *string  `json:"job_level"`
	JobFunction         *string  `json:"job_function"`
	ListingType         *string  `json:"listing_type"`
	Emails              *string  `json:"emails"`
	Description         *string  `json:"description"`
	CompanyIndustry     *string  `json:"company_industry"`
	CompanyURL          *string  `json:"company_url"`
	CompanyLogo         *string  `json:"company_logo"`
	CompanyURLDirect    *string  `json:"company_url_direct"`
	CompanyAddresses    *string  `json:"company_addresses"`
	CompanyNumEmployees *string  `json:"company_num_employees"`
	CompanyRevenue      *string  `json:"company_revenue"`
	CompanyDescription  *string  `json:"company_description"`
	Skills              *string  `json:"skills"`
	ExperienceRange     *string  `json:"experience_range"`
	CompanyRating       *float64 `json:"company_rating"`
	CompanyReviewsCount *int     `json:"company_reviews_count"`
	VacancyCount        *int     `json:"vacancy_count"`
	WorkFromHomeType    *string  `json:"work_from_home_type"`
}

// Key returns a display identity for the job at ordinal position i:
// the service id when present, otherwise the job URL suffixed with i.
func (j JobResult) Key(i int) string {
	if j.ID != nil && *j.ID != "" {
		return *j.ID
	}
	return Str(j.JobURL) + "-" + strconv.Itoa(i)
}

// CurrencyCode returns the ISO currency of the salary, USD when absent.
func (j JobResult) CurrencyCode() string {
	if j.Currency == nil || strings.TrimSpace(*j.Currency) == "" {
		return "USD"
	}
	return strings.ToUpper(strings.TrimSpace(*j.Currency))
}

// SkillList splits the comma-delimited skills field.
func (j JobResult) SkillList() []string {
	if j.Skills == nil {
		return nil
	}
	var out []string
	for _, s := range strings.Split(*j.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ResultSet is the outcome of one query. It is replaced wholesale by the next one.
type ResultSet struct {
	Jobs       []JobResult `json:"jobs"`
	Total      int         `json:"total"`
	SearchTerm string      `json:"search_term"`
	Location   *string     `json:"location"`
}

// Option is a value/label pair served by the metadata endpoints.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Str dereferences an optional string, "" when nil.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
