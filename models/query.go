package models

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults applied by NewSearchQuery. They mirror the search service defaults.
var DefaultSites = []string{"indeed", "linkedin", "glassdoor", "google"}

const (
	DefaultResultsWanted     = 20
	DefaultCountry           = "usa"
	DefaultDistance          = 50
	DefaultDescriptionFormat = "markdown"

	MaxResultsWanted = 100
	MaxDistance      = 500
)

// SearchQuery holds the parameters of one search request.
type SearchQuery struct {
	SearchTerm               string   `json:"search_term"`
	Location                 *string  `json:"location,omitempty"`
	SiteName                 []string `json:"site_name"`
	ResultsWanted            int      `json:"results_wanted"`
	HoursOld                 *int     `json:"hours_old,omitempty"`
	CountryIndeed            string   `json:"country_indeed"`
	JobType                  *string  `json:"job_type,omitempty"`
	IsRemote                 bool     `json:"is_remote"`
	Distance                 *int     `json:"distance,omitempty"`
	DescriptionFormat        string   `json:"description_format"`
	LinkedinFetchDescription bool     `json:"linkedin_fetch_description"`
}

// NewSearchQuery returns a query for term with the default parameters.
func NewSearchQuery(term string) SearchQuery {
	sites := make([]string, len(DefaultSites))
	copy(sites, DefaultSites)
	return SearchQuery{
		SearchTerm:        strings.TrimSpace(term),
		SiteName:          sites,
		ResultsWanted:     DefaultResultsWanted,
		CountryIndeed:     DefaultCountry,
		Distance:          Ptr(DefaultDistance),
		DescriptionFormat: DefaultDescriptionFormat,
	}
}

// Validate reports every constraint the query violates.
func (q SearchQuery) Validate() error {
	var errs []error
	if strings.TrimSpace(q.SearchTerm) == "" {
		errs = append(errs, errors.New("search term is required"))
	}
	if len(q.SiteName) == 0 {
		errs = append(errs, errors.New("at least one site is required"))
	}
	if q.ResultsWanted < 1 || q.ResultsWanted > MaxResultsWanted {
		errs = append(errs, fmt.Errorf("results wanted must be between 1 and %d, got %d", MaxResultsWanted, q.ResultsWanted))
	}
	if q.HoursOld != nil && *q.HoursOld < 1 {
		errs = append(errs, fmt.Errorf("hours old must be at least 1, got %d", *q.HoursOld))
	}
	if q.Distance != nil && (*q.Distance < 0 || *q.Distance > MaxDistance) {
		errs = append(errs, fmt.Errorf("distance must be between 0 and %d, got %d", MaxDistance, *q.Distance))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy so a submitted query cannot be changed through shared slices.
func (q SearchQuery) Clone() SearchQuery {
	c := q
	c.SiteName = append([]string(nil), q.SiteName...)
	if q.Location != nil {
		c.Location = Ptr(*q.Location)
	}
	if q.HoursOld != nil {
		c.HoursOld = Ptr(*q.HoursOld)
	}
	if q.JobType != nil {
		c.JobType = Ptr(*q.JobType)
	}
	if q.Distance != nil {
		c.Distance = Ptr(*q.Distance)
	}
	return c
}
