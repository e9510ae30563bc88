package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"jobspy-client/models"
)

// queryOptions are the search parameters accepted on the command line.
type queryOptions struct {
	location            string
	sites               []string
	results             int
	hoursOld            int
	country             string
	jobType             string
	remote              bool
	distance            int
	linkedinDescription bool
}

func (o *queryOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.location, "location", "l", "", "location to search in")
	fs.StringSliceVarP(&o.sites, "site", "s", models.DefaultSites, "job boards to query")
	fs.IntVarP(&o.results, "results", "n", models.DefaultResultsWanted, "results wanted per board (1-100)")
	fs.IntVar(&o.hoursOld, "hours-old", 0, "only listings posted within this many hours")
	fs.StringVar(&o.country, "country", "", "Indeed country (default from DEFAULT_COUNTRY)")
	fs.StringVar(&o.jobType, "job-type", "", "fulltime, parttime, internship or contract")
	fs.BoolVar(&o.remote, "remote", false, "only remote listings")
	fs.IntVar(&o.distance, "distance", models.DefaultDistance, "search radius in miles (0-500)")
	fs.BoolVar(&o.linkedinDescription, "linkedin-description", false, "fetch full LinkedIn descriptions (slower)")
}

// build turns the options and the positional words into a query.
func (o *queryOptions) build(words []string, defaultCountry string) (models.SearchQuery, error) {
	q := models.NewSearchQuery(strings.Join(words, " "))
	if o.location != "" {
		q.Location = models.Ptr(o.location)
	}
	q.SiteName = splitList(strings.Join(o.sites, ","))
	q.ResultsWanted = o.results
	if o.hoursOld > 0 {
		q.HoursOld = models.Ptr(o.hoursOld)
	}
	q.CountryIndeed = defaultCountry
	if o.country != "" {
		q.CountryIndeed = strings.ToLower(o.country)
	}
	if q.CountryIndeed == "" {
		q.CountryIndeed = models.DefaultCountry
	}
	if o.jobType != "" {
		q.JobType = models.Ptr(o.jobType)
	}
	q.IsRemote = o.remote
	q.Distance = models.Ptr(o.distance)
	q.LinkedinFetchDescription = o.linkedinDescription

	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("invalid search: %w", err)
	}
	return q, nil
}

// filterOptions are the local filters accepted on the command line.
type filterOptions struct {
	sites     []string
	jobType   string
	remote    bool
	minSalary float64
	maxSalary float64
}

func (o *filterOptions) bind(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.sites, "filter-site", nil, "only show listings from these boards")
	fs.StringVar(&o.jobType, "filter-job-type", "", "only show listings whose job type contains this text")
	fs.BoolVar(&o.remote, "filter-remote", false, "only show remote (true) or on-site (false) listings")
	fs.Float64Var(&o.minSalary, "min-salary", 0, "only show listings paying at least this much")
	fs.Float64Var(&o.maxSalary, "max-salary", 0, "only show listings starting at most this much")
}

// spec returns the filter described by the flags that were set.
func (o *filterOptions) spec(fs *pflag.FlagSet) models.FilterSpec {
	var spec models.FilterSpec
	if len(o.sites) > 0 {
		spec.Sites = splitList(strings.Join(o.sites, ","))
	}
	spec.JobType = strings.TrimSpace(o.jobType)
	if fs.Changed("filter-remote") {
		spec.IsRemote = models.Ptr(o.remote)
	}
	if fs.Changed("min-salary") {
		spec.MinSalary = models.Ptr(o.minSalary)
	}
	if fs.Changed("max-salary") {
		spec.MaxSalary = models.Ptr(o.maxSalary)
	}
	return spec
}
