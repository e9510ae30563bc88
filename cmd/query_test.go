package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobspy-client/models"
)

func parseQueryFlags(t *testing.T, args ...string) (*queryOptions, *filterOptions, *pflag.FlagSet) {
	t.Helper()
	var q queryOptions
	var f filterOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	q.bind(fs)
	f.bind(fs)
	require.NoError(t, fs.Parse(args))
	return &q, &f, fs
}

func TestQueryOptionsDefaults(t *testing.T) {
	opts, _, fs := parseQueryFlags(t, "golang", "developer")

	q, err := opts.build(fs.Args(), "germany")
	require.NoError(t, err)

	assert.Equal(t, "golang developer", q.SearchTerm)
	assert.Equal(t, models.DefaultSites, q.SiteName)
	assert.Equal(t, models.DefaultResultsWanted, q.ResultsWanted)
	assert.Equal(t, "germany", q.CountryIndeed)
	assert.Nil(t, q.Location)
	assert.Nil(t, q.HoursOld)
	assert.Equal(t, models.DefaultDistance, *q.Distance)
	assert.False(t, q.IsRemote)
}

func TestQueryOptionsFlags(t *testing.T) {
	opts, _, fs := parseQueryFlags(t,
		"engineer", "-l", "Austin, TX", "--site", "Indeed,linkedin", "-n", "50",
		"--hours-old", "72", "--country", "USA", "--job-type", "fulltime", "--remote",
		"--distance", "25", "--linkedin-description",
	)

	q, err := opts.build(fs.Args(), "")
	require.NoError(t, err)

	assert.Equal(t, "Austin, TX", *q.Location)
	assert.Equal(t, []string{"indeed", "linkedin"}, q.SiteName)
	assert.Equal(t, 50, q.ResultsWanted)
	assert.Equal(t, 72, *q.HoursOld)
	assert.Equal(t, "usa", q.CountryIndeed)
	assert.Equal(t, "fulltime", *q.JobType)
	assert.True(t, q.IsRemote)
	assert.Equal(t, 25, *q.Distance)
	assert.True(t, q.LinkedinFetchDescription)
}

func TestQueryOptionsValidation(t *testing.T) {
	opts, _, fs := parseQueryFlags(t, "engineer", "-n", "500")
	_, err := opts.build(fs.Args(), "usa")
	assert.ErrorContains(t, err, "results wanted")

	opts, _, fs = parseQueryFlags(t, "--site", "")
	_, err = opts.build(fs.Args(), "usa")
	assert.ErrorContains(t, err, "search term is required")
	assert.ErrorContains(t, err, "at least one site")
}

func TestFilterOptionsOnlySetFlags(t *testing.T) {
	_, f, fs := parseQueryFlags(t, "engineer")
	assert.False(t, f.spec(fs).IsActive())

	_, f, fs = parseQueryFlags(t, "engineer", "--filter-site", "LinkedIn", "--filter-remote=false", "--min-salary", "0")
	spec := f.spec(fs)
	assert.Equal(t, []string{"linkedin"}, spec.Sites)
	require.NotNil(t, spec.IsRemote)
	assert.False(t, *spec.IsRemote)
	require.NotNil(t, spec.MinSalary)
	assert.Zero(t, *spec.MinSalary)
	assert.Nil(t, spec.MaxSalary)
}
