package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobspy-client/models"
	"jobspy-client/utils"
)

func sampleJobs() []models.JobResult {
	return []models.JobResult{
		{
			ID: models.Ptr("a"), Site: models.Ptr("linkedin"), Title: models.Ptr("Backend Engineer"),
			JobType: models.Ptr("Full-Time"), IsRemote: models.Ptr(true),
			MinAmount: models.Ptr(90000.0), MaxAmount: models.Ptr(120000.0),
		},
		{
			ID: models.Ptr("b"), Site: models.Ptr("indeed"), Title: models.Ptr("Data Engineer"),
			JobType: models.Ptr("contract"), IsRemote: models.Ptr(false),
			MinAmount: models.Ptr(60000.0),
		},
		{
			ID: models.Ptr("c"), Site: models.Ptr("linkedin"), Title: models.Ptr("Platform Engineer"),
			MaxAmount: models.Ptr(70000.0),
		},
		{
			ID: models.Ptr("d"), Title: models.Ptr("Engineer, unknown source"),
		},
	}
}

func ids(jobs []models.JobResult) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.Str(j.ID))
	}
	return out
}

func TestApplyFiltersEmptySpecIsIdentity(t *testing.T) {
	jobs := sampleJobs()
	got := ApplyFilters(jobs, models.FilterSpec{})
	assert.Equal(t, jobs, got)

	got[0].ID = models.Ptr("changed")
	assert.Equal(t, "a", *jobs[0].ID)
}

func TestApplyFiltersRules(t *testing.T) {
	tests := []struct {
		name string
		spec models.FilterSpec
		want []string
	}{
		{"site", models.FilterSpec{Sites: []string{"linkedin"}}, []string{"a", "c"}},
		{"several sites", models.FilterSpec{Sites: []string{"indeed", "linkedin"}}, []string{"a", "b", "c"}},
		{"job type is a case-insensitive substring", models.FilterSpec{JobType: "full"}, []string{"a"}},
		{"job type upper-case spec", models.FilterSpec{JobType: "CONTRACT"}, []string{"b"}},
		{"remote only", models.FilterSpec{IsRemote: models.Ptr(true)}, []string{"a"}},
		{"on-site only", models.FilterSpec{IsRemote: models.Ptr(false)}, []string{"b"}},
		{"min salary compares the upper bound", models.FilterSpec{MinSalary: models.Ptr(65000.0)}, []string{"a", "c"}},
		{"max salary compares the lower bound", models.FilterSpec{MaxSalary: models.Ptr(80000.0)}, []string{"b"}},
		{"salary range", models.FilterSpec{MinSalary: models.Ptr(50000.0), MaxSalary: models.Ptr(100000.0)}, []string{"a"}},
		{
			"rules combine",
			models.FilterSpec{Sites: []string{"linkedin"}, IsRemote: models.Ptr(true), MinSalary: models.Ptr(100000.0)},
			[]string{"a"},
		},
		{"nothing matches", models.FilterSpec{Sites: []string{"glassdoor"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := sampleJobs()
			got := ApplyFilters(jobs, tt.spec)

			assert.Equal(t, tt.want, ids(got))
			assert.LessOrEqual(t, len(got), len(jobs))
			assert.Equal(t, []string{"a", "b", "c", "d"}, ids(jobs))
		})
	}
}

func TestApplyFiltersIsIdempotent(t *testing.T) {
	spec := models.FilterSpec{Sites: []string{"linkedin"}, MinSalary: models.Ptr(65000.0)}
	once := ApplyFilters(sampleJobs(), spec)
	assert.Equal(t, once, ApplyFilters(once, spec))
}

func TestFilterApply(t *testing.T) {
	f := NewFilter(utils.NewNopLogger())
	got := f.Apply(sampleJobs(), models.FilterSpec{IsRemote: models.Ptr(true)})
	require.Len(t, got, 1)
	assert.Equal(t, "a", *got[0].ID)
}

func TestAvailableSites(t *testing.T) {
	assert.Equal(t, []string{"linkedin", "indeed"}, AvailableSites(sampleJobs()))
	assert.Empty(t, AvailableSites(nil))
}
