package services

import (
	"math"
	"slices"
	"strings"

	"jobspy-client/models"
	"jobspy-client/utils"
)

// Filter derives the refined view of a result set.
type Filter struct {
	logger *utils.Logger
}

// NewFilter creates a Filter with the given logger.
func NewFilter(logger *utils.Logger) *Filter {
	return &Filter{logger: logger}
}

// Apply returns the jobs matching spec and logs how many were dropped.
func (f *Filter) Apply(jobs []models.JobResult, spec models.FilterSpec) []models.JobResult {
	out := ApplyFilters(jobs, spec)
	f.logger.Debug("[filter] Kept %d of %d listings (dropped %d)",
		len(out), len(jobs), len(jobs)-len(out))
	return out
}

// ApplyFilters returns, in input order, the jobs satisfying every constraint of
// spec. The input slice is never modified.
func ApplyFilters(jobs []models.JobResult, spec models.FilterSpec) []models.JobResult {
	jobType := strings.ToLower(spec.JobType)
	out := make([]models.JobResult, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, spec, jobType) {
			out = append(out, j)
		}
	}
	return out
}

func matches(j models.JobResult, spec models.FilterSpec, jobType string) bool {
	if len(spec.Sites) > 0 {
		if j.Site == nil || !slices.Contains(spec.Sites, *j.Site) {
			return false
		}
	}

	if jobType != "" {
		if j.JobType == nil || !strings.Contains(strings.ToLower(*j.JobType), jobType) {
			return false
		}
	}

	if spec.IsRemote != nil {
		if j.IsRemote == nil || *j.IsRemote != *spec.IsRemote {
			return false
		}
	}

	if spec.MinSalary != nil {
		upper := 0.0
		if j.MaxAmount != nil {
			upper = *j.MaxAmount
		}
		if upper < *spec.MinSalary {
			return false
		}
	}

	if spec.MaxSalary != nil {
		lower := math.Inf(1)
		if j.MinAmount != nil {
			lower = *j.MinAmount
		}
		if lower > *spec.MaxSalary {
			return false
		}
	}

	return true
}

// AvailableSites lists the distinct sources present in jobs, in first-seen order.
func AvailableSites(jobs []models.JobResult) []string {
	set := utils.NewOrderedSet()
	for _, j := range jobs {
		if j.Site != nil && *j.Site != "" {
			set.Add(*j.Site)
		}
	}
	return set.Values()
}
