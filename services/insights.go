package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"jobspy-client/models"
	"jobspy-client/utils"
)

const topRatedLimit = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarizes the filtered view of rs.
func (s *InsightService) Generate(rs *models.ResultSet, filtered []models.JobResult) *models.Summary {
	report := &models.Summary{BySite: make(map[string]int)}
	if rs == nil {
		return report
	}

	report.SearchTerm = rs.SearchTerm
	report.Location = models.Str(rs.Location)
	report.Total = rs.Total
	report.Fetched = len(rs.Jobs)
	report.Shown = len(filtered)

	var rated []models.JobResult
	var salaryTotal float64

	for _, j := range filtered {
		site := models.Str(j.Site)
		if site != "" {
			if report.BySite[site] == 0 {
				report.SiteOrder = append(report.SiteOrder, site)
			}
			report.BySite[site]++
		}
		if j.IsRemote != nil && *j.IsRemote {
			report.Remote++
		}
		if j.CompanyRating != nil {
			rated = append(rated, j)
		}

		mid, ok := yearlyMidpoint(j)
		if !ok {
			continue
		}
		if report.SalaryCount == 0 || mid < report.MinSalary {
			report.MinSalary = mid
		}
		if mid > report.MaxSalary {
			report.MaxSalary = mid
		}
		salaryTotal += mid
		report.SalaryCount++
	}

	if report.SalaryCount > 0 {
		report.AverageSalary = math.Round(salaryTotal / float64(report.SalaryCount))
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].CompanyRating > *rated[j].CompanyRating
	})
	if len(rated) > topRatedLimit {
		rated = rated[:topRatedLimit]
	}
	report.TopRated = rated

	s.logger.Debug("[insights] %d shown of %d fetched, %d with yearly salary",
		report.Shown, report.Fetched, report.SalaryCount)
	return report
}

// yearlyMidpoint is the middle of the salary range of a yearly, USD-paid job.
func yearlyMidpoint(j models.JobResult) (float64, bool) {
	if j.Interval == nil || !strings.EqualFold(*j.Interval, "yearly") || j.CurrencyCode() != "USD" {
		return 0, false
	}
	switch {
	case j.MinAmount != nil && j.MaxAmount != nil:
		return (*j.MinAmount + *j.MaxAmount) / 2, true
	case j.MinAmount != nil:
		return *j.MinAmount, true
	case j.MaxAmount != nil:
		return *j.MaxAmount, true
	}
	return 0, false
}

// Headline is the one-line description of the current view:
// Showing 12 of 40 results for "engineer" in Berlin
func Headline(r *models.Summary) string {
	line := fmt.Sprintf("Showing %d of %d results for %q", r.Shown, r.Total, r.SearchTerm)
	if r.Location != "" {
		line += " in " + r.Location
	}
	return line
}

// Print writes the summary as tables to w.
func (s *InsightService) Print(w io.Writer, r *models.Summary) {
	fmt.Fprintln(w, text.Bold.Sprint(Headline(r)))

	overview := table.NewWriter()
	overview.SetOutputMirror(w)
	overview.SetStyle(table.StyleLight)
	overview.SetTitle("Overview")
	overview.AppendRow(table.Row{"Fetched", r.Fetched})
	overview.AppendRow(table.Row{"Shown", r.Shown})
	overview.AppendRow(table.Row{"Remote", r.Remote})
	if r.SalaryCount > 0 {
		overview.AppendRow(table.Row{"Yearly salary (min)", formatMoney(r.MinSalary, "USD")})
		overview.AppendRow(table.Row{"Yearly salary (avg)", formatMoney(r.AverageSalary, "USD")})
		overview.AppendRow(table.Row{"Yearly salary (max)", formatMoney(r.MaxSalary, "USD")})
	} else {
		overview.AppendRow(table.Row{"Yearly salary", "no data"})
	}
	overview.Render()

	if len(r.SiteOrder) > 0 {
		bySite := table.NewWriter()
		bySite.SetOutputMirror(w)
		bySite.SetStyle(table.StyleLight)
		bySite.SetTitle("By source")
		for _, site := range r.SiteOrder {
			bySite.AppendRow(table.Row{SiteBadge(site), r.BySite[site]})
		}
		bySite.Render()
	}

	if len(r.TopRated) > 0 {
		top := table.NewWriter()
		top.SetOutputMirror(w)
		top.SetStyle(table.StyleLight)
		top.SetTitle("Top rated companies")
		top.AppendHeader(table.Row{"#", "Company", "Title", "Rating"})
		for i, j := range r.TopRated {
			rating, _ := FormatRating(j)
			top.AppendRow(table.Row{i + 1, truncate(models.Str(j.Company), 30), truncate(models.Str(j.Title), 40), rating})
		}
		top.Render()
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
