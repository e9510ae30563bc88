package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"jobspy-client/models"
	"jobspy-client/services"
)

const (
	titleWidth       = 45
	companyWidth     = 28
	locationWidth    = 24
	descriptionLines = 12
)

// renderJobs prints jobs as a table. Row numbers start at offset+1.
func renderJobs(w io.Writer, jobs []models.JobResult, offset int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Source", "Title", "Company", "Location", "Salary", "Posted", "Remote"})

	for i, j := range jobs {
		salary, _ := services.FormatSalary(j)
		t.AppendRow(table.Row{
			offset + i + 1,
			services.SiteBadge(models.Str(j.Site)),
			clip(models.Str(j.Title), titleWidth),
			clip(models.Str(j.Company), companyWidth),
			clip(models.Str(j.Location), locationWidth),
			salary,
			services.FormatRelativeDate(models.Str(j.DatePosted)),
			services.FormatRemote(j),
		})
	}
	t.Render()
}

// renderSnapshot prints the headline, the visible page and the pagination hint.
func renderSnapshot(w io.Writer, snap services.Snapshot, insights *services.InsightService) {
	if snap.Results == nil {
		fmt.Fprintln(w, "No results yet.")
		return
	}

	summary := insights.Generate(snap.Results, snap.Filtered)
	fmt.Fprintln(w, text.Bold.Sprint(services.Headline(summary)))
	if snap.Filter.IsActive() {
		fmt.Fprintf(w, "Filters: %s\n", describeFilter(snap.Filter))
	}

	if len(snap.Visible) == 0 {
		if snap.Filter.IsActive() {
			fmt.Fprintln(w, "No listings match the current filters.")
		} else {
			fmt.Fprintln(w, "No listings found.")
		}
		return
	}

	renderJobs(w, snap.Visible, 0)
	if snap.HasMore {
		fmt.Fprintf(w, "%d more. Use \"more\" to load the next page.\n", snap.Remaining)
	}
}

// renderJob prints the detail view of one listing.
func renderJob(w io.Writer, j models.JobResult, i int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("#%d %s", i+1, clip(models.Str(j.Title), 60)))

	add := func(label, value string) {
		if value != "" {
			t.AppendRow(table.Row{label, value})
		}
	}

	add("Company", models.Str(j.Company))
	add("Location", models.Str(j.Location))
	add("Source", services.SiteBadge(models.Str(j.Site)))
	add("Job type", models.Str(j.JobType))
	if salary, ok := services.FormatSalary(j); ok {
		add("Salary", salary)
	}
	add("Posted", services.FormatRelativeDate(models.Str(j.DatePosted)))
	add("Remote", services.FormatRemote(j))
	if rating, ok := services.FormatRating(j); ok {
		add("Rating", rating)
	}
	add("Level", models.Str(j.JobLevel))
	add("Function", models.Str(j.JobFunction))
	add("Industry", models.Str(j.CompanyIndustry))
	add("Employees", models.Str(j.CompanyNumEmployees))
	add("Revenue", models.Str(j.CompanyRevenue))
	add("Experience", models.Str(j.ExperienceRange))
	if j.VacancyCount != nil {
		add("Vacancies", fmt.Sprint(*j.VacancyCount))
	}
	add("Skills", strings.Join(j.SkillList(), ", "))
	add("Emails", models.Str(j.Emails))
	add("Listing", models.Str(j.JobURL))
	add("Apply", models.Str(j.JobURLDirect))
	add("Company page", models.Str(j.CompanyURL))
	t.Render()

	if desc := strings.TrimSpace(models.Str(j.Description)); desc != "" {
		fmt.Fprintln(w, headLines(desc, descriptionLines))
	}
}

// renderOptions prints a metadata list.
func renderOptions(w io.Writer, title string, opts []models.Option) {
	if len(opts) == 0 {
		fmt.Fprintf(w, "No %s available.\n", title)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Value", "Label"})
	for _, o := range opts {
		t.AppendRow(table.Row{o.Value, o.Label})
	}
	t.Render()
}

func describeFilter(f models.FilterSpec) string {
	var parts []string
	if len(f.Sites) > 0 {
		labels := make([]string, 0, len(f.Sites))
		for _, s := range f.Sites {
			labels = append(labels, services.SiteLabel(s))
		}
		parts = append(parts, "sites="+strings.Join(labels, ","))
	}
	if f.JobType != "" {
		parts = append(parts, "type="+f.JobType)
	}
	if f.IsRemote != nil {
		parts = append(parts, fmt.Sprintf("remote=%t", *f.IsRemote))
	}
	if f.MinSalary != nil {
		parts = append(parts, fmt.Sprintf("min=%g", *f.MinSalary))
	}
	if f.MaxSalary != nil {
		parts = append(parts, fmt.Sprintf("max=%g", *f.MaxSalary))
	}
	return strings.Join(parts, " ")
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func headLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
