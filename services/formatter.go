package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jobspy-client/models"
)

// printer renders numbers and currency symbols the way an en-US browser does.
var printer = message.NewPrinter(language.AmericanEnglish)

var siteLabels = map[string]string{
	"linkedin":      "LinkedIn",
	"indeed":        "Indeed",
	"glassdoor":     "Glassdoor",
	"zip_recruiter": "ZipRecruiter",
	"google":        "Google",
	"bayt":          "Bayt",
	"naukri":        "Naukri",
	"bdjobs":        "BDJobs",
}

var siteColors = map[string]text.Colors{
	"linkedin":      {text.FgBlue},
	"indeed":        {text.FgMagenta},
	"glassdoor":     {text.FgGreen},
	"zip_recruiter": {text.FgHiYellow},
	"google":        {text.FgRed},
	"bayt":          {text.FgCyan},
	"naukri":        {text.FgYellow},
	"bdjobs":        {text.FgHiMagenta},
}

// neutralColor is used for sources without a dedicated colour.
var neutralColor = text.Colors{text.FgHiBlack}

// dateLayouts are tried in order by RelativeDate.
var dateLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04:05Z07:00", false},
	{"2006-01-02", false},
}

// FormatSalary renders the salary range of job, e.g. "$50,000 – $70,000 / yearly".
// It reports false when the job carries neither bound.
func FormatSalary(job models.JobResult) (string, bool) {
	if job.MinAmount == nil && job.MaxAmount == nil {
		return "", false
	}

	code := job.CurrencyCode()
	suffix := ""
	if job.Interval != nil && *job.Interval != "" {
		suffix = " / " + *job.Interval
	}

	switch {
	case job.MinAmount != nil && job.MaxAmount != nil:
		return formatMoney(*job.MinAmount, code) + " – " + formatMoney(*job.MaxAmount, code) + suffix, true
	case job.MinAmount != nil:
		return "From " + formatMoney(*job.MinAmount, code) + suffix, true
	default:
		return "Up to " + formatMoney(*job.MaxAmount, code) + suffix, true
	}
}

// formatMoney formats amount with no decimals. Codes x/text does not know
// degrade to "CODE 1,234".
func formatMoney(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return code
	}
	rounded := int64(math.Round(amount))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return sign + code + " " + printer.Sprintf("%d", rounded)
	}
	return sign + printer.Sprint(currency.Symbol(unit)) + printer.Sprintf("%d", rounded)
}

// FormatRelativeDate describes dateStr relative to the current time.
func FormatRelativeDate(dateStr string) string {
	return RelativeDate(dateStr, time.Now())
}

// RelativeDate describes dateStr relative to now: "Today", "Yesterday", "3d ago",
// "2w ago", or a short absolute date ("Mar 4") for anything 30 days or older and
// for future dates. Unparseable input is returned unchanged.
func RelativeDate(dateStr string, now time.Time) string {
	if dateStr == "" {
		return ""
	}
	d, ok := parseDate(strings.TrimSpace(dateStr))
	if !ok {
		return dateStr
	}

	diff := now.Sub(d)
	days := int(math.Floor(diff.Hours() / 24))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days >= 2 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days >= 7 && days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return d.Format("Jan 2")
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		if d, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// SiteLabel returns the display name of a source identifier. Unknown sources
// are returned as given.
func SiteLabel(site string) string {
	if label, ok := siteLabels[site]; ok {
		return label
	}
	return site
}

// SiteColor returns the terminal colours of a source badge.
func SiteColor(site string) text.Colors {
	if c, ok := siteColors[site]; ok {
		return c
	}
	return neutralColor
}

// SiteBadge is the coloured label of site.
func SiteBadge(site string) string {
	return SiteColor(site).Sprint(SiteLabel(site))
}

// FormatRating renders the company rating with one decimal and, when known,
// the review count: "4.3 (1,204 reviews)".
func FormatRating(job models.JobResult) (string, bool) {
	if job.CompanyRating == nil {
		return "", false
	}
	out := strconv.FormatFloat(*job.CompanyRating, 'f', 1, 64)
	if job.CompanyReviewsCount != nil && *job.CompanyReviewsCount > 0 {
		out += printer.Sprintf(" (%d reviews)", *job.CompanyReviewsCount)
	}
	return out, true
}

// FormatRemote renders the tri-state remote flag.
func FormatRemote(job models.JobResult) string {
	if job.IsRemote == nil {
		return ""
	}
	if *job.IsRemote {
		return "Remote"
	}
	return "On-site"
}
