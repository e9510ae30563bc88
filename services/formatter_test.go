package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobspy-client/models"
)

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name string
		job  models.JobResult
		want string
		ok   bool
	}{
		{
			name: "full range",
			job: models.JobResult{
				MinAmount: models.Ptr(50000.0),
				MaxAmount: models.Ptr(70000.0),
				Currency:  models.Ptr("USD"),
				Interval:  models.Ptr("yearly"),
			},
			want: "$50,000 – $70,000 / yearly",
			ok:   true,
		},
		{
			name: "currency defaults to USD",
			job:  models.JobResult{MinAmount: models.Ptr(40.0), MaxAmount: models.Ptr(55.4), Interval: models.Ptr("hourly")},
			want: "$40 – $55 / hourly",
			ok:   true,
		},
		{
			name: "lower bound only",
			job:  models.JobResult{MinAmount: models.Ptr(80000.0)},
			want: "From $80,000",
			ok:   true,
		},
		{
			name: "upper bound only",
			job:  models.JobResult{MaxAmount: models.Ptr(120000.0), Interval: models.Ptr("yearly")},
			want: "Up to $120,000 / yearly",
			ok:   true,
		},
		{
			name: "zero is a real bound",
			job:  models.JobResult{MinAmount: models.Ptr(0.0), MaxAmount: models.Ptr(10.0)},
			want: "$0 – $10",
			ok:   true,
		},
		{
			name: "unknown currency code",
			job:  models.JobResult{MinAmount: models.Ptr(1234.0), Currency: models.Ptr("XYZ1")},
			want: "From XYZ1 1,234",
			ok:   true,
		},
		{
			name: "no salary",
			job:  models.JobResult{Currency: models.Ptr("USD"), Interval: models.Ptr("yearly")},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatSalary(tt.job)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"same day", "2024-03-10", "Today"},
		{"30 hours ago", now.Add(-30 * time.Hour).Format(time.RFC3339), "Yesterday"},
		{"just under two days", now.Add(-47*time.Hour - 59*time.Minute).Format(time.RFC3339), "Yesterday"},
		{"three days", "2024-03-07", "3d ago"},
		{"six days", "2024-03-04", "6d ago"},
		{"one week", "2024-03-03", "1w ago"},
		{"two weeks", "2024-02-25", "2w ago"},
		{"thirty days is absolute", "2024-02-09", "Feb 9"},
		{"old date", "2023-11-20", "Nov 20"},
		{"future date", "2024-03-12", "Mar 12"},
		{"fractional seconds", "2024-03-10T09:30:00.123Z", "Today"},
		{"unparseable", "last week", "last week"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDate(tt.in, now))
		})
	}
}

func TestSiteLabelAndColor(t *testing.T) {
	assert.Equal(t, "LinkedIn", SiteLabel("linkedin"))
	assert.Equal(t, "ZipRecruiter", SiteLabel("zip_recruiter"))
	assert.Equal(t, "monster", SiteLabel("monster"))

	assert.Equal(t, siteColors["indeed"], SiteColor("indeed"))
	assert.Equal(t, neutralColor, SiteColor("monster"))
	assert.Contains(t, SiteBadge("monster"), "monster")
}

func TestFormatRating(t *testing.T) {
	_, ok := FormatRating(models.JobResult{})
	assert.False(t, ok)

	got, ok := FormatRating(models.JobResult{CompanyRating: models.Ptr(4.26)})
	assert.True(t, ok)
	assert.Equal(t, "4.3", got)

	got, _ = FormatRating(models.JobResult{CompanyRating: models.Ptr(4.3), CompanyReviewsCount: models.Ptr(1204)})
	assert.Equal(t, "4.3 (1,204 reviews)", got)
}

func TestFormatRemote(t *testing.T) {
	assert.Equal(t, "Remote", FormatRemote(models.JobResult{IsRemote: models.Ptr(true)}))
	assert.Equal(t, "On-site", FormatRemote(models.JobResult{IsRemote: models.Ptr(false)}))
	assert.Empty(t, FormatRemote(models.JobResult{}))
}
