package models

// Summary holds aggregates over the filtered view of a result set.
type Summary struct {
	SearchTerm string
	Location   string

	Total   int // reported by the service
	Fetched int
	Shown   int // after local filters

	BySite    map[string]int
	SiteOrder []string
	Remote    int

	// Salary statistics over shown listings paid yearly in USD, using the
	// midpoint of each range.
	SalaryCount   int
	MinSalary     float64
	MaxSalary     float64
	AverageSalary float64

	TopRated []JobResult
}
