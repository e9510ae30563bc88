package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jobspy-client/models"
	"jobspy-client/services"
)

const shellHelp = `Commands:
  search TERM... [flags]   start a new search (same flags as the search command)
  filter key=value...      refine locally: site=a,b type=full remote=true|false min=N max=N
                           (value "any" removes a constraint)
  filter toggle SITE       add or remove one board from the site filter
  clear                    remove all filters
  more                     load the next page
  show N                   show the details of listing N
  status                   show the state of the current search
  summary                  show source, salary and rating statistics
  export MODE              export the filtered listings: json, csv, server-csv, postgres
  options [LIST]           list sites, job-types or countries offered by the service
  help                     show this help
  quit                     leave the shell`

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Shell keeps one search result in memory. Filters, pages and detail views work
on that result without querying the service again. A new search replaces it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newCommandDeps(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Close()

			orch := services.NewOrchestrator(deps.Client, services.NewFilter(deps.Logger), services.DefaultPageSize, deps.Logger)
			sh := newShell(cmd.Context(), deps, orch, cmd.OutOrStdout())
			sh.prefetch()
			return sh.run(cmd.InOrStdin())
		},
	}
}

// syncWriter serializes writes from the prompt loop and search completions.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type shell struct {
	ctx  context.Context
	deps *commandDeps
	orch *services.Orchestrator
	out  *syncWriter

	mu      sync.Mutex
	catalog services.Catalog
	loaded  bool

	pending sync.WaitGroup
}

func newShell(ctx context.Context, deps *commandDeps, orch *services.Orchestrator, w io.Writer) *shell {
	return &shell{ctx: ctx, deps: deps, orch: orch, out: &syncWriter{w: w}}
}

// prefetch loads the metadata lists in the background.
func (s *shell) prefetch() {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		cat := s.deps.Metadata.Prefetch(s.ctx)
		s.mu.Lock()
		s.catalog = cat
		s.loaded = true
		s.mu.Unlock()
	}()
}

func (s *shell) run(in io.Reader) error {
	fmt.Fprintln(s.out, `Type "help" for the list of commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := s.exec(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.printf("Error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printf("%s\n", shellHelp)
	case "search":
		s.search(rest)
	case "filter":
		s.filter(rest)
	case "clear":
		s.view(s.orch.ClearFilter())
	case "more":
		snap, more := s.orch.LoadMore()
		if !more {
			s.printf("All %d listings are shown.\n", len(snap.Filtered))
			return false
		}
		s.view(snap)
	case "show":
		s.show(rest)
	case "status":
		s.status()
	case "summary":
		snap := s.orch.Snapshot()
		s.render(func(w io.Writer) {
			s.deps.Insights.Print(w, s.deps.Insights.Generate(snap.Results, snap.Filtered))
		})
	case "export":
		s.export(rest)
	case "options":
		s.options(rest)
	default:
		s.printf("Unknown command %q. Type \"help\".\n", cmd)
	}
	return false
}

func (s *shell) search(args []string) {
	var opts queryOptions
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.SetOutput(s.out)
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return
	}
	if fs.NArg() == 0 {
		s.printf("Usage: search TERM... [flags]\n")
		return
	}

	q, err := opts.build(fs.Args(), s.deps.Config.DefaultCountry)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}

	s.pending.Add(1)
	seq, err := s.orch.SearchAsync(s.ctx, q, func(snap services.Snapshot, err error) {
		defer s.pending.Done()
		s.searchDone(snap, err)
	})
	if err != nil {
		s.pending.Done()
		s.printf("Error: %v\n", err)
		return
	}
	s.printf("Searching for %q on %s (#%d)...\n", q.SearchTerm, strings.Join(q.SiteName, ", "), seq)
}

func (s *shell) searchDone(snap services.Snapshot, err error) {
	switch {
	case errors.Is(err, services.ErrSuperseded):
		s.deps.Logger.Debug("[shell] Dropped result of superseded search #%d", snap.Seq)
	case err != nil:
		s.printf("\nSearch failed: %s\n", snap.ErrMessage())
	default:
		s.printf("\n")
		s.view(snap)
	}
}

func (s *shell) filter(args []string) {
	if len(args) == 0 {
		snap := s.orch.Snapshot()
		if !snap.Filter.IsActive() {
			s.printf("No filters. Boards in this result: %s\n", strings.Join(snap.AvailableSites, ", "))
			return
		}
		s.printf("Filters: %s\n", describeFilter(snap.Filter))
		return
	}

	if strings.EqualFold(args[0], "toggle") {
		if len(args) != 2 {
			s.printf("Usage: filter toggle SITE\n")
			return
		}
		site := strings.ToLower(args[1])
		s.view(s.orch.UpdateFilter(func(f models.FilterSpec) models.FilterSpec { return f.ToggleSite(site) }))
		return
	}

	spec, err := parseFilter(args, s.orch.Snapshot().Filter)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.view(s.orch.SetFilter(spec))
}

func (s *shell) show(args []string) {
	if len(args) != 1 {
		s.printf("Usage: show N\n")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		s.printf("Error: %q is not a listing number\n", args[0])
		return
	}
	job, ok := s.orch.Job(n - 1)
	if !ok {
		s.printf("No listing #%d.\n", n)
		return
	}
	s.render(func(w io.Writer) { renderJob(w, job, n-1) })
}

func (s *shell) status() {
	snap := s.orch.Snapshot()
	s.printf("State: %s\n", snap.State)
	if snap.Query != nil {
		s.printf("Query: %q on %s\n", snap.Query.SearchTerm, strings.Join(snap.Query.SiteName, ", "))
	}
	switch snap.State {
	case services.StateSucceeded:
		s.printf("Showing %d of %d filtered (%d fetched, page %d)\n",
			len(snap.Visible), len(snap.Filtered), len(snap.Results.Jobs), snap.Page)
	case services.StateFailed:
		s.printf("Error: %s\n", snap.ErrMessage())
	}
}

func (s *shell) export(args []string) {
	if len(args) != 1 {
		s.printf("Usage: export json|csv|server-csv|postgres\n")
		return
	}
	snap := s.orch.Snapshot()
	if args[0] != services.ModeServerCSV && snap.Results == nil {
		s.printf("Nothing to export yet. Run a search first.\n")
		return
	}

	var buf bytes.Buffer
	if err := runExport(s.ctx, s.deps, &buf, strings.ToLower(args[0]), snap); err != nil {
		buf.WriteString("Error: " + err.Error() + "\n")
	}
	_, _ = s.out.Write(buf.Bytes())
}

func (s *shell) options(args []string) {
	s.mu.Lock()
	cat, loaded := s.catalog, s.loaded
	s.mu.Unlock()
	if !loaded {
		s.printf("Options are still loading.\n")
		return
	}

	name := "sites"
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	switch name {
	case "sites":
		s.render(func(w io.Writer) { renderOptions(w, metaLists[name], cat.Sites) })
	case "job-types":
		s.render(func(w io.Writer) { renderOptions(w, metaLists[name], cat.JobTypes) })
	case "countries":
		s.render(func(w io.Writer) { renderOptions(w, metaLists[name], cat.Countries) })
	default:
		s.printf("Usage: options sites|job-types|countries\n")
	}
}

func (s *shell) view(snap services.Snapshot) {
	s.render(func(w io.Writer) { renderSnapshot(w, snap, s.deps.Insights) })
}

// render buffers one block of output so it is written at once.
func (s *shell) render(fn func(io.Writer)) {
	var buf bytes.Buffer
	fn(&buf)
	_, _ = s.out.Write(buf.Bytes())
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// wait blocks until background work started by the shell has finished.
func (s *shell) wait() {
	s.pending.Wait()
}
