package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/fuzzmut/internal/adapter"
	"gooze.dev/pkg/fuzzmut/internal/controller"
	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

// RunArgs contains the arguments for a batch generation run.
type RunArgs struct {
	Paths           []m.Path
	Exclude         []string
	Output          m.Path
	Strategies      []m.Strategy
	Count           int
	Seed            uint64
	Parallel        int
	MinSeedIndex    int
	ShardIndex      int
	TotalShardCount int
}

// MutateArgs contains the arguments for a single mutation of one file.
type MutateArgs struct {
	Input        m.Path
	Strategy     m.Strategy
	Seed         uint64
	MinSeedIndex int
}

// MutationResult is the outcome of MutateFile. Output is null-terminated.
type MutationResult struct {
	Input    m.Path
	Strategy m.Strategy
	Original []byte
	Output   []byte
}

// ViewArgs contains the arguments for viewing a finished run.
type ViewArgs struct {
	Output m.Path
}

// Workflow defines the fuzzmut use cases driven by the CLI.
type Workflow interface {
	List(ctx context.Context) error
	MutateFile(ctx context.Context, args MutateArgs) (MutationResult, error)
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.CorpusFSAdapter
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.CorpusFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		CorpusFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
	}
}

// List displays the registered strategies.
func (w *workflow) List(ctx context.Context) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	return w.DisplayStrategies(ctx, Strategies())
}

// View loads the manifest of a finished run and shows its skipped and failed
// jobs followed by the per-strategy summary.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	manifest, err := w.LoadManifest(ctx, args.Output)
	if err != nil {
		slog.Error("Failed to load manifest", "output", args.Output, "error", err)
		return fmt.Errorf("load manifest: %w", err)
	}

	for _, report := range manifest.Reports {
		w.DisplayJobResult(ctx, report)
	}

	return w.DisplayRunSummary(ctx, manifest.Summaries)
}

// MutateFile applies one strategy to one file.
func (w *workflow) MutateFile(ctx context.Context, args MutateArgs) (MutationResult, error) {
	mg, err := NewMutagen(args.Strategy, pkg.NewRandomSource(args.Seed), WithMinSeedIndex(args.MinSeedIndex))
	if err != nil {
		return MutationResult{}, err
	}

	data, err := w.ReadFile(ctx, args.Input)
	if err != nil {
		return MutationResult{}, fmt.Errorf("read %s: %w", args.Input, err)
	}

	out, err := mg.Mutate(ctx, data)
	if err != nil {
		slog.Debug("Mutation rejected", "input", args.Input, "strategy", args.Strategy, "error", err)
		return MutationResult{}, fmt.Errorf("mutate %s with %s: %w", args.Input, args.Strategy, err)
	}

	slog.Debug("Mutated file", "input", args.Input, "strategy", args.Strategy, "seed", args.Seed, "size", len(out))

	return MutationResult{
		Input:    args.Input,
		Strategy: args.Strategy,
		Original: data,
		Output:   out,
	}, nil
}

// job is one (file, strategy, iteration) cell of a run.
type job struct {
	index     int
	fileIndex int
	file      m.File
	data      []byte
	strategy  m.Strategy
	iteration int
}

// Run generates Count test cases per corpus file and strategy, writes them
// below Output and records the run manifest there.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	args, err := normalizeRunArgs(args)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	exclude := append([]string{outputExcludePattern(args.Output)}, args.Exclude...)

	files, err := w.Get(ctx, args.Paths, exclude...)
	if err != nil {
		slog.Error("Failed to discover corpus", "error", err)
		return fmt.Errorf("get corpus: %w", err)
	}

	jobs, err := w.planJobs(ctx, files, args)
	if err != nil {
		return err
	}

	w.DisplayRunInfo(ctx, controller.RunInfo{
		Files:      len(files),
		Jobs:       len(jobs),
		Parallel:   args.Parallel,
		Seed:       args.Seed,
		ShardIndex: args.ShardIndex,
		ShardCount: args.TotalShardCount,
	})

	reports, err := pkg.NewFileSpill[m.Report]("")
	if err != nil {
		return fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := reports.Remove(); err != nil {
			slog.Error("Failed to remove report spill", "path", reports.Path(), "error", err)
		}
	}()

	if err := w.runJobs(ctx, jobs, args, reports); err != nil {
		return err
	}

	return w.finishRun(ctx, args, reports)
}

// outputExcludePattern keeps generated test cases out of the corpus when the
// output directory sits below a scanned path.
func outputExcludePattern(output m.Path) string {
	dir := filepath.ToSlash(filepath.Clean(string(output)))
	return "^" + regexp.QuoteMeta(dir) + "(/|$)"
}

func normalizeRunArgs(args RunArgs) (RunArgs, error) {
	if len(args.Strategies) == 0 {
		return args, m.NewUsageError("no strategy selected")
	}

	seen := make(map[m.Strategy]struct{}, len(args.Strategies))
	strategies := make([]m.Strategy, 0, len(args.Strategies))

	for _, strategy := range args.Strategies {
		if _, ok := LookupStrategy(strategy); !ok {
			return args, m.NewUsageError("unknown strategy %q", strategy)
		}

		if _, ok := seen[strategy]; ok {
			continue
		}

		seen[strategy] = struct{}{}
		strategies = append(strategies, strategy)
	}

	args.Strategies = strategies

	if args.Count < 1 {
		return args, m.NewUsageError("count must be at least 1, got %d", args.Count)
	}

	if args.Output == "" {
		return args, m.NewUsageError("output directory is required")
	}

	if args.Parallel < 1 {
		args.Parallel = 1
	}

	if args.TotalShardCount < 1 {
		args.ShardIndex, args.TotalShardCount = 0, 1
	}

	return args, nil
}

// planJobs reads every corpus file once and expands the job grid, keeping
// only the jobs that belong to this shard. Job indices are global so a
// sharded run generates the same bytes as an unsharded one.
func (w *workflow) planJobs(ctx context.Context, files []m.File, args RunArgs) ([]job, error) {
	var jobs []job

	index := 0

	for fileIndex, file := range files {
		data, err := w.ReadFile(ctx, file.FullPath)
		if err != nil {
			slog.Error("Failed to read corpus file", "path", file.FullPath, "error", err)
			return nil, fmt.Errorf("read %s: %w", file.FullPath, err)
		}

		for _, strategy := range args.Strategies {
			for iteration := range args.Count {
				if index%args.TotalShardCount == args.ShardIndex {
					jobs = append(jobs, job{
						index:     index,
						fileIndex: fileIndex,
						file:      file,
						data:      data,
						strategy:  strategy,
						iteration: iteration,
					})
				}

				index++
			}
		}
	}

	slog.Debug("Planned jobs", "files", len(files), "jobs", len(jobs), "shard", args.ShardIndex, "shards", args.TotalShardCount)

	return jobs, nil
}

func (w *workflow) runJobs(ctx context.Context, jobs []job, args RunArgs, reports pkg.FileSpill[m.Report]) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(args.Parallel)

	var displayMu sync.Mutex

	for _, current := range jobs {
		group.Go(func() error {
			report, err := w.runJob(groupCtx, current, args)
			if err != nil {
				return err
			}

			if err := reports.Append(report); err != nil {
				return fmt.Errorf("record report: %w", err)
			}

			displayMu.Lock()
			w.DisplayJobResult(groupCtx, report)
			displayMu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Run aborted", "error", err)
		return fmt.Errorf("run: %w", err)
	}

	return nil
}

// runJob turns one job into a report. Mutation errors are recorded in the
// report; only cancellation aborts the run.
func (w *workflow) runJob(ctx context.Context, current job, args RunArgs) (m.Report, error) {
	seed, err := pkg.DeriveSeed(args.Seed, current.index)
	if err != nil {
		return m.Report{}, err
	}

	report := m.Report{
		Input:     current.file.FullPath,
		InputHash: current.file.Hash,
		Strategy:  current.strategy,
		Iteration: current.iteration,
		Seed:      seed,
	}

	mg, err := NewMutagen(current.strategy, pkg.NewRandomSource(seed), WithMinSeedIndex(args.MinSeedIndex))
	if err != nil {
		return m.Report{}, err
	}

	out, err := mg.Mutate(ctx, current.data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m.Report{}, ctxErr
		}

		report.Status = statusFor(err)
		report.Err = err.Error()
		slog.Debug("Mutation rejected", "input", report.Input, "strategy", report.Strategy, "iteration", report.Iteration, "error", err)

		return report, nil
	}

	payload := m.Payload(out)
	output := w.outputPath(args.Output, current)

	if err := w.WriteFile(ctx, output, payload); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m.Report{}, ctxErr
		}

		slog.Error("Failed to write test case", "path", output, "error", err)

		report.Status = m.Failed
		report.Err = err.Error()

		return report, nil
	}

	report.Status = m.Generated
	report.Output = output
	report.Size = len(payload)

	return report, nil
}

func statusFor(err error) m.Status {
	if errors.Is(err, m.ErrUsage) {
		return m.Skipped
	}

	return m.Failed
}

// outputPath names a test case <output>/<strategy>/<file index>_<short path>-<iteration>.
// The file index keeps names distinct when short paths collide, as with the
// same file name under two scan roots.
func (w *workflow) outputPath(output m.Path, current job) m.Path {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(string(current.file.ShortPath))

	return w.JoinPath(string(output), string(current.strategy), fmt.Sprintf("%04d_%s-%04d", current.fileIndex, name, current.iteration))
}

func (w *workflow) finishRun(ctx context.Context, args RunArgs, reports pkg.FileSpill[m.Report]) error {
	collected, err := collectReports(reports)
	if err != nil {
		return fmt.Errorf("collect reports: %w", err)
	}

	summaries := summarizeReports(collected, args.Strategies)

	manifest := m.Manifest{
		Seed:      args.Seed,
		Count:     args.Count,
		Summaries: summaries,
		Reports:   collected,
	}

	if err := w.SaveManifest(ctx, args.Output, manifest); err != nil {
		slog.Error("Failed to save manifest", "output", args.Output, "error", err)
		return fmt.Errorf("save manifest: %w", err)
	}

	return w.DisplayRunSummary(ctx, summaries)
}
