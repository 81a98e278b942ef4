package engine

import (
	"context"
	"fmt"
	"os"
	"sort"

	"synthcheck/internal/config"
	"synthcheck/internal/data"
	"synthcheck/internal/data/models"
	"synthcheck/internal/fetcher"
	"synthcheck/internal/imagecheck"
	"synthcheck/internal/output"
	"synthcheck/internal/rules"
	"synthcheck/internal/web"
)

func exitCodeForRun(fatal, partial, nonCompliant bool) int {
	// Exit code contract (UI spec):
	// 0 = clean run, every platform compliant
	// 1 = at least one platform not fully compliant
	// 2 = partial failure (some platforms could not be scanned)
	// 3 = fatal error (scan did not run)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if nonCompliant {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	Client *web.Client

	// schedulerExecute is a test seam for streaming execution.
	// If nil, Engine uses the real fetcher + scheduler.
	schedulerExecute func(ctx context.Context, cfg *config.Config, plan *ScanPlan) (<-chan PlatformExecutionResult, <-chan error)
}

func NewEngine(client *web.Client) *Engine {
	return &Engine{
		Client: client,
	}
}

func (e *Engine) executePlanStream(ctx context.Context, cfg *config.Config, plan *ScanPlan) (<-chan PlatformExecutionResult, <-chan error) {
	if e.schedulerExecute != nil {
		return e.schedulerExecute(ctx, cfg, plan)
	}

	budget := fetcher.NewRequestBudget()
	f := fetcher.NewFetcher(e.Client, budget)
	if cfg.Runtime.NoOCR {
		f.DisableOCR()
	}

	scheduler, err := NewScheduler(f, cfg.Runtime.Concurrency)
	if err != nil {
		resCh := make(chan PlatformExecutionResult)
		errCh := make(chan error, 1)
		close(resCh)
		errCh <- err
		close(errCh)
		return resCh, errCh
	}
	return scheduler.Execute(ctx, plan)
}

// buildPlatformReport assembles the full scan output for one platform from its
// fetched dependencies. A failed policy fetch yields a report with only the
// Error field populated; a failed or absent image pipeline degrades to an
// image analysis failure without touching the rule evaluation.
func buildPlatformReport(pp *PlatformPlan, dc data.DataContext, depErrs map[data.DependencyKey]error) output.PlatformReport {
	pr := output.PlatformReport{
		PlatformName:     pp.Platform.Label(),
		PrivacyPolicyURL: pp.Platform.PolicyURL,
		HomepageURL:      pp.Platform.HomepageURL,
	}

	val, ok := dc.Get(data.DepPolicyText)
	doc, isDoc := val.(*models.PolicyDocument)
	switch {
	case !ok:
		if err := depErrs[data.DepPolicyText]; err != nil {
			pr.Error = fmt.Sprintf("failed to fetch policy page: %v", err)
		} else {
			pr.Error = "policy text was not fetched"
		}
		return pr
	case !isDoc || doc == nil:
		pr.Error = fmt.Sprintf("unexpected policy text payload %T", val)
		return pr
	}

	report := rules.BuildReport(doc.Text, pp.Rules)
	pr.Report = &report

	if pp.Platform.HomepageURL != "" {
		analysis, found := analyzeHomepageImage(dc, depErrs)
		pr.ImageAnalysis = analysis
		pr.TotalImagesFound = found
	}
	return pr
}

func analyzeHomepageImage(dc data.DataContext, depErrs map[data.DependencyKey]error) (*imagecheck.Analysis, int) {
	val, ok := dc.Get(data.DepHomepageImage)
	if !ok {
		msg := "homepage image was not fetched"
		if err := depErrs[data.DepHomepageImage]; err != nil {
			msg = err.Error()
		}
		a := imagecheck.Failure(msg)
		return &a, 0
	}
	img, isImg := val.(*models.HomepageImage)
	if !isImg || img == nil {
		a := imagecheck.Failure(fmt.Sprintf("unexpected homepage image payload %T", val))
		return &a, 0
	}
	if img.Found == 0 {
		// A homepage without images is a finding, not a fetch failure.
		return nil, 0
	}

	var ocrLines []string
	if ocrVal, ok := dc.Get(data.DepImageOCR); ok {
		if ocr, isOCR := ocrVal.(*models.OCRText); isOCR && ocr != nil {
			ocrLines = ocr.Lines
		}
	}

	a := imagecheck.Analyze(img.Image, img.Metadata, ocrLines)
	return &a, img.Found
}

// evaluateStreamingResults receives streamed per-platform execution results
// (fetched dependencies + any fetch errors), evaluates the rule set against
// the policy text, runs image label analysis, and forwards reports/events to
// the configured output sinks.
func evaluateStreamingResults(plan *ScanPlan, resCh <-chan PlatformExecutionResult, outMgr *output.Manager) (hasErrors bool, hasNonCompliant bool) {
	for res := range resCh {
		pp := plan.PlatformPlans[res.PlatformKey]
		if pp == nil {
			hasErrors = true
			continue
		}

		label := pp.Platform.Label()
		_ = outMgr.Write(output.Event{Type: "platform.started", Platform: label})

		dc := res.Data
		if dc == nil {
			dc = data.NewMapDataContext(map[data.DependencyKey]any{})
		}

		pr := buildPlatformReport(pp, dc, res.DepErrs)
		if pr.Error != "" {
			hasErrors = true
		} else if pr.Report.OverallStatus != rules.OverallCompliant {
			hasNonCompliant = true
		}

		_ = outMgr.Write(pr)
		_ = outMgr.Write(output.Event{Type: "platform.finished", Platform: label})
	}

	return hasErrors, hasNonCompliant
}

func maybeDryRun(cfg *config.Config, plan *ScanPlan) (int, bool) {
	if !cfg.Targeting.DryRun {
		return 0, false
	}

	keys := make([]string, 0, len(plan.PlatformPlans))
	for key := range plan.PlatformPlans {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("Resolved platforms:")
	for _, key := range keys {
		pp := plan.PlatformPlans[key]
		fmt.Printf("%s (%s)\n", pp.Platform.Label(), pp.Platform.PolicyURL)
		for _, dep := range pp.SortedDependencies() {
			fmt.Printf("  fetch %s\n", dep)
		}
	}
	return 0, true
}

func resolveRules(cfg *config.Config) ([]rules.Rule, bool) {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Resolving rules...")
	}
	selectedRules, err := rules.Resolve(cfg.Rules.Selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving rules: %v\n", err)
		return nil, false
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Selected %d rules.\n", len(selectedRules))
	}
	return selectedRules, true
}

func buildPlanForPlatforms(cfg *config.Config, platforms []data.Platform, selectedRules []rules.Rule) (*ScanPlan, bool) {
	if !cfg.Output.NoConsole {
		fmt.Fprintln(os.Stderr, "Planning scan...")
	}
	plan := NewScanPlan()
	for _, platform := range platforms {
		if err := plan.AddPlatform(platform, selectedRules); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding platform %s to plan: %v\n", platform.Label(), err)
			return nil, false
		}
	}
	return plan, true
}

func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	platforms, err := ResolveTargets(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving platforms: %v\n", err)
		return exitCodeForRun(true, false, false)
	}
	if !cfg.Output.NoConsole {
		fmt.Fprintf(os.Stderr, "Found %d platforms.\n", len(platforms))
	}

	selectedRules, ok := resolveRules(cfg)
	if !ok {
		return exitCodeForRun(true, false, false)
	}

	plan, ok := buildPlanForPlatforms(cfg, platforms, selectedRules)
	if !ok {
		return exitCodeForRun(true, false, false)
	}

	if code, ok := maybeDryRun(cfg, plan); ok {
		return code
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true, false, false)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Platforms: len(plan.PlatformPlans)})

	resCh, errCh := e.executePlanStream(ctx, cfg, plan)

	hasErrors, hasNonCompliant := evaluateStreamingResults(plan, resCh, outMgr)

	var schedErr error
	// Drain scheduler errors; we only need to know whether any fatal error occurred (keep one non-nil error).
	for err := range errCh {
		if err != nil {
			schedErr = err
		}
	}

	fatal := schedErr != nil
	code := exitCodeForRun(fatal, hasErrors, hasNonCompliant)
	_ = outMgr.Write(output.Event{Type: "run.finished", ExitCode: code})
	return code
}
