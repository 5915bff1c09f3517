// Package domain orchestrates extraction, dataset writing, verification and
// watching over the adapters.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mouse-blink/casegen/internal/adapter"
	"github.com/mouse-blink/casegen/internal/controller"
	"github.com/mouse-blink/casegen/internal/domain/extract"
	m "github.com/mouse-blink/casegen/internal/model"
)

var (
	// ErrTestsDirNotFound is returned when the tests directory is missing or
	// is not a directory.
	ErrTestsDirNotFound = errors.New("tests directory not found")

	// ErrDatasetNotFound is returned when verification targets a missing
	// dataset root.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrSyntaxFindings is returned by strict verification when generated
	// files do not parse or no longer match the manifest.
	ErrSyntaxFindings = errors.New("generated files have syntax errors")
)

// Findings reported for manifest entries. Their Line and Column are 0.
const (
	MsgMissingFile  = "missing file"
	MsgModifiedFile = "modified since generation"
)

// ListArgs selects the test classes to scan.
type ListArgs struct {
	Tests     m.Path
	Extension string
}

// VerifyArgs configures syntax verification of a dataset.
type VerifyArgs struct {
	Output  m.Path
	Workers int
	Strict  bool
}

// GenerateArgs configures a dataset generation run.
type GenerateArgs struct {
	ListArgs
	Output  m.Path
	Verify  bool
	Workers int
	Strict  bool
}

// WatchArgs configures watch mode.
type WatchArgs struct {
	GenerateArgs
	Debounce time.Duration
}

//go:generate mockery --name=Workflow --output=./mocks --outpkg=mocks --structname=MockWorkflow --filename=mock_workflow.go

// Workflow defines the casegen operations exposed to the commands.
type Workflow interface {
	// List extracts every case without writing anything.
	List(ctx context.Context, args ListArgs) (m.Summary, error)
	// Generate extracts every case and writes the dataset and its manifest.
	Generate(ctx context.Context, args GenerateArgs) (m.Summary, error)
	// Verify parses the generated v1/v2 files and reports syntax errors,
	// plus manifest entries whose file is missing or changed.
	Verify(ctx context.Context, args VerifyArgs) ([]m.SyntaxFinding, error)
	// Watch generates once, then regenerates whenever a test class changes,
	// until ctx is done.
	Watch(ctx context.Context, args WatchArgs) error
}

// Adapters groups the infrastructure a workflow drives.
type Adapters struct {
	FS        adapter.SourceFSAdapter
	Writer    adapter.DatasetWriter
	Manifests adapter.ManifestStore
	Checker   adapter.JavaSyntaxChecker
	Watcher   adapter.DirWatcher
}

type workflow struct {
	Adapters
	extractor *extract.Extractor
	ui        controller.UI
	log       *zap.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters. A
// nil logger is replaced with a no-op one.
func NewWorkflow(adapters Adapters, extractor *extract.Extractor, ui controller.UI, log *zap.Logger) Workflow {
	if log == nil {
		log = zap.NewNop()
	}

	return &workflow{
		Adapters:  adapters,
		extractor: extractor,
		ui:        ui,
		log:       log,
	}
}

func (w *workflow) List(ctx context.Context, args ListArgs) (m.Summary, error) {
	sources, err := w.sources(args)
	if err != nil {
		return m.Summary{}, w.fail(err, controller.WithListMode())
	}

	if err := w.ui.Start(controller.WithListMode(), controller.WithTotal(len(sources))); err != nil {
		return m.Summary{}, err
	}
	defer w.ui.Close()

	var summary m.Summary

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		report, _, err := w.process(src, "")
		if err != nil {
			return summary, w.fail(err)
		}

		summary.Add(report)
		w.ui.DisplayClassReport(report)
	}

	if err := w.ui.DisplaySummary(summary, nil); err != nil {
		return summary, err
	}

	w.ui.Wait()

	return summary, nil
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) (m.Summary, error) {
	summary, err := w.generate(ctx, args)
	if err != nil || !args.Verify {
		return summary, err
	}

	_, err = w.Verify(ctx, VerifyArgs{Output: args.Output, Workers: args.Workers, Strict: args.Strict})

	return summary, err
}

func (w *workflow) generate(ctx context.Context, args GenerateArgs) (m.Summary, error) {
	sources, err := w.sources(args.ListArgs)
	if err != nil {
		return m.Summary{}, w.fail(err, controller.WithGenerateMode())
	}

	if err := w.FS.MkdirAll(args.Output); err != nil {
		return m.Summary{}, w.fail(fmt.Errorf("creating %s: %w", args.Output, err), controller.WithGenerateMode())
	}

	if err := w.ui.Start(controller.WithGenerateMode(), controller.WithTotal(len(sources))); err != nil {
		return m.Summary{}, err
	}

	summary := m.Summary{Output: args.Output}

	var manifest m.Manifest

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			w.ui.Close()
			return summary, err
		}

		report, cases, err := w.process(src, args.Output)
		if err != nil {
			w.ui.Close()
			return summary, w.fail(err)
		}

		summary.Add(report)
		manifest.Cases = append(manifest.Cases, cases...)
		w.ui.DisplayClassReport(report)
	}

	w.ui.Close()

	if err := w.Manifests.SaveManifest(args.Output, manifest); err != nil {
		return summary, w.fail(err)
	}

	w.log.Info("dataset generated",
		zap.String("output", string(args.Output)),
		zap.Int("files", summary.Files),
		zap.Int("classes", summary.Classes),
		zap.Int("cases", summary.Cases),
		zap.Int("skipped", summary.Skipped),
		zap.Int("declarations", summary.Declarations),
		zap.Int("fallbacks", summary.Fallbacks),
	)

	return summary, w.ui.DisplaySummary(summary, nil)
}

// sources checks the tests directory and lists its test classes.
func (w *workflow) sources(args ListArgs) ([]m.Source, error) {
	info, err := w.FS.FileInfo(args.Tests)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrTestsDirNotFound, args.Tests)
	}

	ext := args.Extension
	if ext == "" {
		ext = ".java"
	}

	sources, err := w.FS.Get(args.Tests, "*"+ext)
	if err != nil {
		return nil, err
	}

	w.log.Debug("test classes found", zap.String("tests", string(args.Tests)), zap.Int("count", len(sources)))

	return sources, nil
}

// process extracts one test class. With a non-empty output every case is
// also written and returned as manifest entries.
func (w *workflow) process(src m.Source, output m.Path) (m.ClassReport, []m.ManifestCase, error) {
	report := m.ClassReport{Class: src.Class, Source: src.Origin.Path}

	content, err := w.FS.ReadFile(src.Origin.Path)
	if err != nil {
		return report, nil, fmt.Errorf("reading %s: %w", src.Origin.Path, err)
	}

	var cases []m.ManifestCase

	for _, outcome := range w.extractor.Extract(src.Class, string(content)) {
		if outcome.Skipped != nil {
			w.log.Debug("test method skipped",
				zap.String("class", outcome.Skipped.Class),
				zap.String("method", outcome.Skipped.Method),
				zap.String("reason", string(outcome.Skipped.Reason)),
			)
			report.Skipped = append(report.Skipped, *outcome.Skipped)

			continue
		}

		tc := *outcome.Case
		v1 := w.extractor.Split(tc.V1)
		v2 := w.extractor.Split(tc.V2)

		report.Cases = append(report.Cases, m.CaseReport{
			ID:        adapter.CaseID(tc),
			Method:    tc.Method,
			HasClient: strings.TrimSpace(tc.Client) != "",
			V1Types:   declNames(v1),
			V2Types:   declNames(v2),
		})

		if output == "" {
			continue
		}

		files, err := w.Writer.WriteCase(output, tc, v1, v2)
		if err != nil {
			return report, nil, err
		}

		cases = append(cases, m.ManifestCase{
			ID:         files.ID,
			Class:      tc.Class,
			Method:     tc.Method,
			SourceHash: src.Origin.Hash,
			Files:      files.Files,
		})
	}

	w.log.Debug("test class processed",
		zap.String("class", src.Class),
		zap.Int("cases", len(report.Cases)),
		zap.Int("skipped", len(report.Skipped)),
	)

	return report, cases, nil
}

func declNames(decls []m.TypeDeclaration) []string {
	if len(decls) == 0 {
		return nil
	}

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}

	return names
}

func (w *workflow) Verify(ctx context.Context, args VerifyArgs) ([]m.SyntaxFinding, error) {
	info, err := w.FS.FileInfo(args.Output)
	if err != nil || !info.IsDir() {
		return nil, w.fail(fmt.Errorf("%w: %s", ErrDatasetNotFound, args.Output), controller.WithVerifyMode())
	}

	if err := w.ui.Start(controller.WithVerifyMode()); err != nil {
		return nil, err
	}
	defer w.ui.Close()

	rel, err := w.FS.Glob(args.Output, "{"+adapter.V1Tree+","+adapter.V2Tree+"}/**/*.java")
	if err != nil {
		return nil, w.ui.DisplayFindings(nil, err)
	}

	paths := make([]m.Path, 0, len(rel))
	for _, p := range rel {
		paths = append(paths, w.FS.JoinPath(string(args.Output), filepath.FromSlash(p)))
	}

	findings, err := w.Checker.Check(ctx, paths, args.Workers)
	if err != nil {
		return nil, w.ui.DisplayFindings(nil, err)
	}

	for i := range findings {
		if r, err := w.FS.RelPath(args.Output, findings[i].Path); err == nil {
			findings[i].Path = r
		}
	}

	drift, err := w.checkManifest(args.Output)
	if err != nil {
		return nil, w.ui.DisplayFindings(nil, err)
	}

	if len(drift) > 0 {
		findings = append(findings, drift...)
		sort.SliceStable(findings, func(i, j int) bool { return findings[i].Path < findings[j].Path })
	}

	w.log.Info("dataset verified", zap.Int("files", len(paths)), zap.Int("findings", len(findings)))

	if err := w.ui.DisplayFindings(findings, nil); err != nil {
		return findings, err
	}

	if args.Strict && len(findings) > 0 {
		return findings, fmt.Errorf("%w: %d file(s)", ErrSyntaxFindings, len(findings))
	}

	return findings, nil
}

// checkManifest compares the files recorded in the dataset manifest with the
// ones on disk. A dataset without a manifest yields no findings.
func (w *workflow) checkManifest(root m.Path) ([]m.SyntaxFinding, error) {
	manifest, err := w.Manifests.LoadManifest(root)
	if errors.Is(err, fs.ErrNotExist) {
		w.log.Debug("no manifest, file hashes not checked", zap.String("output", string(root)))
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var findings []m.SyntaxFinding

	for _, c := range manifest.Cases {
		for _, f := range c.Files {
			rel := m.Path(filepath.FromSlash(f.Path))

			hash, err := w.FS.HashFile(w.FS.JoinPath(string(root), string(rel)))

			switch {
			case errors.Is(err, fs.ErrNotExist):
				findings = append(findings, m.SyntaxFinding{Path: rel, Message: MsgMissingFile})
			case err != nil:
				return nil, err
			case hash != f.SHA256:
				findings = append(findings, m.SyntaxFinding{Path: rel, Message: MsgModifiedFile})
			}
		}
	}

	return findings, nil
}

func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if _, err := w.Generate(ctx, args.GenerateArgs); err != nil {
		return err
	}

	ext := args.Extension
	if ext == "" {
		ext = ".java"
	}

	changes, err := w.Watcher.Watch(ctx, args.Tests, ext, args.Debounce)
	if err != nil {
		return w.fail(err, controller.WithWatchMode())
	}

	w.log.Info("watching for changes", zap.String("tests", string(args.Tests)), zap.Duration("debounce", args.Debounce))

	for batch := range changes {
		w.ui.DisplayWatchEvent(batch)

		if _, err := w.Generate(ctx, args.GenerateArgs); err != nil {
			if ctx.Err() != nil {
				break
			}

			if errors.Is(err, ErrTestsDirNotFound) {
				return err
			}

			w.log.Error("regeneration failed", zap.Error(err))
		}
	}

	return nil
}

// fail reports err through the UI, starting it first when options are given.
func (w *workflow) fail(err error, options ...controller.StartOption) error {
	if len(options) > 0 {
		if startErr := w.ui.Start(options...); startErr != nil {
			return errors.Join(err, startErr)
		}
		defer w.ui.Close()
	}

	return w.ui.DisplaySummary(m.Summary{}, err)
}
