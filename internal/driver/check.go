package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"asynclint/internal/diag"
	"asynclint/internal/observ"
	"asynclint/internal/rules"
	"asynclint/internal/source"
	"asynclint/internal/syntax"
)

// Options управляет одним запуском анализа.
type Options struct {
	Rules          rules.Options
	MaxDiagnostics int
	Jobs           int
	// Cache, when non-nil, short-circuits unchanged files.
	Cache       *DiskCache
	WithTimings bool
}

// FileResult содержит результат анализа одного файла.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
	Timing    *observ.Report
}

// CheckFiles analyzes every file in parallel. A file that fails to load or
// parse contributes diagnostics instead of failing the run; the returned
// error is reserved for context cancellation.
func CheckFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 256
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			results[i] = FileResult{Path: path, Bag: bag}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(
					diag.IOLoadFileError,
					source.Span{},
					"failed to load file: "+loadErr.Error(),
				))
				return nil
			}

			fileID := fileIDs[path]
			results[i].FileID = fileID
			results[i].FromCache, results[i].Timing = checkOne(gctx, fileSet.Get(fileID), bag, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// checkOne analyzes a single loaded file into bag.
func checkOne(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) (fromCache bool, timing *observ.Report) {
	var timer *observ.Timer
	if opts.WithTimings {
		timer = observ.NewTimer()
		defer func() {
			r := timer.Report()
			timing = &r
		}()
	}

	key := CacheKey(file.Hash, opts.Rules)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			for _, d := range payloadToDiagnostics(&payload, file.ID) {
				bag.Add(d)
			}
			return true, timing
		}
	}

	parsePhase := -1
	if timer != nil {
		parsePhase = timer.Begin("parse")
	}
	tree, err := syntax.Parse(ctx, file)
	if timer != nil {
		timer.End(parsePhase, file.Path)
	}
	if err != nil {
		bag.Add(diag.NewError(
			diag.ParSyntaxError,
			source.Span{File: file.ID},
			fmt.Sprintf("failed to parse: %v", err),
		))
		return false, timing
	}
	defer tree.Close()

	analyzePhase := -1
	if timer != nil {
		analyzePhase = timer.Begin("analyze")
	}
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	tree.ReportParseErrors(rep)
	rules.NewPass(tree, opts.Rules, rep).Run()
	if timer != nil {
		timer.End(analyzePhase, "")
	}

	if opts.Cache != nil {
		// Ошибка записи кеша не должна ломать анализ.
		_ = opts.Cache.Put(key, diagnosticsToPayload(bag.Items()))
	}
	return false, timing
}

// MergeResults flattens per-file bags into one sorted bag.
func MergeResults(results []FileResult, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}
	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	merged.Sort()
	return merged
}
