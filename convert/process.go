package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/cfix-labs/cfix/internal/ast"
	"github.com/cfix-labs/cfix/internal/types"
)

var desiredExtensions = map[string]bool{
	".json": true,
	".c":    true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// ConvertFile transforms a single input file in place. Tree files
// (.json) are decoded, transformed and re-encoded; .c files go
// through the parser and generator collaborators.
func (p *Pipeline) ConvertFile(path string) ([]types.Issue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var out []byte
	var issues []types.Issue
	switch filepath.Ext(path) {
	case ".json":
		unit, err := ast.DecodeUnit(content)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		work, convIssues, err := p.ConvertUnit(unit)
		issues = convIssues
		if err != nil {
			return issues, err
		}
		if out, err = ast.EncodeUnit(work); err != nil {
			return issues, err
		}
	case ".c":
		text, convIssues, err := p.Convert(string(content))
		issues = convIssues
		if err != nil {
			return issues, err
		}
		out = []byte(text)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return issues, fmt.Errorf("writing %s: %w", path, err)
	}
	return issues, nil
}

// ProcessFiles converts each of the given paths, files or
// directories, collecting issues across all of them.
func ProcessFiles(ctx context.Context, logger *zap.Logger, p *Pipeline, paths []string) ([]types.Issue, error) {
	var allIssues []types.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, p, path)
		if err != nil {
			if logger != nil {
				logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath converts one file, or every convertible file under a
// directory. Directory conversion is worker-bounded and renders a
// progress bar.
func ProcessPath(ctx context.Context, logger *zap.Logger, p *Pipeline, path string) ([]types.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, fmt.Errorf("unsupported file type: %s", path)
		}
		return p.ConvertFile(path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	var mu sync.Mutex
	var issues []types.Issue
	var wg sync.WaitGroup

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := p.ConvertFile(fp)
			if err != nil && logger != nil {
				logger.Error("error converting file", zap.String("file", fp), zap.Error(err))
			}

			mu.Lock()
			issues = append(issues, fileIssues...)
			mu.Unlock()
			_ = bar.Add(1)
		}(filePath)
	}
	wg.Wait()

	return issues, nil
}
