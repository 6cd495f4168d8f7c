package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/mindfleet/internal/model"
)

// Summarizer builds a report for one roster file
type Summarizer interface {
	SummarizeFile(ctx context.Context, path string) (*model.Report, error)
}

// SummaryJob summarises one roster file
type SummaryJob struct {
	Index      int
	Path       string
	Summarizer Summarizer
}

// Execute runs the summary
func (j *SummaryJob) Execute(ctx context.Context) Result {
	report, err := j.Summarizer.SummarizeFile(ctx, j.Path)
	return &SummaryResult{
		Index:  j.Index,
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// SummaryResult is the outcome for one roster file
type SummaryResult struct {
	Index  int
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the summary
func (r *SummaryResult) GetError() error {
	return r.Error
}

// BatchProcessor summarises several roster files concurrently
type BatchProcessor struct {
	summarizer  Summarizer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(summarizer Summarizer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		summarizer:  summarizer,
		concurrency: concurrency,
	}
}

// ProcessPaths summarises every path; results come back in input order.
// Paths left unprocessed when ctx ends get a result carrying ctx's error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*SummaryResult {
	if len(paths) == 0 {
		return []*SummaryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		job := &SummaryJob{Index: i, Path: path, Summarizer: b.summarizer}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*SummaryResult, 0, len(paths))
	done := make([]bool, len(paths))
	for _, r := range results {
		sr := r.(*SummaryResult)
		done[sr.Index] = true
		out = append(out, sr)
	}

	if len(out) < len(paths) {
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		for i, path := range paths {
			if !done[i] {
				out = append(out, &SummaryResult{Index: i, Path: path, Error: err})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads roster paths from a list file and summarises them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*SummaryResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read roster list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads roster paths, one per line. Relative paths resolve
// against the list file's directory; blank lines and # comments are skipped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
