// Package exporter plans and runs batch exports: output naming, the
// same-directory overwrite guard, and the per-file render/save loop.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// ErrSameDirectory rejects a batch whose output directory would overwrite
// originals in place.
var ErrSameDirectory = errors.New("export into a source directory is forbidden")

const defaultWorkers = 5

type Exporter struct {
	pipeline *processor.Pipeline
	logger   *zap.Logger
	workers  int
}

func New(pipeline *processor.Pipeline, logger *zap.Logger, workers int) *Exporter {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Exporter{pipeline: pipeline, logger: logger, workers: workers}
}

// Export runs one batch. The same-directory guard is checked before any file
// is touched; after that, files are processed by a bounded worker pool and
// per-file failures are collected, never fatal. The returned result always
// covers the whole batch.
func (e *Exporter) Export(ctx context.Context, job models.ExportJob) (*models.ExportResult, error) {
	settings := job.Settings.Clamped()
	outDir := filepath.Clean(job.OutputDir)

	for _, src := range job.Paths {
		if filepath.Dir(filepath.Clean(src)) == outDir {
			return nil, fmt.Errorf("%w: %s", ErrSameDirectory, src)
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	outputs := make([]string, len(job.Paths))
	errs := make([]error, len(job.Paths))

	numWorkers := e.workers
	if len(job.Paths) < numWorkers {
		numWorkers = len(job.Paths)
	}

	jobs := make(chan int, len(job.Paths))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				outputs[i], errs[i] = e.exportOne(job.Paths[i], outDir, settings)
			}
		}()
	}

	for i := range job.Paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &models.ExportResult{}
	for i, err := range errs {
		if err != nil {
			e.logger.Warn("export item failed",
				zap.String("job_id", job.ID),
				zap.String("source", job.Paths[i]),
				zap.Error(err))
			result.Failed = append(result.Failed, models.ExportFailure{
				Path:  job.Paths[i],
				Error: err.Error(),
			})
			continue
		}
		result.Succeeded++
		result.Outputs = append(result.Outputs, outputs[i])
	}

	e.logger.Info("export batch finished",
		zap.String("job_id", job.ID),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func (e *Exporter) exportOne(src, outDir string, s models.WatermarkSettings) (string, error) {
	img, err := imaging.Open(src)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", src, err)
	}

	rendered := e.pipeline.Render(img, s)

	outPath := filepath.Join(outDir, OutputName(src, s))
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := processor.Encode(f, rendered, s); err != nil {
		return "", fmt.Errorf("encode %s: %w", outPath, err)
	}
	return outPath, nil
}

// OutputName derives the output file name for one source per the naming
// rule. The extension is forced by the output format regardless of the
// source extension.
func OutputName(src string, s models.WatermarkSettings) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	switch s.NamingRule {
	case models.NamingPrefix:
		name = s.Prefix + name
	case models.NamingSuffix:
		name = name + s.Suffix
	}
	return name + s.Extension()
}
