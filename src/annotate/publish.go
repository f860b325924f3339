package annotate

import (
	"context"
	"fmt"

	"svdcheck/src/checks"
	"svdcheck/src/diag"
	"svdcheck/src/logger"
)

// CheckName is the name check runs are created under.
const CheckName = "SVD validation"

const cancelledSummary = "svdcheck was cancelled by an internal error. See the workflow logs for details."

// CheckAPI is the narrow slice of the checks client the publisher calls.
// Tests substitute an in-process fake.
type CheckAPI interface {
	CreateCheckRun(ctx context.Context, owner, repo, name, headSHA string) (int64, error)
	UpdateCheckRun(ctx context.Context, owner, repo string, id int64, req checks.UpdateRequest) error
}

// Params identifies the target check run.
type Params struct {
	Owner   string
	Repo    string
	HeadSHA string
	// SVDPath is the annotated file's path as it appears in the repository.
	SVDPath string
}

// Publisher drives the batching loop against the checks API. The flow is
// strictly sequential: one create, one update per batch, one completed
// transition. No batch is ever re-sent; annotations accumulate server-side.
type Publisher struct {
	api CheckAPI
	log logger.Logger
}

func NewPublisher(api CheckAPI, log logger.Logger) *Publisher {
	return &Publisher{api: api, log: log}
}

// Publish creates the check run, uploads every annotation batch, and
// completes the run with a neutral conclusion carrying the severity tally.
// On any upload or finalization failure it completes the run as cancelled
// instead; if that secondary call also fails, its error propagates.
func (p *Publisher) Publish(ctx context.Context, params Params, report *diag.Report) error {
	id, err := p.api.CreateCheckRun(ctx, params.Owner, params.Repo, CheckName, params.HeadSHA)
	if err != nil {
		return fmt.Errorf("create check run: %w", err)
	}
	p.log.Debug("created check run %d for %s", id, params.HeadSHA)

	if err := p.run(ctx, params, id, report); err != nil {
		p.log.Error("check run %d failed: %v", id, err)

		cancel := checks.UpdateRequest{
			Status:     checks.StatusCompleted,
			Conclusion: checks.ConclusionCancelled,
			Output: &checks.Output{
				Title:   CheckName,
				Summary: cancelledSummary,
			},
		}
		if cancelErr := p.api.UpdateCheckRun(ctx, params.Owner, params.Repo, id, cancel); cancelErr != nil {
			return fmt.Errorf("cancel check run after %v: %w", err, cancelErr)
		}
		return err
	}

	return nil
}

// run uploads batches until the report is drained, then finalizes.
func (p *Publisher) run(ctx context.Context, params Params, id int64, report *diag.Report) error {
	for {
		batch := NextBatch(report, params.SVDPath)
		if batch == nil {
			break
		}

		update := checks.UpdateRequest{
			Status: checks.StatusInProgress,
			Output: &checks.Output{
				Title:       CheckName,
				Summary:     fmt.Sprintf("Validating %s", params.SVDPath),
				Annotations: batch,
			},
		}
		if err := p.api.UpdateCheckRun(ctx, params.Owner, params.Repo, id, update); err != nil {
			return fmt.Errorf("push annotation batch: %w", err)
		}
		p.log.Debug("pushed %d annotations to check run %d", len(batch), id)
	}

	final := checks.UpdateRequest{
		Status:     checks.StatusCompleted,
		Conclusion: checks.ConclusionNeutral,
		Output: &checks.Output{
			Title:   CheckName,
			Summary: SummaryLine(report.Stats),
			Text:    fmt.Sprintf("SVDConv validated `%s`.", params.SVDPath),
		},
	}
	if err := p.api.UpdateCheckRun(ctx, params.Owner, params.Repo, id, final); err != nil {
		return fmt.Errorf("complete check run: %w", err)
	}

	return nil
}

// SummaryLine renders the severity tally for check-run summaries and logs.
func SummaryLine(stats diag.Stats) string {
	return fmt.Sprintf("SVDConv reported %d errors, %d warnings and %d notes.",
		stats.Errors, stats.Warnings, stats.Notes)
}
