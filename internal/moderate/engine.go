package moderate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"gatekeep/internal/classifier"
	"gatekeep/internal/record"
)

// DefaultBatchSize is the number of comments sent per remote call.
const DefaultBatchSize = 10

// Engine runs the batch moderation loop: partition, classify,
// normalize, merge. Batches are strictly sequential; a failed batch is
// logged and skipped, never fatal.
type Engine struct {
	classifier classifier.Client
	batchSize  int
	delay      time.Duration
	log        zerolog.Logger
}

// NewEngine builds an engine. A non-positive batch size falls back to
// DefaultBatchSize; a negative delay is treated as zero.
func NewEngine(c classifier.Client, batchSize int, delay time.Duration, log zerolog.Logger) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if delay < 0 {
		delay = 0
	}
	return &Engine{classifier: c, batchSize: batchSize, delay: delay, log: log}
}

// Run moderates every record in the store and merges the verdicts back
// in place. It returns the flat list of verdicts the classifier
// produced, including any that referenced unknown ids. The only error
// it returns is context cancellation; everything else is per-batch and
// recoverable.
func (e *Engine) Run(ctx context.Context, store *record.Store) ([]Verdict, error) {
	total := (len(store.Records) + e.batchSize - 1) / e.batchSize

	var verdicts []Verdict
	for i := 0; i < len(store.Records); i += e.batchSize {
		if err := ctx.Err(); err != nil {
			return verdicts, err
		}

		end := i + e.batchSize
		if end > len(store.Records) {
			end = len(store.Records)
		}
		batch := store.Records[i:end]
		num := i/e.batchSize + 1

		e.log.Info().
			Int("batch", num).
			Int("batches", total).
			Int("comments", len(batch)).
			Msg("processing batch")

		reply, err := e.classifier.Classify(ctx, BuildPrompt(batch))
		if err != nil {
			e.log.Error().Err(err).Int("batch", num).
				Msg("batch failed; its comments stay unmoderated")
		} else {
			verdicts = append(verdicts, Normalize(reply, e.log)...)
		}

		// Fixed pause after every batch regardless of outcome, to
		// respect remote rate limits.
		e.pause(ctx)
	}

	e.merge(store, verdicts)
	return verdicts, nil
}

func (e *Engine) pause(ctx context.Context) {
	if e.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(e.delay):
	}
}

// merge applies each verdict's moderation fields onto the record whose
// comment_id matches. Verdicts for unknown ids are dropped with a
// warning; original record fields are never touched.
func (e *Engine) merge(store *record.Store, verdicts []Verdict) {
	idx := store.Index()
	for _, v := range verdicts {
		cid := v.ID()
		rec, ok := idx[cid]
		if !ok {
			e.log.Warn().Str("comment_id", cid).Msg("skipping verdict for unknown comment_id")
			continue
		}
		for _, field := range record.ModerationFields {
			if val, ok := v[field]; ok {
				rec[field] = val
			}
		}
	}
}
