package ingestion

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Recognizer turns an image region into text, one recognized line per line.
type Recognizer interface {
	Recognize(ctx context.Context, region image.Image) (string, error)
}

// CategorizerAPI labels a single pair and never fails.
type CategorizerAPI interface {
	Categorize(ctx context.Context, pair Pair) string
}

// Ledger stores one categorized receipt line.
type Ledger interface {
	RecordScannedItem(ctx context.Context, ownerID int64, itemName string, amount decimal.Decimal, category string) (*expense.Expense, error)
}

// PairState tracks a pair through a batch.
type PairState int

const (
	PairPending PairState = iota
	PairParsed
	PairSkipped
	PairCategorized
	PairPersisted
	PairFailed
)

func (s PairState) String() string {
	switch s {
	case PairPending:
		return "pending"
	case PairParsed:
		return "parsed"
	case PairSkipped:
		return "skipped"
	case PairCategorized:
		return "categorized"
	case PairPersisted:
		return "persisted"
	case PairFailed:
		return "failed"
	}
	return "unknown"
}

type PipelineOptions struct {
	MaxWorkers   int
	BatchTimeout time.Duration
	Alignment    Alignment
	TempDir      string
}

type Upload struct {
	OwnerID    int64
	Image      io.Reader
	Rectangles []Rect
}

// Result is returned to the caller for every pair that was stored.
type Result struct {
	ID       int64
	Item     string
	Amount   decimal.Decimal
	Category string
}

// PairOutcome is the final state of one pair.
type PairOutcome struct {
	Pair      Pair
	State     PairState
	Category  string
	ExpenseID int64
	Err       error
}

type IngestResult struct {
	Results  []Result
	Outcomes []PairOutcome
}

func (r *IngestResult) count(state PairState) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

func (r *IngestResult) Skipped() int { return r.count(PairSkipped) }
func (r *IngestResult) Failed() int  { return r.count(PairFailed) }

type Pipeline struct {
	recognizer  Recognizer
	categorizer CategorizerAPI
	ledger      Ledger
	opts        PipelineOptions
	logger      *slog.Logger
}

func NewPipeline(recognizer Recognizer, categorizer CategorizerAPI, ledger Ledger, opts PipelineOptions, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 4
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 60 * time.Second
	}
	if opts.Alignment == "" {
		opts.Alignment = AlignTruncate
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	return &Pipeline{
		recognizer:  recognizer,
		categorizer: categorizer,
		ledger:      ledger,
		opts:        opts,
		logger:      logger,
	}
}

// Ingest scans one receipt and stores every billable line as an Expense.
// Pairs are stored one by one in receipt order; a failure stores nothing
// for that pair and leaves earlier pairs in place.
func (p *Pipeline) Ingest(ctx context.Context, upload Upload) (*IngestResult, error) {
	if len(upload.Rectangles) < minRectangles {
		return nil, errors.NewInvalidInputError("please draw 2 rectangles (items + amounts)")
	}
	if upload.Image == nil {
		return nil, errors.NewInvalidInputError("missing image")
	}

	texts, err := p.recognizeColumns(ctx, upload)
	if err != nil {
		return nil, err
	}

	pairs, err := PairLines(texts[itemsRegion], texts[amountsRegion], p.opts.Alignment)
	if err != nil {
		return nil, err
	}

	outcomes := make([]PairOutcome, len(pairs))
	for i, pair := range pairs {
		outcomes[i] = PairOutcome{Pair: pair, State: PairParsed}
		if !pair.Billable() {
			outcomes[i].State = PairSkipped
		}
	}

	p.categorize(ctx, outcomes)

	lg := p.log(ctx)
	result := &IngestResult{Outcomes: outcomes}
	for i := range outcomes {
		o := &outcomes[i]
		if o.State != PairCategorized {
			continue
		}
		if ctx.Err() != nil {
			o.State = PairFailed
			o.Err = ctx.Err()
			continue
		}

		e, err := p.ledger.RecordScannedItem(ctx, upload.OwnerID, o.Pair.Item, o.Pair.Amount, o.Category)
		if err != nil {
			lg.Error("failed to store scanned item", "error", err, "item", o.Pair.Item)
			o.State = PairFailed
			o.Err = err
			continue
		}

		o.State = PairPersisted
		o.ExpenseID = e.ID
		result.Results = append(result.Results, Result{
			ID:       e.ID,
			Item:     e.ItemName,
			Amount:   e.Amount,
			Category: o.Category,
		})
	}

	lg.Info("bill ingested",
		"pairs", len(pairs),
		"stored", len(result.Results),
		"skipped", result.Skipped(),
		"failed", result.Failed())

	return result, nil
}

// log prefers the request logger so trace and owner fields carry through.
func (p *Pipeline) log(ctx context.Context) *slog.Logger {
	return logger.FromOr(ctx, p.logger)
}

// recognizeColumns spools the upload, decodes it and reads the items and
// amounts regions. The temp file is gone by the time it returns.
func (p *Pipeline) recognizeColumns(ctx context.Context, upload Upload) ([2][]string, error) {
	var texts [2][]string

	file, release, err := SpoolUpload(p.opts.TempDir, upload.Image)
	defer release()
	if err != nil {
		return texts, errors.NewInternalError("failed to store upload", err)
	}

	img, err := DecodeImage(file)
	release()
	if err != nil {
		return texts, err
	}

	regions, err := ExtractRegions(img, upload.Rectangles)
	if err != nil {
		return texts, err
	}

	for i := range texts {
		texts[i] = SplitLines(p.recognize(ctx, regions[i], i))
	}
	return texts, nil
}

// recognize treats a recognition failure as an empty region.
func (p *Pipeline) recognize(ctx context.Context, region image.Image, index int) string {
	if region.Bounds().Empty() {
		return ""
	}
	text, err := p.recognizer.Recognize(ctx, region)
	if err != nil {
		p.log(ctx).Warn("text recognition failed, treating region as empty", "region", index, "error", err)
		return ""
	}
	return text
}

// categorize labels billable pairs on a bounded pool. Once the batch
// timeout passes, remaining pairs get the fallback category.
func (p *Pipeline) categorize(ctx context.Context, outcomes []PairOutcome) {
	batchCtx, cancel := context.WithTimeout(ctx, p.opts.BatchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(p.opts.MaxWorkers)

	for i := range outcomes {
		if outcomes[i].State != PairParsed {
			continue
		}
		o := &outcomes[i]
		g.Go(func() error {
			o.Category = p.categorizer.Categorize(gctx, o.Pair)
			o.State = PairCategorized
			return nil
		})
	}
	_ = g.Wait()
}
