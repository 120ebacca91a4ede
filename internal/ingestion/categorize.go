package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const (
	FallbackCategory = "Miscellaneous"

	// MaxCategoryLength is the longest label accepted from the model.
	MaxCategoryLength = 40
)

var edgePunctuation = regexp.MustCompile(`^[^\p{L}\p{N}]+|[^\p{L}\p{N}]+$`)

// CompletionOptions are the sampling settings sent with every prompt.
type CompletionOptions struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// Completer is a text-generation backend.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

type CategorizerOptions struct {
	Completion  CompletionOptions
	Timeout     time.Duration
	MaxAttempts int
	// RetryBase is the first backoff delay between attempts.
	RetryBase time.Duration
}

// Categorizer labels receipt lines. It never fails: any problem with the
// backend yields FallbackCategory.
type Categorizer struct {
	completer Completer
	opts      CategorizerOptions
	logger    *slog.Logger
}

func NewCategorizer(completer Completer, opts CategorizerOptions, logger *slog.Logger) *Categorizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 250 * time.Millisecond
	}
	return &Categorizer{completer: completer, opts: opts, logger: logger}
}

func (c *Categorizer) Categorize(ctx context.Context, pair Pair) string {
	if c.completer == nil {
		return FallbackCategory
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	prompt := BuildPrompt(pair.Item, pair.Amount)
	backoff := retry.WithMaxRetries(uint64(c.opts.MaxAttempts-1), retry.NewExponential(c.opts.RetryBase))

	var label string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		raw, err := c.completer.Complete(ctx, prompt, c.opts.Completion)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		label = raw
		return nil
	})
	if err != nil {
		c.logger.Warn("categorization failed, using fallback", "item", pair.Item, "error", err)
		return FallbackCategory
	}

	category, ok := SanitizeCategory(label)
	if !ok {
		c.logger.Warn("unusable category label, using fallback", "item", pair.Item, "label", label)
		return FallbackCategory
	}
	return category
}

// SanitizeCategory keeps the first line of raw with surrounding punctuation
// removed. It reports false for an empty or over-long label.
func SanitizeCategory(raw string) (string, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	label := strings.TrimSpace(edgePunctuation.ReplaceAllString(strings.TrimSpace(first), ""))
	if label == "" || utf8.RuneCountInString(label) > MaxCategoryLength {
		return "", false
	}
	return label, true
}

func BuildPrompt(item string, amount decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("You are an expert Indian personal finance assistant.\n")
	fmt.Fprintf(&b, "Item from a bill/receipt: %q\n", strings.TrimSpace(item))
	fmt.Fprintf(&b, "Amount: ₹%s\n\n", amount.StringFixed(2))
	b.WriteString(`Suggest the SINGLE best category name for this expense.
Rules:
- Use common, natural, short category names (e.g. "Groceries", "Fuel", "Medicines", "Dining Out", "Electricity", "Movie Ticket", "Shopping", "Mobile Recharge")
- Prefer specific over generic when clear (e.g. "Petrol" instead of "Travel", "Medicines" instead of "Health")
- Keep the category name 1-3 words
- Capitalize Each Word (Title Case)
- Base the answer only on the given text
- If the item is unclear, answer "Miscellaneous"

Examples:
Item: "PARACETAMOL 650MG TAB" -> Medicines
Item: "UBER AUTO RIDE" -> Cab Ride
Item: "BESCOM ELECTRICITY" -> Electricity Bill
Item: "AMUL BUTTER 500G" -> Groceries
Item: "PVR CINEMAS" -> Movie

Respond with ONLY the category name.
`)
	return b.String()
}
