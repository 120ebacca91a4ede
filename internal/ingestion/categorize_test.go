package ingestion_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/finance-tracker/internal/ingestion"
)

type stubCompleter struct {
	replies []string
	errs    []error
	calls   atomic.Int32
	block   bool
	prompt  atomic.Value
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, _ ingestion.CompletionOptions) (string, error) {
	n := int(s.calls.Add(1)) - 1
	s.prompt.Store(prompt)
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if n < len(s.errs) && s.errs[n] != nil {
		return "", s.errs[n]
	}
	if n < len(s.replies) {
		return s.replies[n], nil
	}
	return s.replies[len(s.replies)-1], nil
}

var _ = Describe("Categorizer", func() {
	var (
		completer *stubCompleter
		pair      ingestion.Pair
	)

	newCategorizer := func(timeout time.Duration, attempts int) *ingestion.Categorizer {
		return ingestion.NewCategorizer(completer, ingestion.CategorizerOptions{
			Timeout:     timeout,
			MaxAttempts: attempts,
			RetryBase:   time.Millisecond,
		}, nil)
	}

	BeforeEach(func() {
		completer = &stubCompleter{}
		pair = ingestion.Pair{Item: "AMUL BUTTER 500G", Amount: decimal.NewFromInt(55)}
	})

	It("returns the sanitized label from the backend", func() {
		completer.replies = []string{"**Groceries**\nBecause butter is food."}

		category := newCategorizer(time.Second, 1).Categorize(context.Background(), pair)

		Expect(category).To(Equal("Groceries"))
		Expect(completer.prompt.Load()).To(ContainSubstring("AMUL BUTTER 500G"))
		Expect(completer.prompt.Load()).To(ContainSubstring("₹55.00"))
	})

	It("retries a failed call before giving up", func() {
		completer.errs = []error{errors.New("connection reset")}
		completer.replies = []string{"", "Dairy"}

		category := newCategorizer(time.Second, 2).Categorize(context.Background(), pair)

		Expect(category).To(Equal("Dairy"))
		Expect(completer.calls.Load()).To(Equal(int32(2)))
	})

	It("falls back when every attempt fails", func() {
		completer.errs = []error{errors.New("503"), errors.New("503")}
		completer.replies = []string{""}

		category := newCategorizer(time.Second, 2).Categorize(context.Background(), pair)

		Expect(category).To(Equal(ingestion.FallbackCategory))
	})

	It("falls back when the backend times out", func() {
		completer.block = true

		start := time.Now()
		category := newCategorizer(20*time.Millisecond, 3).Categorize(context.Background(), pair)

		Expect(category).To(Equal(ingestion.FallbackCategory))
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
	})

	It("falls back on an over-long label", func() {
		completer.replies = []string{strings.Repeat("a", 41)}

		Expect(newCategorizer(time.Second, 1).Categorize(context.Background(), pair)).To(Equal(ingestion.FallbackCategory))
	})

	It("falls back without a backend", func() {
		c := ingestion.NewCategorizer(nil, ingestion.CategorizerOptions{}, nil)

		Expect(c.Categorize(context.Background(), pair)).To(Equal(ingestion.FallbackCategory))
	})

	Describe("SanitizeCategory", func() {
		It("strips surrounding punctuation from the first line", func() {
			label, ok := ingestion.SanitizeCategory(`  "Electricity Bill".` + "\nextra")
			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("Electricity Bill"))
		})

		It("rejects labels that are empty after trimming", func() {
			_, ok := ingestion.SanitizeCategory(" *** ")
			Expect(ok).To(BeFalse())
		})

		It("accepts a label of exactly the maximum length", func() {
			label, ok := ingestion.SanitizeCategory(strings.Repeat("b", ingestion.MaxCategoryLength))
			Expect(ok).To(BeTrue())
			Expect(label).To(HaveLen(ingestion.MaxCategoryLength))
		})
	})
})
