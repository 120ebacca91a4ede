package ingestion_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/ingestion"
)

var _ = Describe("Line-pair parsing", func() {
	DescribeTable("ParseAmount",
		func(line, expected string) {
			Expect(ingestion.ParseAmount(line).Equal(decimal.RequireFromString(expected))).To(BeTrue())
		},
		Entry("rupee symbol with fraction", "₹55.00", "55"),
		Entry("dollar symbol", "$12.5", "12.5"),
		Entry("thousands separators", "1,234.50", "1234.5"),
		Entry("label before the number", "Total Rs. 120", "120"),
		Entry("first run wins", "2 x 40", "2"),
		Entry("rounded to cents", "55.125", "55.13"),
		Entry("sub-cent amount rounds to zero", "0.004", "0"),
		Entry("no digits", "no price", "0"),
		Entry("empty line", "", "0"),
	)

	Describe("PairLines", func() {
		It("pairs by index and marks unparsable amounts as zero", func() {
			// Given
			items := []string{"Milk 1L", "Bread"}
			amounts := []string{"₹55.00", "no price"}

			// When
			pairs, err := ingestion.PairLines(items, amounts, ingestion.AlignTruncate)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(HaveLen(2))
			Expect(pairs[0].Item).To(Equal("Milk 1L"))
			Expect(pairs[0].Amount.Equal(decimal.NewFromInt(55))).To(BeTrue())
			Expect(pairs[0].Billable()).To(BeTrue())
			Expect(pairs[1].Item).To(Equal("Bread"))
			Expect(pairs[1].Amount.IsZero()).To(BeTrue())
			Expect(pairs[1].Billable()).To(BeFalse())
		})

		It("drops blank lines from each column before pairing", func() {
			items := []string{"  Tea  ", "", "Coffee"}
			amounts := []string{"10", "   ", "", "20"}

			pairs, err := ingestion.PairLines(items, amounts, ingestion.AlignTruncate)

			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(HaveLen(2))
			Expect(pairs[0].Item).To(Equal("Tea"))
			Expect(pairs[1].Item).To(Equal("Coffee"))
			Expect(pairs[1].Amount.Equal(decimal.NewFromInt(20))).To(BeTrue())
		})

		It("stops at the shorter column when truncating", func() {
			pairs, err := ingestion.PairLines([]string{"A", "B", "C"}, []string{"1"}, ingestion.AlignTruncate)

			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(HaveLen(1))
		})

		It("rejects unequal columns when strict", func() {
			_, err := ingestion.PairLines([]string{"A", "B"}, []string{"1"}, ingestion.AlignStrict)

			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(appErrors.ErrCodeInvalidInput))
		})

		It("accepts equal columns when strict", func() {
			pairs, err := ingestion.PairLines([]string{"A", "", "B"}, []string{"1", "2"}, ingestion.AlignStrict)

			Expect(err).NotTo(HaveOccurred())
			Expect(pairs).To(HaveLen(2))
		})
	})

	Describe("SplitLines", func() {
		It("returns trimmed non-blank lines", func() {
			Expect(ingestion.SplitLines(" a \r\n\n b\n")).To(Equal([]string{"a", "b"}))
		})
	})
})
