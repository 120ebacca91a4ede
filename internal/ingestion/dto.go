package ingestion

// ResultResponse keeps the capitalized keys the bill scanner UI reads.
type ResultResponse struct {
	ID       int64   `json:"id"`
	Item     string  `json:"Item"`
	Amount   float64 `json:"Amount"`
	Category string  `json:"Category"`
}

func ToResponseList(results []Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ResultResponse{
			ID:       r.ID,
			Item:     r.Item,
			Amount:   r.Amount.InexactFloat64(),
			Category: r.Category,
		})
	}
	return out
}
