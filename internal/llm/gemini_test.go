package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/finance-tracker/internal/ingestion"
	"github.com/frahmantamala/finance-tracker/internal/llm"
)

var _ = Describe("GeminiCompleter", func() {
	var (
		reply   string
		status  int
		gotPath string
		gotBody map[string]interface{}
		server  *httptest.Server
		opts    ingestion.CompletionOptions
	)

	BeforeEach(func() {
		reply = `{"candidates":[{"content":{"role":"model","parts":[{"text":"Groceries\n"}]}}]}`
		status = http.StatusOK
		gotBody = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(reply))
		}))
		DeferCleanup(server.Close)
		opts = ingestion.CompletionOptions{Temperature: 0.25, TopP: 0.75, TopK: 40, MaxOutputTokens: 50}
	})

	newCompleter := func() *llm.GeminiCompleter {
		c, err := llm.NewGeminiCompleter(context.Background(), llm.GeminiConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	It("returns the trimmed model text and sends the sampling options", func() {
		text, err := newCompleter().Complete(context.Background(), "categorize AMUL BUTTER", opts)

		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Groceries"))
		Expect(gotPath).To(ContainSubstring(llm.DefaultGeminiModel + ":generateContent"))
		Expect(gotBody).To(HaveKey("generationConfig"))
		generation := gotBody["generationConfig"].(map[string]interface{})
		Expect(generation["temperature"]).To(BeNumerically("==", 0.25))
		Expect(generation["maxOutputTokens"]).To(BeNumerically("==", 50))
	})

	It("reports an empty reply", func() {
		reply = `{"candidates":[{"content":{"role":"model","parts":[{"text":"  "}]}}]}`

		_, err := newCompleter().Complete(context.Background(), "prompt", opts)

		Expect(err).To(MatchError(llm.ErrEmptyResponse))
	})

	It("reports a non-success status", func() {
		status = http.StatusServiceUnavailable
		reply = `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`

		_, err := newCompleter().Complete(context.Background(), "prompt", opts)

		Expect(err).To(HaveOccurred())
		Expect(strings.ToLower(err.Error())).To(ContainSubstring("gemini"))
	})

	It("refuses to start without an API key", func() {
		_, err := llm.NewGeminiCompleter(context.Background(), llm.GeminiConfig{})

		Expect(err).To(HaveOccurred())
	})
})
