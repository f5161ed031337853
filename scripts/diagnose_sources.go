package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// SourceDiagnostic represents the diagnostic result for a single quote source.
type SourceDiagnostic struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "TIMEOUT", "REDIRECT", "READ_ERROR"
	HTTPCode      int    `json:"http_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
	ContentLength int64  `json:"content_length"`
}

// probeTarget is one external endpoint the crawler depends on.
type probeTarget struct {
	Name string
	URL  string
}

func main() {
	targets := []probeTarget{
		{Name: "quotable", URL: envOr("QUOTABLE_BASE_URL", "https://api.quotable.io") + "/quotes/random?limit=1"},
		{Name: "dummyjson", URL: envOr("DUMMYJSON_BASE_URL", "https://dummyjson.com") + "/quotes?limit=1"},
		{Name: "toscrape", URL: envOr("TOSCRAPE_BASE_URL", "https://quotes.toscrape.com/")},
		{Name: "rss", URL: envOr("QOTD_FEED_URL", "https://www.brainyquote.com/link/quotebr.rss")},
	}

	log.Printf("Diagnosing %d quote sources...\n", len(targets))

	diagnostics := make([]SourceDiagnostic, 0, len(targets))
	for i, target := range targets {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(targets), target.Name)
		diag := diagnoseSource(target.Name, target.URL, 30*time.Second)
		diagnostics = append(diagnostics, diag)

		// Rate limiting to be nice to servers
		time.Sleep(500 * time.Millisecond)
	}

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func diagnoseSource(name, url string, timeout time.Duration) SourceDiagnostic {
	diag := SourceDiagnostic{
		Name: name,
		URL:  url,
	}

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		diag.Status = "REQUEST_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	req.Header.Set("User-Agent", "QuoteService-Diagnostic/1.0")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(startTime).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("Request timeout after %v", timeout)
		} else {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	diag.HTTPCode = resp.StatusCode
	diag.ContentLength = resp.ContentLength

	if resp.Request.URL.String() != url {
		diag.RedirectURL = resp.Request.URL.String()
		diag.Status = "REDIRECT"
	}

	if resp.StatusCode != 200 {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return diag
	}

	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)); err != nil {
		diag.Status = "READ_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	if diag.Status == "" {
		diag.Status = "OK"
	}
	return diag
}

func writef(f *os.File, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

func generateReport(diagnostics []SourceDiagnostic) {
	f, err := os.Create("source_diagnostic_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	writeErr := func(err error) bool {
		if err != nil {
			log.Printf("Failed to write to report: %v", err)
			return true
		}
		return false
	}

	if writeErr(writef(f, "===============================================\n")) {
		return
	}
	if writeErr(writef(f, "Quote Source Diagnostic Report\n")) {
		return
	}
	if writeErr(writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))) {
		return
	}
	if writeErr(writef(f, "Total Sources: %d\n", len(diagnostics))) {
		return
	}
	if writeErr(writef(f, "===============================================\n\n")) {
		return
	}

	statusCount := make(map[string]int)
	var okCount, errorCount int
	for _, d := range diagnostics {
		statusCount[d.Status]++
		if d.Status == "OK" || d.Status == "REDIRECT" {
			okCount++
		} else {
			errorCount++
		}
	}

	_ = writef(f, "SUMMARY:\n")
	_ = writef(f, "  Working: %d (%.1f%%)\n", okCount, float64(okCount)/float64(len(diagnostics))*100)
	_ = writef(f, "  Broken: %d (%.1f%%)\n", errorCount, float64(errorCount)/float64(len(diagnostics))*100)
	_ = writef(f, "\nSTATUS BREAKDOWN:\n")
	for status, count := range statusCount {
		_ = writef(f, "  %s: %d\n", status, count)
	}

	_ = writef(f, "\nDETAILS:\n")
	for _, d := range diagnostics {
		_ = writef(f, "\n[%s] %s\n", d.Status, d.Name)
		_ = writef(f, "  URL: %s\n", d.URL)
		_ = writef(f, "  Response time: %dms\n", d.ResponseTime)
		if d.HTTPCode != 0 {
			_ = writef(f, "  HTTP code: %d\n", d.HTTPCode)
		}
		if d.RedirectURL != "" {
			_ = writef(f, "  Redirected to: %s\n", d.RedirectURL)
		}
		if d.ErrorMessage != "" {
			_ = writef(f, "  Error: %s\n", d.ErrorMessage)
		}
	}

	log.Println("Report written to source_diagnostic_report.txt")
}

func generateJSONReport(diagnostics []SourceDiagnostic) {
	f, err := os.Create("source_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("JSON report written to source_diagnostic_report.json")
}
