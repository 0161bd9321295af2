package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"tally/pkg/tracker"
)

// WebhookNotifier posts a human-readable batch summary to a chat
// webhook. An empty URL disables notification entirely.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

func New(url string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// BatchApplied sends the summary for one completed batch. Delivery
// failure is logged and swallowed; notification never affects the
// caller's response.
func (n *WebhookNotifier) BatchApplied(results []tracker.UpdateResult) {
	if n.URL == "" || len(results) == 0 {
		return
	}
	body, err := json.Marshal(webhookPayload{Content: FormatSummary(results)})
	if err != nil {
		log.Errorf("Failed to encode webhook payload: %v", err)
		return
	}
	resp, err := n.Client.Post(n.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to post webhook: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Errorf("Webhook returned status %d", resp.StatusCode)
	}
}

// FormatSummary renders one line per batch plus a line per failure.
func FormatSummary(results []tracker.UpdateResult) string {
	succeeded := 0
	var failures []string
	for _, r := range results {
		if r.Success {
			succeeded++
			continue
		}
		failures = append(failures, fmt.Sprintf("%s/%s/%s: %s", r.Department, r.Name, r.Field, r.Message))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d updates applied", succeeded, len(results))
	for _, f := range failures {
		b.WriteString("\nfailed ")
		b.WriteString(f)
	}
	return b.String()
}
