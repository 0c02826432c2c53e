package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TSCosta20/housing-project/internal/models"
)

// WebhookSender POSTs each deal event as JSON to a configured URL, for
// deployments that bridge alerts into chat tools instead of FCM.
type WebhookSender struct {
	URL  string
	HTTP *http.Client
}

func (s *WebhookSender) Send(ctx context.Context, event models.DealEvent) error {
	url := strings.TrimSpace(s.URL)
	if url == "" {
		return errors.New("webhook url is empty")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("webhook http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func (s *WebhookSender) httpClient() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}
