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
)

const LegacyEndpoint = "https://fcm.googleapis.com/fcm/send"

// Payload is one notification as shown on the device plus the data keys
// the app uses for deep links.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers one payload to one device token.
type Sender interface {
	Send(ctx context.Context, deviceToken string, payload Payload) error
}

// FCMSender posts to the FCM legacy HTTP endpoint using a server key.
type FCMSender struct {
	Endpoint  string
	ServerKey string

	HTTP *http.Client
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *FCMSender) Send(ctx context.Context, deviceToken string, payload Payload) error {
	key := strings.TrimSpace(s.ServerKey)
	if key == "" {
		return errors.New("fcm server key is empty")
	}
	endpoint := strings.TrimSpace(s.Endpoint)
	if endpoint == "" {
		endpoint = LegacyEndpoint
	}

	body, err := json.Marshal(fcmRequest{
		To:           deviceToken,
		Notification: fcmNotification{Title: payload.Title, Body: payload.Body},
		Data:         payload.Data,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+key)

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("fcm send http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func (s *FCMSender) httpClient() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}
