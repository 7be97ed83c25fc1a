// Package mailclient - клиент удаленного почтового сервиса подтверждений
// с эндпоинтами POST /api/send-email и GET /api/health.
package mailclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

// SendEmailRequest - тело запроса POST /api/send-email.
type SendEmailRequest struct {
	FormData *models.Registration `json:"formData"`
}

// SendEmailResponse возвращается почтовым сервисом при успехе.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthResponse возвращается GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Client - клиент почтового API, реализует services.Notifier.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ services.Notifier = (*Client)(nil)

// New создает новый клиент почтового API.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send просит почтовый сервис доставить подтверждение для reg.
func (c *Client) Send(ctx context.Context, reg *models.Registration) (*SendEmailResponse, error) {
	var out SendEmailResponse
	if err := c.post(ctx, "/api/send-email", SendEmailRequest{FormData: reg}, &out); err != nil {
		return nil, fmt.Errorf("mailclient.Send: %w", err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "Failed to send email"
		}
		return nil, fmt.Errorf("mailclient.Send: %s", msg)
	}
	return &out, nil
}

// Notify реализует services.Notifier. Любой сбой возвращается как NotificationError.
// Копию оператору удаленный сервис шлет на свой адрес, который нам не известен,
// поэтому в квитанции указан только участник.
func (c *Client) Notify(ctx context.Context, reg *models.Registration) (*models.DeliveryReceipt, error) {
	out, err := c.Send(ctx, reg)
	if err != nil {
		return nil, &services.NotificationError{Recipient: reg.Email, Err: err}
	}
	return &models.DeliveryReceipt{MessageID: out.MessageID, Recipients: []string{reg.Email}}, nil
}

// Health сообщает, отвечает ли почтовый сервис статусом "ok".
func (c *Client) Health(ctx context.Context) (bool, error) {
	var out HealthResponse
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return false, fmt.Errorf("mailclient.Health: %w", err)
	}
	return out.Status == "ok", nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
