package manday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Row is one parsed line from the external CSV transformation service. The
// field names follow the service's wire format.
type Row struct {
	Role          string  `json:"Role"`
	Month         string  `json:"Month"`
	TotalDuration float64 `json:"TotalDuration"`
}

// Transformer turns a raw uploaded CSV file into structured rows. The
// parsing itself is delegated to an external collaborator; its output is
// untrusted input.
type Transformer interface {
	Transform(ctx context.Context, file io.Reader, filename, projectID, year string) ([]Row, error)
}

// WebhookTransformer posts the file to an HTTP webhook that extracts
// Role, Month and TotalDuration from it.
type WebhookTransformer struct {
	url    string
	apiKey string
	client *http.Client
}

func NewWebhookTransformer(url, apiKey string) *WebhookTransformer {
	return &WebhookTransformer{
		url:    url,
		apiKey: apiKey,
		client: http.DefaultClient,
	}
}

func (t *WebhookTransformer) Transform(ctx context.Context, file io.Reader, filename, projectID, year string) ([]Row, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into request: %w", err)
	}
	if err := writer.WriteField("projectId", projectID); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	if err := writer.WriteField("year", year); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.url, &body)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("x-api-key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		log.Errorf("Failed to reach transformation webhook: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("transformation webhook returned status %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}

	return decodeRows(payload)
}

// decodeRows accepts either a bare JSON array of rows or an object
// wrapping the array in a "data" field.
func decodeRows(payload []byte) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(payload, &rows); err == nil {
		return rows, nil
	}

	var envelope struct {
		Data []Row `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	return nil, fmt.Errorf("unexpected response format from transformation webhook")
}
