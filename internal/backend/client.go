package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/csheth/studyscout/internal/session"
)

const (
	pathUpload             = "/upload"
	pathGenerateSummary    = "/generate-summary"
	pathGenerateFlashcards = "/generate-flashcards"
	pathAskQuestion        = "/ask-question"
	pathUpdateAPIKey       = "/update-api-key"

	maxErrorBody = 64 << 10
)

type httpClient struct {
	base   string
	client *http.Client
}

func (c *httpClient) UploadText(ctx context.Context, text string) (UploadResult, error) {
	form := url.Values{}
	form.Set("text_content", text)
	req, err := c.newRequest(ctx, pathUpload, strings.NewReader(form.Encode()))
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result UploadResult
	if err := c.do(req, pathUpload, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

func (c *httpClient) GenerateSummary(ctx context.Context, text string) (string, error) {
	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := c.postJSON(ctx, pathGenerateSummary, map[string]string{"text": text}, &parsed); err != nil {
		return "", err
	}
	return parsed.Summary, nil
}

func (c *httpClient) GenerateFlashcards(ctx context.Context, text string) ([]session.Flashcard, error) {
	var parsed struct {
		Flashcards []session.Flashcard `json:"flashcards"`
	}
	if err := c.postJSON(ctx, pathGenerateFlashcards, map[string]string{"text": text}, &parsed); err != nil {
		return nil, err
	}
	return parsed.Flashcards, nil
}

func (c *httpClient) AskQuestion(ctx context.Context, question string, context *string) (string, error) {
	payload := struct {
		Question string  `json:"question"`
		Context  *string `json:"context"`
	}{Question: question, Context: context}
	var parsed struct {
		Answer string `json:"answer"`
	}
	if err := c.postJSON(ctx, pathAskQuestion, payload, &parsed); err != nil {
		return "", err
	}
	return parsed.Answer, nil
}

func (c *httpClient) UpdateAPIKey(ctx context.Context, apiKey string) error {
	return c.postJSON(ctx, pathUpdateAPIKey, map[string]string{"api_key": apiKey}, nil)
}

func (c *httpClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *httpClient) newRequest(ctx context.Context, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out. A nil out accepts any body.
func (c *httpClient) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[backend] %s transport error: %v", endpoint, err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode, Detail: parseDetail(body)}
		log.Printf("[backend] %s request=%s failed: %v", endpoint, req.Header.Get("X-Request-ID"), apiErr)
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, endpoint, err)
	}
	return nil
}
