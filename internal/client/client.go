// Package client is a small HTTP client for the document Q&A API,
// used by the interactive terminal client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to a running docqa-server instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// AskResponse mirrors the /ask response body.
type AskResponse struct {
	Answer  string `json:"answer"`
	Context string `json:"context"`
}

type uploadResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generous timeout: an ask waits on a hosted model inference.
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Upload sends the file at path as a multipart form and returns the server's
// message.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out uploadResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Ask submits a question and returns the answer together with the context
// the server used to produce it.
func (c *Client) Ask(ctx context.Context, question string) (AskResponse, error) {
	form := url.Values{"question": {question}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", strings.NewReader(form.Encode()))
	if err != nil {
		return AskResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var out AskResponse
	if err := c.do(req, &out); err != nil {
		return AskResponse{}, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach server: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			return fmt.Errorf("server error: %s", er.Error)
		}
		return fmt.Errorf("server error: %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return json.Unmarshal(body, out)
}
