package biz

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	gmailAPIBase    = "https://gmail.googleapis.com/gmail/v1"
	maxThreadSize   = 10
	bodyPreviewSize = 500
)

// ThreadMessage is one correspondence entry with a contact
type ThreadMessage struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Cc      string `json:"cc,omitempty"`
	Bcc     string `json:"bcc,omitempty"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type gmailListResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID      string           `json:"id"`
	Payload gmailMessagePart `json:"payload"`
}

type gmailHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type gmailBody struct {
	Data string `json:"data"`
}

type gmailMessagePart struct {
	MimeType string             `json:"mimeType"`
	Headers  []gmailHeader      `json:"headers"`
	Body     gmailBody          `json:"body"`
	Parts    []gmailMessagePart `json:"parts"`
}

// Reader fetches a user's correspondence with a contact through the
// Gmail REST API.
type Reader struct {
	httpClient *http.Client
	baseURL    string
}

// NewReader creates the reader
func NewReader() *Reader {
	return &Reader{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    gmailAPIBase,
	}
}

// Thread returns up to 10 messages exchanged with the given address,
// newest first, with bodies truncated to 500 characters.
func (r *Reader) Thread(ctx context.Context, accessToken, contactEmail string) ([]ThreadMessage, error) {
	ids, err := r.listMessageIDs(ctx, accessToken, contactEmail)
	if err != nil {
		return nil, err
	}

	messages := make([]ThreadMessage, 0, len(ids))
	for _, id := range ids {
		msg, err := r.fetchMessage(ctx, accessToken, id)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *Reader) listMessageIDs(ctx context.Context, accessToken, contactEmail string) ([]string, error) {
	query := fmt.Sprintf("to:%s OR from:%s", contactEmail, contactEmail)
	endpoint := fmt.Sprintf("%s/users/me/messages?q=%s&maxResults=%d",
		r.baseURL, url.QueryEscape(query), maxThreadSize)

	body, err := r.get(ctx, accessToken, endpoint)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	var list gmailListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode message list: %w", err)
	}

	ids := make([]string, 0, len(list.Messages))
	for _, m := range list.Messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (r *Reader) fetchMessage(ctx context.Context, accessToken, id string) (ThreadMessage, error) {
	endpoint := fmt.Sprintf("%s/users/me/messages/%s?format=full", r.baseURL, id)

	body, err := r.get(ctx, accessToken, endpoint)
	if err != nil {
		return ThreadMessage{}, fmt.Errorf("fetch message %s: %w", id, err)
	}

	var msg gmailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return ThreadMessage{}, fmt.Errorf("decode message %s: %w", id, err)
	}

	out := ThreadMessage{ID: msg.ID}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			out.From = h.Value
		case "To":
			out.To = h.Value
		case "Cc":
			out.Cc = h.Value
		case "Bcc":
			out.Bcc = h.Value
		case "Date":
			out.Date = h.Value
		case "Subject":
			out.Subject = h.Value
		}
	}

	out.Body = truncate(extractBody(&msg.Payload), bodyPreviewSize)
	return out, nil
}

func (r *Reader) get(ctx context.Context, accessToken, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gmail api status %d", resp.StatusCode)
	}
	return body, nil
}

// extractBody returns the first text/plain part, falling back to
// text/html, searching parts depth-first.
func extractBody(payload *gmailMessagePart) string {
	if body := findPart(payload, "text/plain"); body != "" {
		return body
	}
	return findPart(payload, "text/html")
}

func findPart(part *gmailMessagePart, mimeType string) string {
	if part.MimeType == mimeType && part.Body.Data != "" {
		decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(part.Body.Data, "="))
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	for i := range part.Parts {
		if body := findPart(&part.Parts[i], mimeType); body != "" {
			return body
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
