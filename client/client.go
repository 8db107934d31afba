package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

type Client struct {
	http.Client
	Addr string
}

// Article is the public representation returned by the service.
type Article struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Style         string `json:"style"`
	Content       string `json:"content"`
	DatePublished string `json:"date_published"`
}

// NewArticle is a creation payload. A nil field is sent as null.
type NewArticle struct {
	Title   *string `json:"title"`
	Style   *string `json:"style"`
	Content *string `json:"content"`
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("articles: %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var list []Article
	if _, err := c.do(ctx, http.MethodGet, "/articles", nil, http.StatusOK, &list); err != nil {
		return nil, err
	}

	return list, nil
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	a := &Article{}
	if _, err := c.do(ctx, http.MethodGet, "/articles/"+strconv.FormatInt(id, 10), nil, http.StatusOK, a); err != nil {
		return nil, err
	}

	return a, nil
}

// CreateArticle posts a new article and returns it with the Location the
// service reported for it.
func (c *Client) CreateArticle(ctx context.Context, na NewArticle) (*Article, string, error) {
	body, err := json.Marshal(na)
	if err != nil {
		return nil, "", err
	}

	a := &Article{}
	resp, err := c.do(ctx, http.MethodPost, "/articles", body, http.StatusCreated, a)
	if err != nil {
		return nil, "", err
	}

	return a, resp.Header.Get("Location"), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, want int, out interface{}) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)

		return resp, &APIError{StatusCode: resp.StatusCode, Message: e.Error.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, err
	}

	return resp, nil
}

// String is a helper for building NewArticle payloads.
func String(s string) *string {
	return &s
}
