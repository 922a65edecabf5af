package downstream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go-shop-microservices/pkg/tracing"
)

type Config struct {
	Address    string
	HTTPClient *http.Client
	Tracer     tracing.Tracer
}

// Client performs one HTTP call against a fixed backend base address. It does
// not retry and does not override the transport timeout.
type Client interface {
	Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Response, error)
}

// Response is the transport outcome of a downstream call. The gateway decides
// what the client sees from it; nothing here reaches the client directly.
type Response struct {
	StatusCode int
	Body       []byte
}

// Succeeded reports whether the downstream answered with a 2xx status.
func (r *Response) Succeeded() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

type client struct {
	config *Config
}

func NewClient(config *Config) Client {
	return &client{
		config: config,
	}
}

func (c client) Do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	contentType string,
) (*Response, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		method,
		fmt.Sprintf("%s%s", c.config.Address, path),
		body,
	)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.config.Tracer.InjectHTTP(ctx, req.Header)

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       b,
	}, nil
}
