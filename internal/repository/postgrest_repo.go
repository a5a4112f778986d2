package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/haikuforge/internal/domain"
)

const BackendPostgREST = "postgrest"

// PostgRESTConfig holds connection settings for a hosted PostgREST table.
type PostgRESTConfig struct {
	URL     string // project URL, e.g. https://xyz.supabase.co
	Key     string // anon or service-role key
	Table   string
	Timeout time.Duration
}

// PostgRESTRepository stores poems in a table exposed over PostgREST,
// the REST layer hosted Supabase projects provide.
type PostgRESTRepository struct {
	client   *resty.Client
	endpoint string
}

// NewPostgRESTRepository creates a repository for {URL}/rest/v1/{Table}.
func NewPostgRESTRepository(cfg *PostgRESTConfig) *PostgRESTRepository {
	client := resty.New()
	client.SetHeader("apikey", cfg.Key)
	client.SetHeader("Authorization", "Bearer "+cfg.Key)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	base := strings.TrimSuffix(cfg.URL, "/")
	if !strings.HasSuffix(base, "/rest/v1") {
		base += "/rest/v1"
	}

	return &PostgRESTRepository{
		client:   client,
		endpoint: base + "/" + url.PathEscape(cfg.Table),
	}
}

// Backend returns "postgrest".
func (r *PostgRESTRepository) Backend() string {
	return BackendPostgREST
}

type postgrestError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type postgrestInsert struct {
	Topic string `json:"topic"`
	Haiku string `json:"haiku"`
}

// Append inserts one row with topic and haiku columns.
func (r *PostgRESTRepository) Append(ctx context.Context, poem domain.Poem) error {
	if err := poem.Validate(); err != nil {
		return r.fail(domain.StoreOpAppend, err)
	}

	var apiErr postgrestError
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(postgrestInsert{Topic: poem.Topic, Haiku: poem.Body}).
		SetError(&apiErr).
		Post(r.endpoint)
	if err != nil {
		return r.fail(domain.StoreOpAppend, fmt.Errorf("failed to call PostgREST: %w", err))
	}
	if resp.IsError() {
		return r.fail(domain.StoreOpAppend, statusError(resp, apiErr))
	}
	return nil
}

// ListAll selects every row in the table's default order. Any row without a
// string topic and haiku fails the whole listing.
func (r *PostgRESTRepository) ListAll(ctx context.Context) ([]domain.Poem, error) {
	var rows []domain.PoemFields
	var apiErr postgrestError
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetResult(&rows).
		SetError(&apiErr).
		Get(r.endpoint)
	if err != nil {
		return nil, r.fail(domain.StoreOpList, fmt.Errorf("failed to call PostgREST: %w", err))
	}
	if resp.IsError() {
		return nil, r.fail(domain.StoreOpList, statusError(resp, apiErr))
	}

	poems := make([]domain.Poem, 0, len(rows))
	for i, row := range rows {
		p, err := domain.PoemFromFields(row)
		if err != nil {
			return nil, r.fail(domain.StoreOpList, fmt.Errorf("malformed row %d: %w", i, err))
		}
		poems = append(poems, p)
	}
	return poems, nil
}

func (r *PostgRESTRepository) fail(op domain.StoreOp, err error) error {
	return &domain.StoreError{Backend: BackendPostgREST, Op: op, Err: err}
}

func statusError(resp *resty.Response, apiErr postgrestError) error {
	if apiErr.Message != "" {
		if apiErr.Code != "" {
			return fmt.Errorf("HTTP %d: %s (code %s)", resp.StatusCode(), apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), apiErr.Message)
	}
	if body := strings.TrimSpace(resp.String()); body != "" {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), body)
	}
	return fmt.Errorf("HTTP %d", resp.StatusCode())
}
