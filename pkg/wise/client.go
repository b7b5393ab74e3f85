package wise

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
)

const (
	// DefaultHost is the Wise sandbox API endpoint.
	DefaultHost = "https://api.sandbox.transferwise.tech"

	mergePatchMime = "application/merge-patch+json"
)

// API defines the Wise operations used by the toolkit.
type API interface {
	CreateTransfer(ctx context.Context, req *CreateTransferRequest) (*Transfer, error)
	ListTransfers(ctx context.Context, params ListTransfersParams) ([]Transfer, error)
	GetTransfer(ctx context.Context, transferID int64) (*Transfer, error)
	CancelTransfer(ctx context.Context, transferID int64) (*Transfer, error)

	CreateQuote(ctx context.Context, profileID int64, req *CreateQuoteRequest) (*Quote, error)
	UpdateQuote(ctx context.Context, profileID int64, quoteID string, req *UpdateQuoteRequest) (*Quote, error)
	GetQuote(ctx context.Context, profileID int64, quoteID string) (*Quote, error)

	ListRecipientAccounts(ctx context.Context, params ListRecipientAccountsParams) (*PaginatedRecipients, error)
	CreateRecipientAccount(ctx context.Context, req *CreateRecipientRequest) (*Recipient, error)
	GetRecipientAccount(ctx context.Context, accountID int64) (*Recipient, error)
	DeactivateRecipientAccount(ctx context.Context, accountID int64) (*Recipient, error)

	ListProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, profileID int64) (*Profile, error)

	ListBalances(ctx context.Context, profileID int64, types []string) ([]Balance, error)
}

// Config holds the settings used to build a Client.
type Config struct {
	// APIKey is the personal or OAuth token sent as a bearer token.
	APIKey string
	// Host is the API base URL. Defaults to DefaultHost.
	Host string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Debug enables request/response dumps from the underlying runtime.
	Debug bool
}

// Client implements API on top of the go-openapi runtime
type Client struct {
	transport *httptransport.Runtime
	schemes   []string
	formats   strfmt.Registry
}

// Ensure Client implements API at compile time
var _ API = (*Client)(nil)

// NewClient creates a Wise API client for the configured host.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("wise API key is required")
	}

	address := cfg.Host
	if address == "" {
		address = DefaultHost
	}

	parsedURL, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Wise host URL: %w", err)
	}

	host := parsedURL.Host
	if host == "" {
		host = strings.TrimPrefix(address, "//")
	}

	scheme := parsedURL.Scheme
	if scheme == "" {
		scheme = "https"
	}

	schemes := []string{scheme}
	rt := httptransport.NewWithClient(host, parsedURL.Path, schemes, cfg.HTTPClient)
	rt.DefaultAuthentication = httptransport.BearerToken(cfg.APIKey)
	rt.Producers[mergePatchMime] = runtime.JSONProducer()
	rt.SetDebug(cfg.Debug)

	return &Client{
		transport: rt,
		schemes:   schemes,
		formats:   strfmt.Default,
	}, nil
}

// operation describes a single REST call.
type operation struct {
	id          string
	method      string
	path        string
	contentType string
	params      runtime.ClientRequestWriterFunc
}

func noParams(runtime.ClientRequest, strfmt.Registry) error {
	return nil
}

// submit executes op and decodes a successful response into T.
func submit[T any](ctx context.Context, c *Client, op operation) (*T, error) {
	contentType := op.contentType
	if contentType == "" {
		contentType = runtime.JSONMime
	}
	params := op.params
	if params == nil {
		params = noParams
	}

	result, err := c.transport.Submit(&runtime.ClientOperation{
		ID:                 op.id,
		Method:             op.method,
		PathPattern:        op.path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{contentType},
		Schemes:            c.schemes,
		Params:             params,
		Reader:             responseReader[T](op.id, c.formats),
		Context:            ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.id, err)
	}

	out, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response type %T", op.id, result)
	}
	return out, nil
}

func responseReader[T any](opID string, formats strfmt.Registry) runtime.ClientResponseReaderFunc {
	return func(resp runtime.ClientResponse, consumer runtime.Consumer) (any, error) {
		code := resp.Code()
		if code < 200 || code >= 300 {
			return nil, readAPIError(opID, resp)
		}

		out := new(T)
		if code == http.StatusNoContent {
			return out, nil
		}
		if err := consumer.Consume(resp.Body(), out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		// The call already succeeded upstream; validation failures are only logged.
		if v, ok := any(out).(interface{ Validate(strfmt.Registry) error }); ok {
			if err := v.Validate(formats); err != nil {
				slog.Warn("Wise response failed validation", "operation", opID, "err", err)
			}
		}
		return out, nil
	}
}
