package wise

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// CreateTransfer creates a transfer from an existing quote to a recipient account.
func (c *Client) CreateTransfer(ctx context.Context, req *CreateTransferRequest) (*Transfer, error) {
	return submit[Transfer](ctx, c, operation{
		id:     "createTransfer",
		method: http.MethodPost,
		path:   "/v1/transfers",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			return r.SetBodyParam(req)
		},
	})
}

// ListTransfers lists transfers matching params.
func (c *Client) ListTransfers(ctx context.Context, params ListTransfersParams) ([]Transfer, error) {
	out, err := submit[[]Transfer](ctx, c, operation{
		id:     "listTransfers",
		method: http.MethodGet,
		path:   "/v1/transfers",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			query := []struct{ key, value string }{
				{"profile", formatID(params.Profile)},
				{"status", params.Status},
				{"sourceCurrency", params.SourceCurrency},
				{"targetCurrency", params.TargetCurrency},
				{"createdDateStart", params.CreatedDateStart},
				{"createdDateEnd", params.CreatedDateEnd},
				{"limit", formatOptional(params.Limit)},
				{"offset", formatOptional(params.Offset)},
			}
			for _, q := range query {
				if q.value == "" {
					continue
				}
				if err := r.SetQueryParam(q.key, q.value); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetTransfer fetches a transfer by id.
func (c *Client) GetTransfer(ctx context.Context, transferID int64) (*Transfer, error) {
	return submit[Transfer](ctx, c, operation{
		id:     "getTransfer",
		method: http.MethodGet,
		path:   "/v1/transfers/{transferId}",
		params: pathParam("transferId", transferID),
	})
}

// CancelTransfer cancels a transfer that has not been funded yet.
func (c *Client) CancelTransfer(ctx context.Context, transferID int64) (*Transfer, error) {
	return submit[Transfer](ctx, c, operation{
		id:     "cancelTransfer",
		method: http.MethodPut,
		path:   "/v1/transfers/{transferId}/cancel",
		params: pathParam("transferId", transferID),
	})
}

func pathParam(name string, id int64) runtime.ClientRequestWriterFunc {
	return func(r runtime.ClientRequest, _ strfmt.Registry) error {
		return r.SetPathParam(name, strconv.FormatInt(id, 10))
	}
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func formatOptional(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
