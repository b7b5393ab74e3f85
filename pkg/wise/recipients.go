package wise

import (
	"context"
	"net/http"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// ListRecipientAccounts lists the recipient accounts of a profile.
func (c *Client) ListRecipientAccounts(ctx context.Context, params ListRecipientAccountsParams) (*PaginatedRecipients, error) {
	return submit[PaginatedRecipients](ctx, c, operation{
		id:     "listRecipientAccounts",
		method: http.MethodGet,
		path:   "/v2/accounts",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetQueryParam("profileId", formatID(params.ProfileID)); err != nil {
				return err
			}
			if params.Currency != "" {
				if err := r.SetQueryParam("currency", params.Currency); err != nil {
					return err
				}
			}
			if params.Size != nil {
				if err := r.SetQueryParam("size", formatOptional(params.Size)); err != nil {
					return err
				}
			}
			if params.SeekPosition != nil {
				if err := r.SetQueryParam("seekPosition", formatOptional(params.SeekPosition)); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// CreateRecipientAccount creates a recipient account.
func (c *Client) CreateRecipientAccount(ctx context.Context, req *CreateRecipientRequest) (*Recipient, error) {
	return submit[Recipient](ctx, c, operation{
		id:     "createRecipientAccount",
		method: http.MethodPost,
		path:   "/v1/accounts",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			return r.SetBodyParam(req)
		},
	})
}

// GetRecipientAccount fetches a recipient account by id.
func (c *Client) GetRecipientAccount(ctx context.Context, accountID int64) (*Recipient, error) {
	return submit[Recipient](ctx, c, operation{
		id:     "getRecipientAccount",
		method: http.MethodGet,
		path:   "/v2/accounts/{accountId}",
		params: pathParam("accountId", accountID),
	})
}

// DeactivateRecipientAccount deactivates a recipient account.
func (c *Client) DeactivateRecipientAccount(ctx context.Context, accountID int64) (*Recipient, error) {
	return submit[Recipient](ctx, c, operation{
		id:     "deactivateRecipientAccount",
		method: http.MethodDelete,
		path:   "/v2/accounts/{accountId}",
		params: pathParam("accountId", accountID),
	})
}
