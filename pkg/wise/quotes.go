package wise

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// CreateQuote creates an authenticated quote for profileID.
func (c *Client) CreateQuote(ctx context.Context, profileID int64, req *CreateQuoteRequest) (*Quote, error) {
	return submit[Quote](ctx, c, operation{
		id:     "createAuthenticatedQuote",
		method: http.MethodPost,
		path:   "/v3/profiles/{profileId}/quotes",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetPathParam("profileId", strconv.FormatInt(profileID, 10)); err != nil {
				return err
			}
			return r.SetBodyParam(req)
		},
	})
}

// UpdateQuote attaches a recipient account (and optionally a pay-out method) to a quote.
func (c *Client) UpdateQuote(ctx context.Context, profileID int64, quoteID string, req *UpdateQuoteRequest) (*Quote, error) {
	return submit[Quote](ctx, c, operation{
		id:          "updateQuote",
		method:      http.MethodPatch,
		path:        "/v3/profiles/{profileId}/quotes/{quoteId}",
		contentType: mergePatchMime,
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetPathParam("profileId", strconv.FormatInt(profileID, 10)); err != nil {
				return err
			}
			if err := r.SetPathParam("quoteId", quoteID); err != nil {
				return err
			}
			return r.SetBodyParam(req)
		},
	})
}

// GetQuote fetches a quote by id.
func (c *Client) GetQuote(ctx context.Context, profileID int64, quoteID string) (*Quote, error) {
	return submit[Quote](ctx, c, operation{
		id:     "getQuote",
		method: http.MethodGet,
		path:   "/v3/profiles/{profileId}/quotes/{quoteId}",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetPathParam("profileId", strconv.FormatInt(profileID, 10)); err != nil {
				return err
			}
			return r.SetPathParam("quoteId", quoteID)
		},
	})
}
