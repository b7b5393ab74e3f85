package wise

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
)

// DefaultBalanceTypes is used when ListBalances is called without types.
var DefaultBalanceTypes = []string{"STANDARD"}

// ListProfiles lists the profiles of the authenticated user.
func (c *Client) ListProfiles(ctx context.Context) ([]Profile, error) {
	out, err := submit[[]Profile](ctx, c, operation{
		id:     "listProfiles",
		method: http.MethodGet,
		path:   "/v2/profiles",
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetProfile fetches a profile by id.
func (c *Client) GetProfile(ctx context.Context, profileID int64) (*Profile, error) {
	return submit[Profile](ctx, c, operation{
		id:     "getProfile",
		method: http.MethodGet,
		path:   "/v2/profiles/{profileId}",
		params: pathParam("profileId", profileID),
	})
}

// ListBalances lists the balances of a profile.
func (c *Client) ListBalances(ctx context.Context, profileID int64, types []string) ([]Balance, error) {
	if len(types) == 0 {
		types = DefaultBalanceTypes
	}

	out, err := submit[[]Balance](ctx, c, operation{
		id:     "listBalances",
		method: http.MethodGet,
		path:   "/v4/profiles/{profileId}/balances",
		params: func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetPathParam("profileId", strconv.FormatInt(profileID, 10)); err != nil {
				return err
			}
			return r.SetQueryParam("types", strings.Join(types, ","))
		},
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}
