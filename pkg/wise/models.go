package wise

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/go-openapi/strfmt"
)

// TransferDetails carries the reference and compliance fields of a transfer.
type TransferDetails struct {
	Reference                         string `json:"reference,omitempty"`
	TransferPurpose                   string `json:"transferPurpose,omitempty"`
	TransferPurposeSubTransferPurpose string `json:"transferPurposeSubTransferPurpose,omitempty"`
	TransferPurposeInvoiceNumber      string `json:"transferPurposeInvoiceNumber,omitempty"`
	SourceOfFunds                     string `json:"sourceOfFunds,omitempty"`
}

// Transfer is a Wise transfer.
type Transfer struct {
	ID                    int64           `json:"id"`
	User                  int64           `json:"user,omitempty"`
	TargetAccount         int64           `json:"targetAccount"`
	SourceAccount         *int64          `json:"sourceAccount,omitempty"`
	Quote                 *int64          `json:"quote,omitempty"`
	QuoteUUID             string          `json:"quoteUuid,omitempty"`
	Status                string          `json:"status"`
	Reference             string          `json:"reference,omitempty"`
	Rate                  float64         `json:"rate,omitempty"`
	Created               strfmt.DateTime `json:"created"`
	Business              *int64          `json:"business,omitempty"`
	Details               TransferDetails `json:"details"`
	HasActiveIssues       bool            `json:"hasActiveIssues"`
	SourceCurrency        string          `json:"sourceCurrency"`
	SourceValue           float64         `json:"sourceValue"`
	TargetCurrency        string          `json:"targetCurrency"`
	TargetValue           float64         `json:"targetValue"`
	CustomerTransactionID string          `json:"customerTransactionId,omitempty"`
}

// CreateTransferRequest is the body of POST /v1/transfers.
type CreateTransferRequest struct {
	TargetAccount         int64           `json:"targetAccount"`
	QuoteUUID             string          `json:"quoteUuid"`
	CustomerTransactionID string          `json:"customerTransactionId"`
	Details               TransferDetails `json:"details"`
}

// ListTransfersParams filters GET /v1/transfers.
type ListTransfersParams struct {
	Profile          int64
	Status           string
	SourceCurrency   string
	TargetCurrency   string
	CreatedDateStart string
	CreatedDateEnd   string
	Limit            *int64
	Offset           *int64
}

// Fee is the fee breakdown of a payment option.
type Fee struct {
	Transferwise float64 `json:"transferwise"`
	PayIn        float64 `json:"payIn"`
	Discount     float64 `json:"discount"`
	Partner      float64 `json:"partner"`
	Total        float64 `json:"total"`
}

// PaymentOption is one pay-in/pay-out combination offered by a quote.
type PaymentOption struct {
	Disabled     bool    `json:"disabled"`
	PayIn        string  `json:"payIn"`
	PayOut       string  `json:"payOut"`
	SourceAmount float64 `json:"sourceAmount"`
	TargetAmount float64 `json:"targetAmount"`
	Fee          Fee     `json:"fee"`
}

// QuoteNotice is an informational or blocking notice attached to a quote.
type QuoteNotice struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
	Type string `json:"type"`
}

// Quote is a Wise v3 quote.
type Quote struct {
	ID                 string          `json:"id"`
	SourceCurrency     string          `json:"sourceCurrency"`
	TargetCurrency     string          `json:"targetCurrency"`
	SourceAmount       float64         `json:"sourceAmount,omitempty"`
	TargetAmount       float64         `json:"targetAmount,omitempty"`
	PayOut             string          `json:"payOut,omitempty"`
	PreferredPayIn     string          `json:"preferredPayIn,omitempty"`
	Rate               float64         `json:"rate"`
	RateType           string          `json:"rateType,omitempty"`
	CreatedTime        strfmt.DateTime `json:"createdTime"`
	RateExpirationTime strfmt.DateTime `json:"rateExpirationTime"`
	ExpirationTime     strfmt.DateTime `json:"expirationTime"`
	User               int64           `json:"user,omitempty"`
	Profile            int64           `json:"profile,omitempty"`
	Status             string          `json:"status,omitempty"`
	TargetAccount      *int64          `json:"targetAccount,omitempty"`
	PaymentOptions     []PaymentOption `json:"paymentOptions,omitempty"`
	Notices            []QuoteNotice   `json:"notices,omitempty"`
}

// Validate checks the quote identifier format.
func (q *Quote) Validate(formats strfmt.Registry) error {
	if q.ID == "" {
		return errors.New("quote id is empty")
	}
	if !formats.Validates("uuid", q.ID) {
		return fmt.Errorf("quote id %q is not a UUID", q.ID)
	}
	return nil
}

// CreateQuoteRequest is the body of POST /v3/profiles/{profileId}/quotes.
// Exactly one of SourceAmount and TargetAmount is set.
type CreateQuoteRequest struct {
	SourceCurrency string   `json:"sourceCurrency"`
	TargetCurrency string   `json:"targetCurrency"`
	SourceAmount   *float64 `json:"sourceAmount,omitempty"`
	TargetAmount   *float64 `json:"targetAmount,omitempty"`
	PayOut         string   `json:"payOut,omitempty"`
	PreferredPayIn string   `json:"preferredPayIn,omitempty"`
	TargetAccount  *int64   `json:"targetAccount,omitempty"`
}

// UpdateQuoteRequest is the merge-patch body of PATCH /v3/profiles/{profileId}/quotes/{quoteId}.
type UpdateQuoteRequest struct {
	TargetAccount int64  `json:"targetAccount"`
	PayOut        string `json:"payOut,omitempty"`
}

// RecipientName is the structured account holder name of a v2 account.
type RecipientName struct {
	FullName       string `json:"fullName"`
	GivenName      string `json:"givenName,omitempty"`
	FamilyName     string `json:"familyName,omitempty"`
	MiddleName     string `json:"middleName,omitempty"`
	CannotHavePart bool   `json:"cannotHavePartiallyFullName,omitempty"`
}

// Recipient is a recipient (target) account. It covers both the v1 create
// response and the v2 account representation.
type Recipient struct {
	ID                 int64          `json:"id"`
	CreatorID          int64          `json:"creatorId,omitempty"`
	Profile            int64          `json:"profile,omitempty"`
	ProfileID          int64          `json:"profileId,omitempty"`
	AccountHolderName  string         `json:"accountHolderName,omitempty"`
	Name               *RecipientName `json:"name,omitempty"`
	Currency           string         `json:"currency"`
	Country            string         `json:"country,omitempty"`
	Type               string         `json:"type"`
	LegalEntityType    string         `json:"legalEntityType,omitempty"`
	Active             bool           `json:"active"`
	OwnedByCustomer    bool           `json:"ownedByCustomer"`
	AccountSummary     string         `json:"accountSummary,omitempty"`
	LongAccountSummary string         `json:"longAccountSummary,omitempty"`
	Details            map[string]any `json:"details,omitempty"`
}

// PaginatedRecipients is a page of GET /v2/accounts.
type PaginatedRecipients struct {
	Content                []Recipient `json:"content"`
	SeekPositionForCurrent *int64      `json:"seekPositionForCurrent,omitempty"`
	SeekPositionForNext    *int64      `json:"seekPositionForNext,omitempty"`
	Size                   int         `json:"size"`
}

// ListRecipientAccountsParams filters GET /v2/accounts.
type ListRecipientAccountsParams struct {
	ProfileID    int64
	Currency     string
	Size         *int64
	SeekPosition *int64
}

// CreateRecipientRequest is the body of POST /v1/accounts.
//
// Extra holds provider fields that depend on the account type and currency.
// They are merged into the top level of the payload; the typed fields take
// precedence on key collisions.
type CreateRecipientRequest struct {
	AccountHolderName string
	Currency          string
	Type              string
	Profile           int64
	OwnedByCustomer   *bool
	Details           map[string]any
	Extra             map[string]any
}

// MarshalJSON flattens Extra into the request payload.
func (r CreateRecipientRequest) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(r.Extra)+6)
	maps.Copy(payload, r.Extra)

	payload["accountHolderName"] = r.AccountHolderName
	payload["currency"] = r.Currency
	payload["type"] = r.Type
	payload["profile"] = r.Profile
	if r.OwnedByCustomer != nil {
		payload["ownedByCustomer"] = *r.OwnedByCustomer
	}
	if len(r.Details) > 0 {
		payload["details"] = r.Details
	}

	return json.Marshal(payload)
}

// Profile is a personal or business profile.
type Profile struct {
	ID           int64           `json:"id"`
	PublicID     string          `json:"publicId,omitempty"`
	UserID       int64           `json:"userId,omitempty"`
	Type         string          `json:"type"`
	FullName     string          `json:"fullName,omitempty"`
	FirstName    string          `json:"firstName,omitempty"`
	LastName     string          `json:"lastName,omitempty"`
	BusinessName string          `json:"businessName,omitempty"`
	Email        string          `json:"email,omitempty"`
	CurrentState string          `json:"currentState,omitempty"`
	CreatedAt    strfmt.DateTime `json:"createdAt"`
	UpdatedAt    strfmt.DateTime `json:"updatedAt"`
}

// Money is an amount in a currency.
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Balance is a multi-currency account balance.
type Balance struct {
	ID               int64           `json:"id"`
	Currency         string          `json:"currency"`
	Type             string          `json:"type"`
	Name             string          `json:"name,omitempty"`
	Amount           Money           `json:"amount"`
	ReservedAmount   Money           `json:"reservedAmount"`
	CashAmount       Money           `json:"cashAmount"`
	TotalWorth       Money           `json:"totalWorth"`
	Visible          bool            `json:"visible"`
	CreationTime     strfmt.DateTime `json:"creationTime"`
	ModificationTime strfmt.DateTime `json:"modificationTime"`
}
