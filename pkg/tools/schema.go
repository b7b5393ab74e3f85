package tools

// Identifiers are kept as strings until an action parses them, so that a
// malformed id is reported with the name of the argument that carried it.

// CreateTransferInput defines the arguments of the create_transfer tool.
type CreateTransferInput struct {
	RecipientID            string
	QuoteID                string
	Reference              string
	CustomerTransactionID  string
	TransferPurpose        string
	TransferPurposeSub     string
	TransferPurposeInvoice string
	SourceOfFunds          string
}

// ListTransfersInput defines the arguments of the list_transfers tool.
type ListTransfersInput struct {
	ProfileID        string
	Status           string
	SourceCurrency   string
	TargetCurrency   string
	CreatedDateStart string
	CreatedDateEnd   string
	Limit            *int64
	Offset           *int64
}

// TransferInput defines the arguments of tools addressing a single transfer.
type TransferInput struct {
	TransferID string
}

// CreateQuoteInput defines the arguments of the create_quote tool.
type CreateQuoteInput struct {
	SourceCurrency string
	TargetCurrency string
	SourceAmount   *float64
	TargetAmount   *float64
	ProfileID      string
	PayOut         string
	PreferredPayIn string
	TargetAccount  string
}

// UpdateQuoteInput defines the arguments of the update_quote tool.
type UpdateQuoteInput struct {
	ProfileID     string
	QuoteID       string
	TargetAccount string
	PayOut        string
}

// GetQuoteInput defines the arguments of the get_quote tool.
type GetQuoteInput struct {
	ProfileID string
	QuoteID   string
}

// ListRecipientAccountsInput defines the arguments of the list_recipient_accounts tool.
type ListRecipientAccountsInput struct {
	ProfileID    string
	Currency     string
	Size         *int64
	SeekPosition *int64
}

// CreateRecipientAccountInput defines the arguments of the create_recipient_account tool.
type CreateRecipientAccountInput struct {
	AccountHolderName string
	Currency          string
	Type              string
	ProfileID         string
	OwnedByCustomer   *bool
	// Details holds the currency specific bank details, e.g. sortCode and accountNumber.
	Details map[string]any
	// ExtraFields are merged into the top level of the request, e.g. address.
	ExtraFields map[string]any
}

// RecipientAccountInput defines the arguments of tools addressing a single recipient account.
type RecipientAccountInput struct {
	AccountID string
}

// ProfileInput defines the arguments of tools addressing a single profile.
type ProfileInput struct {
	ProfileID string
}

// ListBalancesInput defines the arguments of the list_balances tool.
type ListBalancesInput struct {
	ProfileID string
	// Types is a comma-separated list of balance types, e.g. "STANDARD,SAVINGS".
	Types string
}
