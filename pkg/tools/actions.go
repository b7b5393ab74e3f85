package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

var (
	ErrProfileIDRequired  = errors.New("profile ID must be provided either as a parameter or in context")
	ErrConflictingAmounts = errors.New("please provide either source_amount or target_amount, not both")
	ErrMissingAmount      = errors.New("either source_amount or target_amount must be provided")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrMissingField       = errors.New("missing required field")
)

// GetString is a helper to extract a string parameter with a default value
func GetString(params map[string]any, key, defaultValue string) string {
	if val, ok := params[key]; ok {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}

// GetBoolPtr is a helper to extract an optional boolean parameter as a pointer
func GetBoolPtr(params map[string]any, key string) *bool {
	if val, ok := params[key]; ok {
		if b, ok := val.(bool); ok {
			return &b
		}
	}
	return nil
}

// GetFloatPtr extracts an optional numeric parameter.
func GetFloatPtr(params map[string]any, key string) *float64 {
	val, ok := params[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}
	return nil
}

// GetInt64Ptr extracts an optional integer parameter. Fractional numbers are ignored.
func GetInt64Ptr(params map[string]any, key string) *int64 {
	val, ok := params[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case int:
		i := int64(v)
		return &i
	case int64:
		return &v
	case float64:
		if v == math.Trunc(v) {
			i := int64(v)
			return &i
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return &i
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return &i
		}
	}
	return nil
}

// maxExactFloatID is 2^53, the first integer float64 cannot tell apart from its successor.
const maxExactFloatID = 1 << 53

// GetID extracts an identifier given either as a string or as a number.
func GetID(params map[string]any, key string) string {
	val, ok := params[key]
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		// Above 2^53 the decoded value may already be a neighbouring id, so it is
		// rendered in exponent form and rejected by parseID.
		if v == math.Trunc(v) && math.Abs(v) < maxExactFloatID {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatFloat(v, 'e', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	}
	return ""
}

// GetMap extracts an optional object parameter.
func GetMap(params map[string]any, key string) map[string]any {
	if val, ok := params[key]; ok {
		if m, ok := val.(map[string]any); ok {
			return m
		}
	}
	return nil
}

func BuildCreateTransferInput(args map[string]any) CreateTransferInput {
	return CreateTransferInput{
		RecipientID:            GetID(args, "recipient_id"),
		QuoteID:                GetString(args, "quote_id", ""),
		Reference:              GetString(args, "reference", ""),
		CustomerTransactionID:  GetString(args, "customer_transaction_id", ""),
		TransferPurpose:        GetString(args, "transfer_purpose", ""),
		TransferPurposeSub:     GetString(args, "transfer_purpose_sub", ""),
		TransferPurposeInvoice: GetString(args, "transfer_purpose_invoice", ""),
		SourceOfFunds:          GetString(args, "source_of_funds", ""),
	}
}

func BuildListTransfersInput(args map[string]any) ListTransfersInput {
	return ListTransfersInput{
		ProfileID:        GetID(args, "profile_id"),
		Status:           GetString(args, "status", ""),
		SourceCurrency:   GetString(args, "source_currency", ""),
		TargetCurrency:   GetString(args, "target_currency", ""),
		CreatedDateStart: GetString(args, "created_date_start", ""),
		CreatedDateEnd:   GetString(args, "created_date_end", ""),
		Limit:            GetInt64Ptr(args, "limit"),
		Offset:           GetInt64Ptr(args, "offset"),
	}
}

func BuildTransferInput(args map[string]any) TransferInput {
	return TransferInput{
		TransferID: GetID(args, "transfer_id"),
	}
}

func BuildCreateQuoteInput(args map[string]any) CreateQuoteInput {
	return CreateQuoteInput{
		SourceCurrency: GetString(args, "source_currency", ""),
		TargetCurrency: GetString(args, "target_currency", ""),
		SourceAmount:   GetFloatPtr(args, "source_amount"),
		TargetAmount:   GetFloatPtr(args, "target_amount"),
		ProfileID:      GetID(args, "profile_id"),
		PayOut:         GetString(args, "pay_out", ""),
		PreferredPayIn: GetString(args, "preferred_pay_in", ""),
		TargetAccount:  GetID(args, "target_account"),
	}
}

func BuildUpdateQuoteInput(args map[string]any) UpdateQuoteInput {
	return UpdateQuoteInput{
		ProfileID:     GetID(args, "profile_id"),
		QuoteID:       GetString(args, "quote_id", ""),
		TargetAccount: GetID(args, "target_account"),
		PayOut:        GetString(args, "pay_out", ""),
	}
}

func BuildGetQuoteInput(args map[string]any) GetQuoteInput {
	return GetQuoteInput{
		ProfileID: GetID(args, "profile_id"),
		QuoteID:   GetString(args, "quote_id", ""),
	}
}

func BuildListRecipientAccountsInput(args map[string]any) ListRecipientAccountsInput {
	return ListRecipientAccountsInput{
		ProfileID:    GetID(args, "profile_id"),
		Currency:     GetString(args, "currency", ""),
		Size:         GetInt64Ptr(args, "size"),
		SeekPosition: GetInt64Ptr(args, "seek_position"),
	}
}

func BuildCreateRecipientAccountInput(args map[string]any) CreateRecipientAccountInput {
	return CreateRecipientAccountInput{
		AccountHolderName: GetString(args, "account_holder_name", ""),
		Currency:          GetString(args, "currency", ""),
		Type:              GetString(args, "type", ""),
		ProfileID:         GetID(args, "profile_id"),
		OwnedByCustomer:   GetBoolPtr(args, "owned_by_customer"),
		Details:           GetMap(args, "details"),
		ExtraFields:       GetMap(args, "extra_fields"),
	}
}

func BuildRecipientAccountInput(args map[string]any) RecipientAccountInput {
	return RecipientAccountInput{
		AccountID: GetID(args, "account_id"),
	}
}

func BuildProfileInput(args map[string]any) ProfileInput {
	return ProfileInput{
		ProfileID: GetID(args, "profile_id"),
	}
}

func BuildListBalancesInput(args map[string]any) ListBalancesInput {
	return ListBalancesInput{
		ProfileID: GetID(args, "profile_id"),
		Types:     GetString(args, "types", ""),
	}
}

// parseID parses a positive base-10 Wise identifier.
func parseID(field, value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s: %w", field, ErrMissingField)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q: %w", field, value, ErrInvalidIdentifier)
	}
	return id, nil
}

// resolveProfileID prefers the explicit argument over the context profile.
func resolveProfileID(explicit string, wctx config.Context) (int64, error) {
	profileID := explicit
	if profileID == "" {
		profileID = wctx.ProfileID
	}
	if profileID == "" {
		return 0, ErrProfileIDRequired
	}
	return parseID("profile_id", profileID)
}

func requireFields(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return fmt.Errorf("%s: %w", f[0], ErrMissingField)
		}
	}
	return nil
}

// CreateTransfer creates a transfer from a quote to a recipient account.
func CreateTransfer(ctx context.Context, client wise.API, _ config.Context, input CreateTransferInput) (*wise.Transfer, error) {
	slog.Info("CreateTransfer called")
	slog.Debug("CreateTransfer params", "input", input)

	if err := requireFields(
		[2]string{"quote_id", input.QuoteID},
		[2]string{"reference", input.Reference},
	); err != nil {
		return nil, err
	}

	targetAccount, err := parseID("recipient_id", input.RecipientID)
	if err != nil {
		return nil, err
	}

	customerTransactionID := input.CustomerTransactionID
	if customerTransactionID == "" {
		customerTransactionID = uuid.NewString()
	}

	transfer, err := client.CreateTransfer(ctx, &wise.CreateTransferRequest{
		TargetAccount:         targetAccount,
		QuoteUUID:             input.QuoteID,
		CustomerTransactionID: customerTransactionID,
		Details: wise.TransferDetails{
			Reference:                         input.Reference,
			TransferPurpose:                   input.TransferPurpose,
			TransferPurposeSubTransferPurpose: input.TransferPurposeSub,
			TransferPurposeInvoiceNumber:      input.TransferPurposeInvoice,
			SourceOfFunds:                     input.SourceOfFunds,
		},
	})
	if err != nil {
		slog.Error("failed to create transfer", "error", err)
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	slog.Info("CreateTransfer executed successfully", "transferID", transfer.ID, "status", transfer.Status)
	return transfer, nil
}

// ListTransfers lists the transfers of a profile.
func ListTransfers(ctx context.Context, client wise.API, wctx config.Context, input ListTransfersInput) ([]wise.Transfer, error) {
	slog.Info("ListTransfers called")
	slog.Debug("ListTransfers params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	transfers, err := client.ListTransfers(ctx, wise.ListTransfersParams{
		Profile:          profileID,
		Status:           input.Status,
		SourceCurrency:   input.SourceCurrency,
		TargetCurrency:   input.TargetCurrency,
		CreatedDateStart: input.CreatedDateStart,
		CreatedDateEnd:   input.CreatedDateEnd,
		Limit:            input.Limit,
		Offset:           input.Offset,
	})
	if err != nil {
		slog.Error("failed to list transfers", "error", err)
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	slog.Info("ListTransfers executed successfully", "resultLength", len(transfers))
	return transfers, nil
}

// GetTransfer fetches a transfer by id.
func GetTransfer(ctx context.Context, client wise.API, _ config.Context, input TransferInput) (*wise.Transfer, error) {
	slog.Info("GetTransfer called")
	slog.Debug("GetTransfer params", "input", input)

	transferID, err := parseID("transfer_id", input.TransferID)
	if err != nil {
		return nil, err
	}

	transfer, err := client.GetTransfer(ctx, transferID)
	if err != nil {
		slog.Error("failed to get transfer", "error", err)
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return transfer, nil
}

// CancelTransfer cancels a transfer that has not been funded yet.
func CancelTransfer(ctx context.Context, client wise.API, _ config.Context, input TransferInput) (*wise.Transfer, error) {
	slog.Info("CancelTransfer called")
	slog.Debug("CancelTransfer params", "input", input)

	transferID, err := parseID("transfer_id", input.TransferID)
	if err != nil {
		return nil, err
	}

	transfer, err := client.CancelTransfer(ctx, transferID)
	if err != nil {
		slog.Error("failed to cancel transfer", "error", err)
		return nil, fmt.Errorf("failed to cancel transfer: %w", err)
	}

	slog.Info("CancelTransfer executed successfully", "transferID", transfer.ID, "status", transfer.Status)
	return transfer, nil
}

// CreateQuote creates an authenticated quote. Exactly one of the amounts must be set.
func CreateQuote(ctx context.Context, client wise.API, wctx config.Context, input CreateQuoteInput) (*wise.Quote, error) {
	slog.Info("CreateQuote called")
	slog.Debug("CreateQuote params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	if err := requireFields(
		[2]string{"source_currency", input.SourceCurrency},
		[2]string{"target_currency", input.TargetCurrency},
	); err != nil {
		return nil, err
	}

	switch {
	case input.SourceAmount != nil && input.TargetAmount != nil:
		return nil, ErrConflictingAmounts
	case input.SourceAmount == nil && input.TargetAmount == nil:
		return nil, ErrMissingAmount
	}

	req := &wise.CreateQuoteRequest{
		SourceCurrency: input.SourceCurrency,
		TargetCurrency: input.TargetCurrency,
		SourceAmount:   input.SourceAmount,
		TargetAmount:   input.TargetAmount,
		PayOut:         input.PayOut,
		PreferredPayIn: input.PreferredPayIn,
	}

	if input.TargetAccount != "" {
		targetAccount, err := parseID("target_account", input.TargetAccount)
		if err != nil {
			return nil, err
		}
		req.TargetAccount = &targetAccount
	}

	quote, err := client.CreateQuote(ctx, profileID, req)
	if err != nil {
		slog.Error("failed to create quote", "error", err)
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	slog.Info("CreateQuote executed successfully", "quoteID", quote.ID, "rate", quote.Rate)
	return quote, nil
}

// UpdateQuote attaches a recipient account to an existing quote.
func UpdateQuote(ctx context.Context, client wise.API, wctx config.Context, input UpdateQuoteInput) (*wise.Quote, error) {
	slog.Info("UpdateQuote called")
	slog.Debug("UpdateQuote params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	if err := requireFields([2]string{"quote_id", input.QuoteID}); err != nil {
		return nil, err
	}

	targetAccount, err := parseID("target_account", input.TargetAccount)
	if err != nil {
		return nil, err
	}

	quote, err := client.UpdateQuote(ctx, profileID, input.QuoteID, &wise.UpdateQuoteRequest{
		TargetAccount: targetAccount,
		PayOut:        input.PayOut,
	})
	if err != nil {
		slog.Error("failed to update quote", "error", err)
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	slog.Info("UpdateQuote executed successfully", "quoteID", quote.ID)
	return quote, nil
}

// GetQuote fetches a quote of a profile.
func GetQuote(ctx context.Context, client wise.API, wctx config.Context, input GetQuoteInput) (*wise.Quote, error) {
	slog.Info("GetQuote called")
	slog.Debug("GetQuote params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	if err := requireFields([2]string{"quote_id", input.QuoteID}); err != nil {
		return nil, err
	}

	quote, err := client.GetQuote(ctx, profileID, input.QuoteID)
	if err != nil {
		slog.Error("failed to get quote", "error", err)
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// ListRecipientAccounts lists the recipient accounts of a profile.
func ListRecipientAccounts(ctx context.Context, client wise.API, wctx config.Context, input ListRecipientAccountsInput) (*wise.PaginatedRecipients, error) {
	slog.Info("ListRecipientAccounts called")
	slog.Debug("ListRecipientAccounts params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	page, err := client.ListRecipientAccounts(ctx, wise.ListRecipientAccountsParams{
		ProfileID:    profileID,
		Currency:     input.Currency,
		Size:         input.Size,
		SeekPosition: input.SeekPosition,
	})
	if err != nil {
		slog.Error("failed to list recipient accounts", "error", err)
		return nil, fmt.Errorf("failed to list recipient accounts: %w", err)
	}

	slog.Info("ListRecipientAccounts executed successfully", "resultLength", len(page.Content))
	return page, nil
}

// CreateRecipientAccount creates a recipient account. ExtraFields are sent at
// the top level of the request, below the typed fields.
func CreateRecipientAccount(ctx context.Context, client wise.API, wctx config.Context, input CreateRecipientAccountInput) (*wise.Recipient, error) {
	slog.Info("CreateRecipientAccount called")
	slog.Debug("CreateRecipientAccount params", "input", input)

	if err := requireFields(
		[2]string{"account_holder_name", input.AccountHolderName},
		[2]string{"currency", input.Currency},
		[2]string{"type", input.Type},
	); err != nil {
		return nil, err
	}

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	recipient, err := client.CreateRecipientAccount(ctx, &wise.CreateRecipientRequest{
		AccountHolderName: input.AccountHolderName,
		Currency:          input.Currency,
		Type:              input.Type,
		Profile:           profileID,
		OwnedByCustomer:   input.OwnedByCustomer,
		Details:           input.Details,
		Extra:             input.ExtraFields,
	})
	if err != nil {
		slog.Error("failed to create recipient account", "error", err)
		return nil, fmt.Errorf("failed to create recipient account: %w", err)
	}

	slog.Info("CreateRecipientAccount executed successfully", "accountID", recipient.ID)
	return recipient, nil
}

// GetRecipientAccount fetches a recipient account by id.
func GetRecipientAccount(ctx context.Context, client wise.API, _ config.Context, input RecipientAccountInput) (*wise.Recipient, error) {
	slog.Info("GetRecipientAccount called")
	slog.Debug("GetRecipientAccount params", "input", input)

	accountID, err := parseID("account_id", input.AccountID)
	if err != nil {
		return nil, err
	}

	recipient, err := client.GetRecipientAccount(ctx, accountID)
	if err != nil {
		slog.Error("failed to get recipient account", "error", err)
		return nil, fmt.Errorf("failed to get recipient account: %w", err)
	}
	return recipient, nil
}

// DeactivateRecipientAccount deactivates a recipient account.
func DeactivateRecipientAccount(ctx context.Context, client wise.API, _ config.Context, input RecipientAccountInput) (*wise.Recipient, error) {
	slog.Info("DeactivateRecipientAccount called")
	slog.Debug("DeactivateRecipientAccount params", "input", input)

	accountID, err := parseID("account_id", input.AccountID)
	if err != nil {
		return nil, err
	}

	recipient, err := client.DeactivateRecipientAccount(ctx, accountID)
	if err != nil {
		slog.Error("failed to deactivate recipient account", "error", err)
		return nil, fmt.Errorf("failed to deactivate recipient account: %w", err)
	}

	slog.Info("DeactivateRecipientAccount executed successfully", "accountID", accountID)
	return recipient, nil
}

// ListProfiles lists the profiles of the authenticated user.
func ListProfiles(ctx context.Context, client wise.API, _ config.Context) ([]wise.Profile, error) {
	slog.Info("ListProfiles called")

	profiles, err := client.ListProfiles(ctx)
	if err != nil {
		slog.Error("failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	slog.Info("ListProfiles executed successfully", "resultLength", len(profiles))
	return profiles, nil
}

// GetProfile fetches a profile, defaulting to the context profile.
func GetProfile(ctx context.Context, client wise.API, wctx config.Context, input ProfileInput) (*wise.Profile, error) {
	slog.Info("GetProfile called")
	slog.Debug("GetProfile params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	profile, err := client.GetProfile(ctx, profileID)
	if err != nil {
		slog.Error("failed to get profile", "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// ListBalances lists the balances of a profile.
func ListBalances(ctx context.Context, client wise.API, wctx config.Context, input ListBalancesInput) ([]wise.Balance, error) {
	slog.Info("ListBalances called")
	slog.Debug("ListBalances params", "input", input)

	profileID, err := resolveProfileID(input.ProfileID, wctx)
	if err != nil {
		return nil, err
	}

	var types []string
	for t := range strings.SplitSeq(input.Types, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}

	balances, err := client.ListBalances(ctx, profileID, types)
	if err != nil {
		slog.Error("failed to list balances", "error", err)
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	slog.Info("ListBalances executed successfully", "resultLength", len(balances))
	return balances, nil
}
