package tools

import (
	"context"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

const currencyPattern = `^[A-Z]{3}$`

var profileIDParam = ParamDef{
	Name:        "profile_id",
	Type:        ParamTypeIdentifier,
	Description: "The profile ID. If not provided, the profile from the server context is used.",
}

func required(resource config.Resource, permissions ...config.Permission) map[config.Resource][]config.Permission {
	return map[config.Resource][]config.Permission{resource: permissions}
}

// bind adapts a typed action to an ActionFunc.
func bind[I, O any](build func(map[string]any) I, action func(context.Context, wise.API, config.Context, I) (O, error)) ActionFunc {
	return func(ctx context.Context, client wise.API, wctx config.Context, args map[string]any) (any, error) {
		out, err := action(ctx, client, wctx, build(args))
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// All tool definitions as a single source of truth
var (
	CreateTransferTool = ToolDef{
		Name:        "create_transfer",
		Description: CreateTransferPrompt,
		Title:       "Create Transfer",
		Actions:     required(config.ResourceTransfers, config.PermissionCreate),
		Action:      bind(BuildCreateTransferInput, CreateTransfer),
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "recipient_id",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the recipient (target account).",
				Required:    true,
			},
			{
				Name:        "quote_id",
				Type:        ParamTypeString,
				Description: "The ID of the quote (quote UUID).",
				Required:    true,
			},
			{
				Name:        "reference",
				Type:        ParamTypeString,
				Description: "Reference for the transfer (required, max 100 chars).",
				Required:    true,
			},
			{
				Name:        "customer_transaction_id",
				Type:        ParamTypeString,
				Description: "A unique ID for this transaction. If not provided, a UUID will be generated.",
			},
			{
				Name:        "transfer_purpose",
				Type:        ParamTypeString,
				Description: "Purpose of the transfer.",
			},
			{
				Name:        "transfer_purpose_sub",
				Type:        ParamTypeString,
				Description: "Sub-purpose of the transfer.",
			},
			{
				Name:        "transfer_purpose_invoice",
				Type:        ParamTypeString,
				Description: "Invoice number related to the transfer.",
			},
			{
				Name:        "source_of_funds",
				Type:        ParamTypeString,
				Description: "Source of funds for the transfer.",
			},
		},
	}

	ListTransfersTool = ToolDef{
		Name:        "list_transfers",
		Description: ListTransfersPrompt,
		Title:       "List Transfers",
		Actions:     required(config.ResourceTransfers, config.PermissionRead),
		Action:      bind(BuildListTransfersInput, ListTransfers),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			profileIDParam,
			{
				Name:        "status",
				Type:        ParamTypeString,
				Description: "Filter by transfer status, e.g. 'processing' or 'outgoing_payment_sent'.",
			},
			{
				Name:        "source_currency",
				Type:        ParamTypeString,
				Description: "Filter by source currency code, e.g. 'EUR'.",
				Pattern:     currencyPattern,
			},
			{
				Name:        "target_currency",
				Type:        ParamTypeString,
				Description: "Filter by target currency code, e.g. 'GBP'.",
				Pattern:     currencyPattern,
			},
			{
				Name:        "created_date_start",
				Type:        ParamTypeString,
				Description: "Only transfers created at or after this RFC3339 timestamp.",
			},
			{
				Name:        "created_date_end",
				Type:        ParamTypeString,
				Description: "Only transfers created before this RFC3339 timestamp.",
			},
			{
				Name:        "limit",
				Type:        ParamTypeInteger,
				Description: "Maximum number of transfers to return.",
			},
			{
				Name:        "offset",
				Type:        ParamTypeInteger,
				Description: "Number of transfers to skip.",
			},
		},
	}

	GetTransferTool = ToolDef{
		Name:        "get_transfer",
		Description: GetTransferPrompt,
		Title:       "Get Transfer",
		Actions:     required(config.ResourceTransfers, config.PermissionRead),
		Action:      bind(BuildTransferInput, GetTransfer),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "transfer_id",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the transfer.",
				Required:    true,
			},
		},
	}

	CancelTransferTool = ToolDef{
		Name:        "cancel_transfer",
		Description: CancelTransferPrompt,
		Title:       "Cancel Transfer",
		Actions:     required(config.ResourceTransfers, config.PermissionUpdate),
		Action:      bind(BuildTransferInput, CancelTransfer),
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "transfer_id",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the transfer to cancel.",
				Required:    true,
			},
		},
	}

	CreateQuoteTool = ToolDef{
		Name:        "create_quote",
		Description: CreateQuotePrompt,
		Title:       "Create Quote",
		Actions:     required(config.ResourceQuotes, config.PermissionCreate),
		Action:      bind(BuildCreateQuoteInput, CreateQuote),
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "source_currency",
				Type:        ParamTypeString,
				Description: "The source currency code, e.g. 'EUR'.",
				Required:    true,
				Pattern:     currencyPattern,
			},
			{
				Name:        "target_currency",
				Type:        ParamTypeString,
				Description: "The target currency code, e.g. 'PHP'.",
				Required:    true,
				Pattern:     currencyPattern,
			},
			{
				Name:        "source_amount",
				Type:        ParamTypeNumber,
				Description: "The amount to send in the source currency. Do not combine with target_amount.",
			},
			{
				Name:        "target_amount",
				Type:        ParamTypeNumber,
				Description: "The amount the recipient receives in the target currency. Do not combine with source_amount.",
			},
			profileIDParam,
			{
				Name:        "pay_out",
				Type:        ParamTypeString,
				Description: "The pay out method, e.g. 'BANK_TRANSFER' or 'BALANCE'.",
			},
			{
				Name:        "preferred_pay_in",
				Type:        ParamTypeString,
				Description: "The preferred pay in method, e.g. 'BALANCE' or 'BANK_TRANSFER'.",
			},
			{
				Name:        "target_account",
				Type:        ParamTypeIdentifier,
				Description: "The recipient account ID, when already known.",
			},
		},
	}

	UpdateQuoteTool = ToolDef{
		Name:        "update_quote",
		Description: UpdateQuotePrompt,
		Title:       "Update Quote",
		Actions:     required(config.ResourceQuotes, config.PermissionUpdate),
		Action:      bind(BuildUpdateQuoteInput, UpdateQuote),
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "quote_id",
				Type:        ParamTypeString,
				Description: "The ID of the quote (quote UUID).",
				Required:    true,
			},
			{
				Name:        "target_account",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the recipient account receiving the money.",
				Required:    true,
			},
			profileIDParam,
			{
				Name:        "pay_out",
				Type:        ParamTypeString,
				Description: "The pay out method, e.g. 'BANK_TRANSFER'.",
			},
		},
	}

	GetQuoteTool = ToolDef{
		Name:        "get_quote",
		Description: GetQuotePrompt,
		Title:       "Get Quote",
		Actions:     required(config.ResourceQuotes, config.PermissionRead),
		Action:      bind(BuildGetQuoteInput, GetQuote),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "quote_id",
				Type:        ParamTypeString,
				Description: "The ID of the quote (quote UUID).",
				Required:    true,
			},
			profileIDParam,
		},
	}

	ListRecipientAccountsTool = ToolDef{
		Name:        "list_recipient_accounts",
		Description: ListRecipientAccountsPrompt,
		Title:       "List Recipient Accounts",
		Actions:     required(config.ResourceRecipients, config.PermissionRead),
		Action:      bind(BuildListRecipientAccountsInput, ListRecipientAccounts),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			profileIDParam,
			{
				Name:        "currency",
				Type:        ParamTypeString,
				Description: "Filter by currency code, e.g. 'USD'.",
				Pattern:     currencyPattern,
			},
			{
				Name:        "size",
				Type:        ParamTypeInteger,
				Description: "Number of items per page.",
			},
			{
				Name:        "seek_position",
				Type:        ParamTypeInteger,
				Description: "Position to start seeking from, taken from seekPositionForNext of the previous page.",
			},
		},
	}

	CreateRecipientAccountTool = ToolDef{
		Name:        "create_recipient_account",
		Description: CreateRecipientAccountPrompt,
		Title:       "Create Recipient Account",
		Actions:     required(config.ResourceRecipients, config.PermissionCreate),
		Action:      bind(BuildCreateRecipientAccountInput, CreateRecipientAccount),
		ReadOnly:    false,
		Destructive: false,
		Idempotent:  false,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "account_holder_name",
				Type:        ParamTypeString,
				Description: "The name of the account holder.",
				Required:    true,
			},
			{
				Name:        "currency",
				Type:        ParamTypeString,
				Description: "The 3-letter ISO currency code.",
				Required:    true,
				Pattern:     currencyPattern,
			},
			{
				Name:        "type",
				Type:        ParamTypeString,
				Description: "The recipient account type, e.g. 'sort_code', 'iban' or 'aba'.",
				Required:    true,
			},
			profileIDParam,
			{
				Name:        "owned_by_customer",
				Type:        ParamTypeBoolean,
				Description: "Whether this account is owned by the sending user.",
			},
			{
				Name:        "details",
				Type:        ParamTypeObject,
				Description: "Currency specific bank details, e.g. {\"sortCode\": \"040075\", \"accountNumber\": \"37778842\"}.",
			},
			{
				Name:        "extra_fields",
				Type:        ParamTypeObject,
				Description: "Additional top level fields required by the account type. Named fields above take precedence.",
			},
		},
	}

	GetRecipientAccountTool = ToolDef{
		Name:        "get_recipient_account",
		Description: GetRecipientAccountPrompt,
		Title:       "Get Recipient Account",
		Actions:     required(config.ResourceRecipients, config.PermissionRead),
		Action:      bind(BuildRecipientAccountInput, GetRecipientAccount),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "account_id",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the recipient account.",
				Required:    true,
			},
		},
	}

	DeactivateRecipientAccountTool = ToolDef{
		Name:        "deactivate_recipient_account",
		Description: DeactivateRecipientAccountPrompt,
		Title:       "Deactivate Recipient Account",
		Actions:     required(config.ResourceRecipients, config.PermissionUpdate),
		Action:      bind(BuildRecipientAccountInput, DeactivateRecipientAccount),
		ReadOnly:    false,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			{
				Name:        "account_id",
				Type:        ParamTypeIdentifier,
				Description: "The ID of the recipient account to deactivate.",
				Required:    true,
			},
		},
	}

	ListProfilesTool = ToolDef{
		Name:        "list_profiles",
		Description: ListProfilesPrompt,
		Title:       "List Profiles",
		Actions:     required(config.ResourceProfiles, config.PermissionRead),
		Action: func(ctx context.Context, client wise.API, wctx config.Context, _ map[string]any) (any, error) {
			profiles, err := ListProfiles(ctx, client, wctx)
			if err != nil {
				return nil, err
			}
			return profiles, nil
		},
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
	}

	GetProfileTool = ToolDef{
		Name:        "get_profile",
		Description: GetProfilePrompt,
		Title:       "Get Profile",
		Actions:     required(config.ResourceProfiles, config.PermissionRead),
		Action:      bind(BuildProfileInput, GetProfile),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params:      []ParamDef{profileIDParam},
	}

	ListBalancesTool = ToolDef{
		Name:        "list_balances",
		Description: ListBalancesPrompt,
		Title:       "List Balances",
		Actions:     required(config.ResourceBalances, config.PermissionRead),
		Action:      bind(BuildListBalancesInput, ListBalances),
		ReadOnly:    true,
		Destructive: false,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []ParamDef{
			profileIDParam,
			{
				Name:        "types",
				Type:        ParamTypeString,
				Description: "Comma-separated balance types, e.g. 'STANDARD' or 'STANDARD,SAVINGS'. Defaults to STANDARD.",
			},
		},
	}
)

// All is the ordered tool registry.
var All = []ToolDef{
	CreateTransferTool,
	ListTransfersTool,
	GetTransferTool,
	CancelTransferTool,
	CreateQuoteTool,
	UpdateQuoteTool,
	GetQuoteTool,
	ListRecipientAccountsTool,
	CreateRecipientAccountTool,
	GetRecipientAccountTool,
	DeactivateRecipientAccountTool,
	ListProfilesTool,
	GetProfileTool,
	ListBalancesTool,
}

// Lookup returns the registered tool with the given name.
func Lookup(name string) (ToolDef, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDef{}, false
}

// Filter returns the tools of All allowed by cfg, in registry order.
func Filter(cfg config.Configuration) []ToolDef {
	var allowed []ToolDef
	for _, t := range All {
		if t.Allowed(cfg) {
			allowed = append(allowed, t)
		}
	}
	return allowed
}
