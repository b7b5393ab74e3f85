package tools

const (
	ServerPrompt = `You are a payments assistant with access to the Wise API through this MCP server.
Only the tools enabled by the operator's permission configuration are listed.

## SENDING MONEY - ALWAYS FOLLOW THIS ORDER

**STEP 1: Find the recipient**
- Call list_recipient_accounts to find an existing recipient account id.
- Only call create_recipient_account when no suitable recipient exists.

**STEP 2: Create a quote**
- Call create_quote with EITHER source_amount OR target_amount, never both.
- Quotes expire; create a fresh one if the previous quote is older than a few minutes.

**STEP 3: Attach the recipient to the quote**
- Call update_quote with the quote id and the recipient account id as target_account.

**STEP 4: Create the transfer**
- Call create_transfer with the quote id, the recipient id and a reference.

## CRITICAL RULES

1. **NEVER invent ids** - Use ids returned by previous tool calls or given by the user.
2. **CONFIRM amounts and recipients with the user before create_transfer** - Transfers move real money.
3. **profile_id is optional** when the server was started with a default profile. Call list_profiles to find one otherwise.
4. **Report Wise API errors verbatim** - They usually explain which field is invalid.`

	CreateTransferPrompt = `Create a transfer between accounts in Wise.

PREREQUISITE: A quote (create_quote) with the recipient attached (update_quote).

Arguments:
- recipient_id: The ID of the recipient (target account).
- quote_id: The ID of the quote (quote UUID).
- reference: Reference for the transfer (required, max 100 chars).
- customer_transaction_id (optional): A unique ID for this transaction. If not provided, a UUID will be generated.
- transfer_purpose, transfer_purpose_sub, transfer_purpose_invoice, source_of_funds (optional): Compliance details some routes require.

Returns the created transfer object from Wise.`

	ListTransfersPrompt = `List transfers of a profile, newest first.

Use the filters to narrow the result: status (e.g. incoming_payment_waiting, processing, outgoing_payment_sent, cancelled),
source_currency, target_currency, and a created date window.

Returns an array of transfer objects from Wise.`

	GetTransferPrompt = `Get a transfer by its ID, including its current status.

Returns the transfer object from Wise.`

	CancelTransferPrompt = `Cancel a transfer. Only transfers that have not been funded yet can be cancelled.

Returns the cancelled transfer object from Wise.`

	CreateQuotePrompt = `Create a quote for a currency conversion or transfer.

Provide EITHER source_amount (how much to send) OR target_amount (how much the recipient gets), never both.
profile_id is taken from the server context when omitted.

Returns the quote object from Wise, including its id, rate, fees and payment options.`

	UpdateQuotePrompt = `Update a quote with the recipient account that will receive the money.

This is required before creating a transfer from the quote. The fees and payment options
may change once the recipient is known.

Returns the updated quote object from Wise.`

	GetQuotePrompt = `Get a quote by its ID.

Returns the quote object from Wise.`

	ListRecipientAccountsPrompt = `List recipient accounts of a profile.

Filter by currency when looking for a specific recipient. Results are paginated: pass
seekPositionForNext from the previous response as seek_position to get the next page.

Returns a paginated list of recipient accounts.`

	CreateRecipientAccountPrompt = `Create a recipient account.

Arguments:
- account_holder_name: The name of the account holder.
- currency: The 3-letter ISO currency code.
- type: The recipient account type, e.g. sort_code, iban, aba.
- profile_id (optional): Defaults to the server context profile.
- owned_by_customer (optional): Whether the account is owned by the sending user.
- details: Currency specific bank details, e.g. {"sortCode": "040075", "accountNumber": "37778842"}.
- extra_fields (optional): Additional top level fields required by the account type, e.g. address.

Returns the created recipient account.`

	GetRecipientAccountPrompt = `Get a recipient account by its ID.

Returns the recipient account.`

	DeactivateRecipientAccountPrompt = `Deactivate a recipient account. It will no longer be listed or usable for new transfers.

Returns the deactivated recipient account.`

	ListProfilesPrompt = `List the personal and business profiles of the authenticated user.

Use the returned ids as profile_id in other tools.`

	GetProfilePrompt = `Get a profile by its ID. Defaults to the server context profile.

Returns the profile object from Wise.`

	ListBalancesPrompt = `List the multi-currency balances of a profile.

types is a comma-separated list of balance types (STANDARD, SAVINGS). Defaults to STANDARD.

Returns an array of balance objects from Wise.`
)
