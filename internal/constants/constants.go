package constants

// LamportsPerSOL converts the display unit into the unit the chain reports.
const LamportsPerSOL int64 = 1_000_000_000

// DefaultUnitPrice is the reward per review and the cost of one slot (0.1 SOL).
const DefaultUnitPrice int64 = LamportsPerSOL / 10

// DestinationAccountIndex is the account key position of the transfer recipient.
const DestinationAccountIndex = 1

const DefaultTaskTitle = "Select the most clickable thumbnail"

const (
	MinOptions = 2
	MaxOptions = 10
)

type PaymentKind string

const (
	PaymentFund  PaymentKind = "fund"
	PaymentRenew PaymentKind = "renew"
)

type PayoutStatus string

const (
	PayoutLocked     PayoutStatus = "locked"
	PayoutSettled    PayoutStatus = "settled"
	PayoutRolledBack PayoutStatus = "rolled_back"
)

type PayoutOutcome string

const (
	OutcomeSettled PayoutOutcome = "settled"
	OutcomeFailed  PayoutOutcome = "failed"
)

type Role string

const (
	RoleRequester Role = "requester"
	RoleWorker    Role = "worker"
)
