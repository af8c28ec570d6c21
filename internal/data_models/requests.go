package dto

type FundTaskRequest struct {
	Title      string   `json:"title"`
	PaymentRef string   `json:"payment"`
	Amount     string   `json:"amount"`
	Options    []string `json:"options"`
}

type RenewTaskRequest struct {
	PaymentRef string `json:"payment"`
	Amount     string `json:"amount"`
}

type SubmitReviewRequest struct {
	OptionID string `json:"option_id"`
}

type PayoutLockRequest struct {
	Amount string `json:"amount"`
}

type ConfirmPayoutRequest struct {
	Amount    string `json:"amount"`
	Outcome   string `json:"outcome"`
	Signature string `json:"signature"`
}
