package validators

import (
	"net/url"
	"strings"

	"review-pool.com/review-pool/internal/constants"
	dto "review-pool.com/review-pool/internal/data_models"
	apperrors "review-pool.com/review-pool/internal/errors"
	"review-pool.com/review-pool/internal/payments"
	"review-pool.com/review-pool/internal/services"
)

const maxTitleLength = 200

func ValidateFundTaskRequest(requester string, r *dto.FundTaskRequest) (services.FundTaskRequest, error) {
	if err := payments.ValidateReference(r.PaymentRef); err != nil {
		return services.FundTaskRequest{}, err
	}
	amount, err := payments.ParseAmount(r.Amount)
	if err != nil {
		return services.FundTaskRequest{}, err
	}
	if len(r.Title) > maxTitleLength {
		return services.FundTaskRequest{}, apperrors.Validation("title is too long")
	}
	if len(r.Options) < constants.MinOptions {
		return services.FundTaskRequest{}, apperrors.ErrTooFewOptions
	}
	if len(r.Options) > constants.MaxOptions {
		return services.FundTaskRequest{}, apperrors.ErrTooManyOptions
	}

	options := make([]string, 0, len(r.Options))
	for _, o := range r.Options {
		o = strings.TrimSpace(o)
		u, err := url.Parse(o)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			return services.FundTaskRequest{}, apperrors.Validation("options must be image URLs")
		}
		options = append(options, o)
	}

	return services.FundTaskRequest{
		RequesterAddress: requester,
		PaymentRef:       r.PaymentRef,
		Amount:           amount,
		Title:            strings.TrimSpace(r.Title),
		Options:          options,
	}, nil
}

func ValidateRenewTaskRequest(requester, taskID string, r *dto.RenewTaskRequest) (services.RenewTaskRequest, error) {
	if taskID == "" {
		return services.RenewTaskRequest{}, apperrors.Validation("task id is required")
	}
	if err := payments.ValidateReference(r.PaymentRef); err != nil {
		return services.RenewTaskRequest{}, err
	}
	amount, err := payments.ParseAmount(r.Amount)
	if err != nil {
		return services.RenewTaskRequest{}, err
	}
	return services.RenewTaskRequest{
		RequesterAddress: requester,
		TaskID:           taskID,
		PaymentRef:       r.PaymentRef,
		Amount:           amount,
	}, nil
}

func ValidateSubmitReviewRequest(taskID string, r *dto.SubmitReviewRequest) error {
	if taskID == "" {
		return apperrors.Validation("task id is required")
	}
	if r.OptionID == "" {
		return apperrors.Validation("option_id is required")
	}
	return nil
}

func ValidatePayoutLockRequest(r *dto.PayoutLockRequest) (int64, error) {
	return payments.ParseAmount(r.Amount)
}

func ValidateConfirmPayoutRequest(worker string, r *dto.ConfirmPayoutRequest) (services.ConfirmPayoutRequest, error) {
	amount, err := payments.ParseAmount(r.Amount)
	if err != nil {
		return services.ConfirmPayoutRequest{}, err
	}

	outcome := constants.PayoutOutcome(r.Outcome)
	if outcome != constants.OutcomeSettled && outcome != constants.OutcomeFailed {
		return services.ConfirmPayoutRequest{}, apperrors.ErrInvalidPayoutOutcome
	}
	if r.Signature != "" {
		if err := payments.ValidateReference(r.Signature); err != nil {
			return services.ConfirmPayoutRequest{}, err
		}
	}

	return services.ConfirmPayoutRequest{
		WorkerAddress: worker,
		Amount:        amount,
		Outcome:       outcome,
		Signature:     r.Signature,
	}, nil
}
