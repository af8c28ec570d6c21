package dto

import (
	"time"

	model "review-pool.com/review-pool/internal/models"
	"review-pool.com/review-pool/internal/payments"
)

type OptionResponse struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	Reference   string `json:"reference"`
	Submissions int64  `json:"submissions"`
}

type TaskResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	PaymentRef     string           `json:"payment"`
	TotalAmount    string           `json:"total_amount"`
	TotalSlots     int64            `json:"total_slots"`
	RemainingSlots int64            `json:"remaining_slots"`
	Open           bool             `json:"open"`
	Options        []OptionResponse `json:"options"`
	CreatedAt      time.Time        `json:"created_at"`
}

type SubmissionResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	OptionID  string    `json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}

type WorkerResponse struct {
	Address       string `json:"address"`
	PendingAmount string `json:"pending_amount"`
	LockedAmount  string `json:"locked_amount"`
}

type RequesterResponse struct {
	Address string `json:"address"`
}

func NewTaskResponse(task *model.Task, tallies []model.OptionTally) TaskResponse {
	counts := make(map[string]int64, len(tallies))
	for _, t := range tallies {
		counts[t.OptionID] = t.Count
	}

	options := make([]OptionResponse, 0, len(task.Options))
	for _, o := range task.Options {
		options = append(options, OptionResponse{
			ID:          o.ID,
			Position:    o.Position,
			Reference:   o.Reference,
			Submissions: counts[o.ID],
		})
	}

	return TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		PaymentRef:     task.PaymentRef,
		TotalAmount:    payments.FormatAmount(task.TotalAmount),
		TotalSlots:     task.TotalSlots,
		RemainingSlots: task.RemainingSlots,
		Open:           task.Open(),
		Options:        options,
		CreatedAt:      task.CreatedAt,
	}
}

// NewTaskListResponse builds responses for tasks, attaching to each task the
// tallies that belong to it. Pass nil tallies to leave counts at zero.
func NewTaskListResponse(tasks []model.Task, tallies []model.OptionTally) []TaskResponse {
	byTask := make(map[string][]model.OptionTally, len(tasks))
	for _, t := range tallies {
		byTask[t.TaskID] = append(byTask[t.TaskID], t)
	}

	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i], byTask[tasks[i].ID]))
	}
	return out
}

func NewSubmissionResponse(s *model.Submission) SubmissionResponse {
	return SubmissionResponse{ID: s.ID, TaskID: s.TaskID, OptionID: s.OptionID, CreatedAt: s.CreatedAt}
}

func NewWorkerResponse(w *model.Worker) WorkerResponse {
	return WorkerResponse{
		Address:       w.Address,
		PendingAmount: payments.FormatAmount(w.PendingAmount),
		LockedAmount:  payments.FormatAmount(w.LockedAmount),
	}
}
