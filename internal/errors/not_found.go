package errors

var (
	ErrTaskNotFound      = newException(KindNotFound, "task_not_found", "task not found")
	ErrOptionNotFound    = newException(KindNotFound, "option_not_found", "option not found")
	ErrWorkerNotFound    = newException(KindNotFound, "worker_not_found", "worker not found")
	ErrRequesterNotFound = newException(KindNotFound, "requester_not_found", "requester not found")
)
