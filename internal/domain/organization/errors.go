package organization

import "github.com/sanduq/backend/internal/domain/shared"

var (
	// ErrBranchNotFound is returned when a branch does not exist in the company
	ErrBranchNotFound = shared.NewDomainError("BRANCH_NOT_FOUND", "Branch not found")

	// ErrWorkerNotFound is returned when a worker does not exist in the company
	ErrWorkerNotFound = shared.NewDomainError("WORKER_NOT_FOUND", "Worker not found")

	// ErrBranchInactive is returned when an operation targets a deactivated branch
	ErrBranchInactive = shared.NewDomainError("BRANCH_INACTIVE", "Branch is not active")

	// ErrWorkerInactive is returned when an operation targets a deactivated worker
	ErrWorkerInactive = shared.NewDomainError("WORKER_INACTIVE", "Worker is not active")

	// ErrWorkerBranchMismatch is returned when a worker does not belong to the given branch
	ErrWorkerBranchMismatch = shared.NewDomainError("WORKER_BRANCH_MISMATCH", "Worker does not belong to the branch")
)
