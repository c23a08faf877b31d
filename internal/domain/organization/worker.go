package organization

import (
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/shared"
)

// Worker is a field agent who assigns cards and collects payments for a
// branch. Every card assignment and payment is attributed to a worker.
type Worker struct {
	shared.CompanyAggregateRoot
	BranchID uuid.UUID `json:"branch_id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
	Active   bool      `json:"active"`
}

// NewWorker creates a new active worker attached to a branch
func NewWorker(companyID, branchID uuid.UUID, code, name string) (*Worker, error) {
	if companyID == uuid.Nil {
		return nil, shared.ErrMissingTenantContext
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Worker must belong to a branch")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_WORKER_CODE", "Worker code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_WORKER_NAME", "Worker name cannot be empty")
	}
	return &Worker{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Code:                 code,
		Name:                 name,
		Active:               true,
	}, nil
}

// Transfer moves the worker to another branch. Past payments keep their
// original branch attribution.
func (w *Worker) Transfer(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Worker must belong to a branch")
	}
	w.BranchID = branchID
	w.Touch()
	w.IncrementVersion()
	return nil
}

// Deactivate marks the worker inactive
func (w *Worker) Deactivate() {
	w.Active = false
	w.Touch()
	w.IncrementVersion()
}
