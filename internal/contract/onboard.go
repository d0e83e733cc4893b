package contract

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// ProjectSetup describes one project requested during client onboarding.
// Name is scoped to the batch; StartAfterName references another setup in the
// same batch by name.
type ProjectSetup struct {
	Name           string
	TemplateID     string
	StartDate      time.Time
	StartAfterName string
	ManagerID      string
	Budget         *float64
	Currency       string
}

// OnboardRequest is a batch of project setups for one new client.
type OnboardRequest struct {
	ClientID string
	Setups   []ProjectSetup
}

// OnboardResult carries the fully scheduled projects; either every setup
// resolved or nothing was stored.
type OnboardResult struct {
	Projects []*domain.Project
}
