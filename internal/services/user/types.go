package user

import "takapay/internal/models"

// ListFilter is the validated admin listing filter. Construction happens at
// the API boundary; empty fields mean "no constraint".
type ListFilter struct {
	Search         string `json:"search" validate:"omitempty,max=120"`
	CreatedAtStart string `json:"createdAtStart" validate:"omitempty,datetime=2006-01-02"`
	CreatedAtEnd   string `json:"createdAtEnd" validate:"omitempty,datetime=2006-01-02"`
	Role           string `json:"role" validate:"omitempty,oneof=user agent admin"`
	Status         string `json:"status" validate:"omitempty,oneof=PENDING ACTIVE SUSPENDED REJECTED"`
}

// ListResult is one page of the admin user listing.
type ListResult struct {
	Users        []models.User `json:"users"`
	UsersFetched int           `json:"usersFetched"`
	UsersMatched int64         `json:"usersMatched"`
}

// StatusChange reports a decided consumer status transition, carrying the
// legal targets so clients can disable everything else.
type StatusChange struct {
	UserID         uint     `json:"userId"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	AllowedTargets []string `json:"allowedTargets"`
}
