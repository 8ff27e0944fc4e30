package domain

import "context"

// DashboardStats are the four headline counts for a user.
type DashboardStats struct {
	TotalEvents        int `json:"total_events"`
	UpcomingEvents     int `json:"upcoming_events"`
	AttendingEvents    int `json:"attending_events"`
	PendingInvitations int `json:"pending_invitations"`
}

// DashboardService computes dashboard counts. An anonymous caller gets zeros.
type DashboardService interface {
	GetStats(ctx context.Context, callerID string) (*DashboardStats, error)
}
