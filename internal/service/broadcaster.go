package service

import "samvad/internal/model"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastAnalysisCompleted(event model.DashboardEvent)
}
