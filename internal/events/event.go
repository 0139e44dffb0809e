// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"buildinghealth_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewBaseEventAt = events.NewBaseEventAt
)

// =============================================================================
// Building Domain Events
// =============================================================================

// BuildingReportGeneratedName is the event name of BuildingReportGenerated.
const BuildingReportGeneratedName = "building.report.generated"

// BuildingReportGenerated is published after a lookup produced a report.
// PortfolioBBLs lists the other buildings registered under the same HPD
// registration, in the order they were returned.
type BuildingReportGenerated struct {
	BaseEvent
	BBL           string   `json:"bbl"`
	Address       string   `json:"address"`
	Score         int      `json:"score"`
	Grade         string   `json:"grade"`
	Label         string   `json:"label"`
	RedFlags      int      `json:"redFlags"`
	PortfolioBBLs []string `json:"portfolioBbls"`
}

func (e BuildingReportGenerated) EventName() string { return BuildingReportGeneratedName }
