package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPageLoaded       EventType = "PageLoaded"
	EventSelectionChanged EventType = "SelectionChanged"
	EventInvalidTile      EventType = "InvalidTile"
	EventDeleteRequested  EventType = "DeleteRequested"
	EventDeleteDeclined   EventType = "DeleteDeclined"
	EventDeleteCompleted  EventType = "DeleteCompleted"
	EventDeleteFailed     EventType = "DeleteFailed"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PageLoadedEvent is emitted when the photos page has been (re)loaded
type PageLoadedEvent struct {
	PhotoCount int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// SelectionChangedEvent is emitted after every toggle
type SelectionChangedEvent struct {
	Added   []int
	Removed []int
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// InvalidTileEvent is emitted when a tile carries an identifier that is not an integer
type InvalidTileEvent struct {
	Raw string
	Err error
}

func (e InvalidTileEvent) Type() EventType { return EventInvalidTile }

// DeleteRequestedEvent is emitted when the bulk-delete request is sent
type DeleteRequestedEvent struct {
	PhotoIDs []int
}

func (e DeleteRequestedEvent) Type() EventType { return EventDeleteRequested }

// DeleteDeclinedEvent is emitted when the user declines the confirmation
type DeleteDeclinedEvent struct {
	Count int
}

func (e DeleteDeclinedEvent) Type() EventType { return EventDeleteDeclined }

// DeleteCompletedEvent is emitted when the server accepted the bulk delete
type DeleteCompletedEvent struct {
	PhotoIDs []int
}

func (e DeleteCompletedEvent) Type() EventType { return EventDeleteCompleted }

// DeleteFailedEvent is emitted when the bulk delete was rejected or never completed
type DeleteFailedEvent struct {
	PhotoIDs  []int
	Transport bool // request never completed
	Err       error
}

func (e DeleteFailedEvent) Type() EventType { return EventDeleteFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
