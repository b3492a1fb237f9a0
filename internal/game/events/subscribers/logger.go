package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("event_time", event.Timestamp()).
		Logger()

	level := ls.logLevel
	if level < zerolog.DebugLevel || level > zerolog.ErrorLevel {
		level = zerolog.InfoLevel
	}
	logEvent := eventLogger.WithLevel(level)

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("rows", e.Rows).
			Int("cols", e.Cols).
			Int("run_length", e.RunLength).
			Str("first", e.First.String()).
			Ints("opening", e.Opening)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Int("plies", e.Plies).
			Dur("duration", e.Duration)

	case *events.MoveAppliedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("column", e.Column).
			Int("row", e.Row).
			Int("ply", e.Ply).
			Str("source", e.Source)

	case *events.MoveRejectedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("column", e.Column).
			Str("reason", e.Reason)

	case *events.SearchCompletedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("column", e.Column).
			Int("score", e.Score).
			Int("nodes", e.Nodes).
			Int("cutoffs", e.Cutoffs).
			Dur("elapsed", e.Elapsed)

	case *events.PhaseChangedEvent:
		logEvent.
			Str("from_phase", e.From).
			Str("to_phase", e.To).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
