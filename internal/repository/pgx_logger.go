package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
// I keep this tiny and allocation-friendly, only translating levels and passing fields through.
type pgxLogger struct {
	logger   zerolog.Logger
	withArgs bool
}

// newPgxLogger builds a child logger scoped to the pgx component.
// Query arguments carry player names and client ids, so they are only logged
// when explicitly enabled.
func newPgxLogger(logger zerolog.Logger, withArgs bool) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l, withArgs: withArgs}
}

// Log implements tracelog.Logger by mapping pgx levels to zerolog and
// adding commonly useful fields, such as SQL and args, when present.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}

	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		fields[k] = v
	}
	if sqlVal, ok := fields["sql"]; ok {
		if s, ok := sqlVal.(string); ok {
			event = event.Str("sql", s)
		} else {
			event = event.Interface("sql", sqlVal)
		}
		delete(fields, "sql")
	}
	if args, ok := fields["args"]; ok {
		if l.withArgs {
			event = event.Interface("args", args)
		}
		delete(fields, "args")
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

// traceLevel picks the pgx trace level matching the logger's own level.
func traceLevel(logger zerolog.Logger) tracelog.LogLevel {
	switch lvl := logger.GetLevel(); {
	case lvl <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case lvl <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case lvl <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case lvl <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
