package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const debugLogPath = "logs/debug.log"

type LoggerConfig struct {
	Level              string                 `json:"level,omitempty" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format             string                 `json:"format,omitempty" mapstructure:"format" validate:"oneof=json console"`
	OutputTarget       string                 `json:"outputTarget,omitempty" mapstructure:"output_target" validate:"oneof=stdout stderr"`
	TimeField          string                 `json:"timeField,omitempty" mapstructure:"time_field"`
	TimeFormat         string                 `json:"timeFormat,omitempty" mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string                 `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion     string                 `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	Env                string                 `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev test staging prod"`
	WithCaller         bool                   `json:"withCaller,omitempty" mapstructure:"with_caller"`
	Stacktrace         bool                   `json:"stacktrace,omitempty" mapstructure:"stacktrace"`
	StacktraceMinLevel string                 `json:"stacktraceMinLevel,omitempty" mapstructure:"stacktrace_min_level" validate:"oneof=debug info warn error fatal panic"`
	DebugFile          bool                   `json:"debugFile,omitempty" mapstructure:"debug_file"`
	Fields             map[string]interface{} `json:"fields,omitempty" mapstructure:"fields"`
}

// zerolog understands its own layout constants; the config speaks in names.
var timeFormats = map[string]string{
	"rfc3339":     "2006-01-02T15:04:05Z07:00",
	"rfc3339nano": "2006-01-02T15:04:05.999999999Z07:00",
	"unix":        zerolog.TimeFormatUnix,
	"unix_ms":     zerolog.TimeFormatUnixMs,
}

func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	// apply time settings from config
	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = timeFormats[logg.TimeFormat]

	var out io.Writer = os.Stdout
	if logg.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if logg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormats[logg.TimeFormat]}
	}

	// dev + debug keeps a file with the full history next to the console output;
	// don't crash if the file can't be opened
	if logg.Env == "dev" && logg.DebugFile {
		if file, ferr := openDebugFile(); ferr == nil {
			out = zerolog.MultiLevelWriter(out, file)
		}
	}

	logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", logg.ServiceName).
		Str("version", logg.ServiceVersion).
		Str("env", logg.Env).
		Logger()

	// add optional extras in a clean linear flow
	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if logg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(logg.Fields) > 0 {
		logger = logger.With().Fields(logg.Fields).Logger()
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	return logger, nil
}

func openDebugFile() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(debugLogPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

func (c *LoggerConfig) setDefaults() {
	// environment default
	if c.Env == "" {
		c.Env = "prod"
	}

	// level defaults depend on environment
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}

	// format defaults
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	// output target default: console for humans on stderr, json on stdout
	if c.OutputTarget == "" {
		if c.Format == "console" {
			c.OutputTarget = "stderr"
		} else {
			c.OutputTarget = "stdout"
		}
	}

	// time defaults
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	// caller & stacktrace defaults
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if !c.Stacktrace && c.Env != "dev" {
		c.Stacktrace = true
	}
	if c.StacktraceMinLevel == "" {
		c.StacktraceMinLevel = "error"
	}

	// service defaults
	if c.ServiceName == "" {
		c.ServiceName = "baseball-scorecard-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}

	// ensure fields map is not nil
	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
