package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla el destino y el nivel del logger.
type Config struct {
	Env   string // "development" habilita la consola legible; el resto JSON
	Level string // trace | debug | info | warn | error (default info)
}

// Logger envuelve zerolog para mantener una sola instancia inyectable.
type Logger struct {
	base zerolog.Logger
}

// New construye el logger del servicio y redirige el logger global de zerolog
// para las librerías que escriben por él.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	base := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.Logger = base

	return &Logger{base: base}
}

func (l *Logger) Trace() *zerolog.Event { return l.base.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.base.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.base.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.base.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.base.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.base.Fatal() }

// With abre un contexto para fijar campos en un sublogger.
func (l *Logger) With() zerolog.Context { return l.base.With() }

// Zerolog expone la instancia subyacente cuando se necesita la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.base }
