package logger

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	logstash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

type Logger interface {
	SetLogLevel(level string)

	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Debug(msg string, fields ...Field)

	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Debugf(format string, args ...interface{})

	Close() error
}

type Field struct {
	Key string
	Val interface{}
}

func WithField(key string, val interface{}) Field {
	return Field{Key: key, Val: val}
}

type Options struct {
	Level  string
	Output io.Writer
	// LogstashAddr is a host:port of a logstash tcp input. Entries are shipped there as well as
	// written to Output.
	LogstashAddr string
}

type ELKLogger struct {
	logger *logrus.Logger
	base   *logrus.Entry
	conn   net.Conn
}

var _ Logger = (*ELKLogger)(nil)

// NewELKLogger returns a logrus logger whose entries all carry app. It fails only when the
// logstash address is set and cannot be dialed.
func NewELKLogger(app string, opts Options) (*ELKLogger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}

	l := &ELKLogger{logger: logger, base: logger.WithField("app", app)}
	if opts.LogstashAddr != "" {
		conn, err := net.Dial("tcp", opts.LogstashAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to logstash %s: %w", opts.LogstashAddr, err)
		}
		logger.AddHook(logstash.New(conn, logstash.DefaultFormatter(logrus.Fields{"app": app})))
		l.conn = conn
	}

	l.SetLogLevel(opts.Level)
	return l, nil
}

// SetLogLevel accepts any logrus level name. Unknown names mean info.
func (l *ELKLogger) SetLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.logger.SetLevel(lvl)
}

func (l *ELKLogger) Info(msg string, fields ...Field)  { l.with(fields).Info(msg) }
func (l *ELKLogger) Warn(msg string, fields ...Field)  { l.with(fields).Warn(msg) }
func (l *ELKLogger) Error(msg string, fields ...Field) { l.with(fields).Error(msg) }
func (l *ELKLogger) Fatal(msg string, fields ...Field) { l.with(fields).Fatal(msg) }
func (l *ELKLogger) Debug(msg string, fields ...Field) { l.with(fields).Debug(msg) }

func (l *ELKLogger) Infof(format string, args ...interface{})  { l.base.Infof(format, args...) }
func (l *ELKLogger) Warnf(format string, args ...interface{})  { l.base.Warnf(format, args...) }
func (l *ELKLogger) Errorf(format string, args ...interface{}) { l.base.Errorf(format, args...) }
func (l *ELKLogger) Fatalf(format string, args ...interface{}) { l.base.Fatalf(format, args...) }
func (l *ELKLogger) Debugf(format string, args ...interface{}) { l.base.Debugf(format, args...) }

// Close releases the logstash connection, if any. Entries logged afterwards only reach Output.
func (l *ELKLogger) Close() error {
	if l.conn == nil {
		return nil
	}
	l.logger.ReplaceHooks(make(logrus.LevelHooks))
	conn := l.conn
	l.conn = nil
	return conn.Close()
}

func (l *ELKLogger) with(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.base
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Val
	}
	return l.base.WithFields(data)
}
