//go:build !windows && !plan9

package log

import (
	"log/syslog"
)

type syslogSink struct {
	writer *syslog.Writer
}

// UseSyslog routes all further messages to the local system logger under the
// given tag, using the daemon facility.
func UseSyslog(tag string) error {
	writer, err := syslog.New(syslog.LOG_INFO|syslog.LOG_DAEMON, tag)
	if err != nil {
		return err
	}
	return setSink(&syslogSink{writer: writer})
}

func (s *syslogSink) write(level int, message string) {
	switch level {
	case levelDebug:
		_ = s.writer.Debug(message)
	case levelInfo:
		_ = s.writer.Info(message)
	case levelWarn:
		_ = s.writer.Warning(message)
	default:
		_ = s.writer.Err(message)
	}
}

func (s *syslogSink) close() error {
	return s.writer.Close()
}
