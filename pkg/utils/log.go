package utils

import (
	"io"
	"os"

	filename "github.com/keepeye/logrus-filename"
	"github.com/selectdb/feed_observer/pkg/config"
	"github.com/selectdb/feed_observer/pkg/xerror"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/t-tomalak/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

func InitLog(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return xerror.Wrapf(err, xerror.Config, "parse log level %v failed", cfg.Level)
	}
	log.SetLevel(level)
	log.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		ForceFormatting: true,
	})

	log.AddHook(NewNotifyHook())

	// log.SetReportCaller(true), caller by filename
	filenameHook := filename.NewHook()
	filenameHook.Field = "line"
	log.AddHook(filenameHook)

	log.SetOutput(logOutput(cfg))
	return nil
}

func logOutput(cfg config.LogConfig) io.Writer {
	if cfg.Filename == "" {
		return os.Stdout
	}

	output := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
		Compress:   cfg.CompressFiles,
	}
	if cfg.AlsoToStderr {
		return io.MultiWriter(output, os.Stderr)
	}
	return output
}
