package config

import "os"

const (
	defaultQueuePath      = "queue.txt"
	defaultHistoryPath    = "history.db"
	defaultFFmpegBinary   = "ffmpeg"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 60
)

// Default returns a Config populated with repository defaults. Credentials
// intentionally default to empty; they only ever come from the environment.
func Default() Config {
	return Config{
		Paths: Paths{
			QueuePath:   defaultQueuePath,
			HistoryPath: defaultHistoryPath,
			TempDir:     os.TempDir(),
		},
		External: External{
			FFmpegBinary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		HTTP: HTTP{
			RequestTimeout: defaultRequestTimeout,
		},
	}
}
