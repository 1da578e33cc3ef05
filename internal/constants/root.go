package constants

import "time"

const (
	AppName            = "learnai"
	DefaultKeyringUser = "database-connection"
	KeyringAIUser      = "ai-api-key"
	DefaultConfigDir   = "~/.config/learnai"
	DefaultConfigPath  = "~/.config/learnai/learnai.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DayMillis is the fixed spacing between consecutive plan days.
	DayMillis = 86_400_000

	// Persistence
	SaveDebounce = 1500 * time.Millisecond

	// Export constants
	MaxExports       = 14
	ExportDirName    = "exports"
	ExportFilePrefix = "learnai-"
	ExportFileSuffix = ".json"
	ExportVersion    = 1

	// Heatmap window shown for habits (5 weeks)
	HeatmapDays = 35

	// Gamification
	XPPerLesson          = 100
	XPLevelStep          = 500
	TopicExplorerCourses = 5
	DedicatedLessons     = 10

	// Generation defaults
	DefaultAIBaseURL         = "https://api.openai.com/v1"
	DefaultAIModel           = "gpt-4o-mini"
	DefaultRequestsPerMinute = 20
	DefaultServerAddr        = "127.0.0.1:8787"
)
