package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "wagebar"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/wagebar/wagebar.db"
	Version            = "v0.1.0"

	// EnvDBConnection holds a PostgreSQL connection string when the keyring is not used
	EnvDBConnection = "WAGEBAR_DB_CONNECTION"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ClockFormat is used for the current-time line on the dashboard
	ClockFormat = "2006-01-02 15:04:05"

	// RefreshInterval is how often the dashboard recomputes progress and earnings
	RefreshInterval = time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "wagebar-"
	BackupFileSuffix = ".db"

	// Lockfile constants
	TUILockfileName = "wagebar-tui.lock"

	// Poem service
	DefaultPoemURL     = "https://v1.jinrishici.com"
	PoemPath           = "/all.json"
	DefaultPoemTimeout = 10 * time.Second
	FallbackPoemText   = "心若冰清，天塌不惊。"
	FallbackPoemAuthor = "—— 佚名"

	// Currency symbol used in earnings lines
	CurrencySymbol = "¥"

	// Display placeholders
	MsgConfigureSchedule = "Please configure your work schedule first"
	MsgSetSalary         = "Please set monthly salary and work days"
	MsgScheduleRequired  = "Please set both work start and work end times"

	// Settings keys
	KeyMonthlySalary = "monthly_salary"
	KeyWorkDays      = "work_days"
	KeyWorkStart     = "work_start"
	KeyWorkEnd       = "work_end"
	KeyHasLunchBreak = "has_lunch_break"
	KeyLunchStart    = "lunch_start"
	KeyLunchEnd      = "lunch_end"
	KeyRevision      = "revision"
	KeyUpdatedAt     = "updated_at"
)

const (
	// Session States
	StateDashboard SessionState = iota
	StateSettings
	StateEditSettings
)
