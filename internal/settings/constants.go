package settings

// DB config keys and defaults for settings.
const (
	// TitleKey is the DB config key for the leaderboard display title.
	TitleKey = "LEADERBOARD_TITLE"
	// DefaultTitle is the fallback leaderboard display title.
	DefaultTitle = "Snake Leaderboard"
	// TopSizeKey controls how many entries the top list returns by default.
	TopSizeKey = "LEADERBOARD_TOP_SIZE"
	// DefaultTopSize is the fallback top list length.
	DefaultTopSize = 10
	// MaxTopSize caps the top list length an admin can configure.
	MaxTopSize = 100
)
