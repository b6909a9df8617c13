package redis

const (
	// KeyLinks holds the whole links collection as one JSON array.
	KeyLinks = "linkdeck:links"
	// KeyReminders holds the whole reminders collection as one JSON array.
	KeyReminders = "linkdeck:reminders"
	// KeySettings holds the settings object.
	KeySettings = "linkdeck:settings"
	// KeyStats holds the stats counters object.
	KeyStats = "linkdeck:stats"
)
