package constants

const (
	// ContextKeyUserID is the session and gin-context key for the
	// authenticated user's ID.
	ContextKeyUserID = "user_id"

	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200

	// CalendarHorizonDays caps how far ahead the calendar feed expands
	// recurring tasks when no explicit window end is given.
	CalendarHorizonDays = 180
)
