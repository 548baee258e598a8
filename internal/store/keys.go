package store

// Top-level collection keys. This is the full persisted state layout;
// hydration reads these at startup and every completed command writes
// back the keys it touched.
const (
	KeyUsers          = "users"
	KeyPosts          = "posts"
	KeyComments       = "comments"
	KeyCurrentUser    = "currentUser"
	KeyGlobalMessages = "globalMessages"
	KeyMessages       = "messages"
	KeyScriptures     = "scriptures"
	KeyCalendarEvents = "calendarEvents"
	KeyTheme          = "theme"
)

// AllKeys lists every persisted collection key.
var AllKeys = []string{
	KeyUsers,
	KeyPosts,
	KeyComments,
	KeyCurrentUser,
	KeyGlobalMessages,
	KeyMessages,
	KeyScriptures,
	KeyCalendarEvents,
	KeyTheme,
}
