package discord

// Friendly message constants for Discord responses
const (
	// Daily gates and cooldowns
	MsgAlreadyDoneToday = "📅 **Already Done Today**\nCome back after midnight for another go."
	MsgCooldownActive   = "⏳ **Whoa there!**\nYou need to wait a bit before doing that again."

	// Requests
	MsgInvalidRequest = "❓ **Invalid Request**\nThat didn't look right. Try again?"

	MsgGenericError = "❌ Something went wrong."

	// Drop outcomes
	MsgCollectionComplete = "🏆 **Collection Complete!**\nEvery collectible is already yours. Nothing left to find."
	MsgNoDrop             = "💨 Nothing dropped this time."

	// Persistence
	MsgSaveWarning = "⚠️ The result was applied but saving lagged behind. It will retry shortly."
)

// Embed colors per command family
const (
	ColorCheckIn  = 0x2ecc71
	ColorFeed     = 0xf39c12
	ColorDivine   = 0x9b59b6
	ColorFortune  = 0x3498db
	ColorDrop     = 0xe74c3c
	ColorProfile  = 0x95a5a6
	ColorMythic   = 0xf1c40f
)
