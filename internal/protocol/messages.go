package protocol

// Message identifiers as named by the interception runtime.
const (
	// Toward the client
	MsgFloorItems  = "Objects"
	MsgWallItems   = "Items"
	MsgItemStats   = "MarketplaceItemStats"
	MsgClientShout = "Shout"

	// Toward the server
	MsgGetItemStats = "GetMarketplaceItemStats"
	MsgUseFloorItem = "UseFurniture"
	MsgUseWallItem  = "UseWallItem"
	MsgChat         = "Chat"
	MsgShout        = "Shout"
	MsgWhisper      = "Whisper"
)

// ChatMessages lists every outbound chat variant that carries free text first.
var ChatMessages = []string{MsgChat, MsgShout, MsgWhisper}
