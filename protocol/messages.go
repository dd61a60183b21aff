package protocol

// SpeciesInfo describes a purchasable species for the shop.
type SpeciesInfo struct {
	Name  string   `json:"name"`
	Glyph string   `json:"glyph"`
	Price int64    `json:"price"`
	Size  float64  `json:"size"`
	Color [3]uint8 `json:"color"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// WelcomeMsg is the first message on every connection.
type WelcomeMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	SessionID       string        `json:"session_id"`
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	PixelsPerSize   float64       `json:"pixels_per_size"`
	FoodSize        float64       `json:"food_size"`
	SellZone        Rect          `json:"sell_zone"`
	Species         []SpeciesInfo `json:"species"`
}

// EntityState is one render command.
type EntityState struct {
	ID      uint32  `json:"id"`
	Kind    string  `json:"kind"` // "creature" or "food"
	Species string  `json:"species,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Flipped bool    `json:"flipped,omitempty"`
	Hungry  bool    `json:"hungry,omitempty"`
	Hunger  float64 `json:"hunger,omitempty"`
	Level   int     `json:"level,omitempty"`
	Dragged bool    `json:"dragged,omitempty"`
}

// Notice is a transient notification.
type Notice struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// HUD is the economy readout.
type HUD struct {
	Balance          int64  `json:"balance"`
	Population       int    `json:"population"`
	PassiveIncome    int64  `json:"passive_income"`
	PassiveCountdown int    `json:"passive_countdown"`
	Placement        string `json:"placement,omitempty"` // species pending placement
}

// FrameMsg carries everything that changed during one simulation frame.
type FrameMsg struct {
	Type     string        `json:"type"`
	Tick     int32         `json:"tick"`
	HUD      HUD           `json:"hud"`
	Entities []EntityState `json:"entities"`
	Removed  []uint32      `json:"removed,omitempty"`
	Notices  []Notice      `json:"notices,omitempty"`
	Cues     []string      `json:"cues,omitempty"`
}

// StatsMsg answers a STAT_SHEET request.
type StatsMsg struct {
	Type       string `json:"type"`
	ID         uint32 `json:"id"`
	Species    string `json:"species"`
	TimeInTank string `json:"time_in_tank"`
	FeedCount  int    `json:"feed_count"`
	Level      int    `json:"level"`
	Worth      int64  `json:"worth"`
}

// ErrorMsg reports a rejected client message.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// InputMsg is any client-to-server message. Fields are used per type.
type InputMsg struct {
	Type    string  `json:"type"`
	ID      uint32  `json:"id,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Species string  `json:"species,omitempty"`
}
