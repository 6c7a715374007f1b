package session

type OpenRequest struct {
	PlayerID string `json:"player_id"`
	WorldID  string `json:"world_id"`
}

type TickView struct {
	SessionID  string `json:"session_id"`
	PlayerID   string `json:"player_id"`
	WorldID    string `json:"world_id,omitempty"`
	ServerTick int64  `json:"server_tick"`
	LocalTick  int64  `json:"local_tick"`
	TotalTick  int64  `json:"total_tick"`
	Active     bool   `json:"active"`
}

type Stats struct {
	Active int   `json:"active"`
	Opened int64 `json:"opened"`
	Closed int64 `json:"closed"`
}
