package model

import "time"

// 外汇市场时段状态
type SessionStatusRes struct {
	IsOpen         bool      `json:"is_open"`
	ActiveSessions []string  `json:"active_sessions"` // Sydney/Tokyo/London/NewYork
	NextChange     time.Time `json:"next_change"`     // 下一次开市或休市的时间（UTC）
	ServerTime     time.Time `json:"server_time"`
}
