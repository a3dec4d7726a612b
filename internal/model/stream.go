package model

import (
	"time"
	"tradediary/internal/model/entity"
)

// 账本事件类型
type JournalEventType string

const (
	EventTradeOpened  JournalEventType = "trade_opened"
	EventTradeClosed  JournalEventType = "trade_closed"
	EventTradeDeleted JournalEventType = "trade_deleted"
)

// JournalEvent 推送给已连接客户端的账本变更事件
type JournalEvent struct {
	Type      JournalEventType `json:"type"`
	UserId    int64            `json:"user_id"`
	AccountId int64            `json:"account_id"`
	Index     int              `json:"index"`
	Trade     *entity.Trade    `json:"trade,omitempty"`
	At        time.Time        `json:"at"`
}
