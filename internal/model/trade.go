package model

import (
	"tradediary/internal/model/entity"
)

// 交易方向
type TradeDirection string

const (
	DirectionLong  TradeDirection = "LONG"
	DirectionShort TradeDirection = "SHORT"
)

// 交易状态
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// 平仓结果
type TradeResult string

const (
	ResultPending   TradeResult = "PENDING"
	ResultWin       TradeResult = "WIN"
	ResultLoss      TradeResult = "LOSS"
	ResultBreakeven TradeResult = "BREAKEVEN"
)

// 开仓（登记一笔交易）的请求参数
type TradeOpenReq struct {
	AccountId   int64   `json:"account_id" validate:"required" label:"账户id"`
	TradeDate   string  `json:"trade_date" label:"开仓日期"` // 2006-01-02，缺省为当天
	Instrument  string  `json:"instrument" validate:"required" label:"交易品种"`
	Direction   string  `json:"direction" validate:"required,oneof=LONG SHORT" label:"方向"`
	EntryPrice  float64 `json:"entry_price" validate:"omitempty,gt=0" label:"入场价"`
	StopPrice   float64 `json:"stop_price" validate:"omitempty,gt=0" label:"止损价"`
	TakeProfit  float64 `json:"take_profit" label:"止盈价"`
	RiskPercent float64 `json:"risk_percent" validate:"gte=0" label:"风险百分比"`
	LotSize     float64 `json:"lot_size" validate:"gte=0" label:"手数"`
	Notes       string  `json:"notes" label:"备注"`
	BeforeImage string  `json:"before_image" label:"开仓前快照"`
}

type TradeOpenRes struct {
	Trade entity.Trade `json:"trade"`
	Index int          `json:"index"` // 记录在账本中的位置
}

// 平仓请求，pnl传入原始幅度，方向由result归一：WIN为正，LOSS为负，BREAKEVEN为0
type TradeCloseReq struct {
	AccountId  int64   `json:"account_id" validate:"required" label:"账户id"`
	Result     string  `json:"result" validate:"required,oneof=WIN LOSS BREAKEVEN" label:"平仓结果"`
	Pnl        float64 `json:"pnl" label:"盈亏金额"`
	Ratio      float64 `json:"ratio" validate:"gte=0" label:"盈亏比"`
	Notes      string  `json:"notes" label:"备注"`
	AfterImage string  `json:"after_image" label:"平仓后快照"`
}

// 部分更新请求，只合并传入的字段，未传字段保持原值
type TradeUpdateReq struct {
	AccountId   int64    `json:"account_id" validate:"required" label:"账户id"`
	TradeDate   *string  `json:"trade_date" label:"开仓日期"`
	Instrument  *string  `json:"instrument" label:"交易品种"`
	Notes       *string  `json:"notes" label:"备注"`
	Ratio       *float64 `json:"ratio" label:"盈亏比"`
	TakeProfit  *float64 `json:"take_profit" label:"止盈价"`
	BeforeImage *string  `json:"before_image" label:"开仓前快照"`
	AfterImage  *string  `json:"after_image" label:"平仓后快照"`
}

type TradeRes struct {
	Trade entity.Trade `json:"trade"`
	Index int          `json:"index"`
}

type TradeListRes struct {
	AccountId int64          `json:"account_id"`
	Total     int            `json:"total"`
	Trades    []entity.Trade `json:"trades"`
}
