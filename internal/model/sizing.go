package model

// 仓位计算请求，entry和stop相等时返回全零结果而不是报错
type SizingCalcReq struct {
	Balance     float64 `json:"balance" validate:"gte=0" label:"账户余额"`
	RiskPercent float64 `json:"risk_percent" validate:"gte=0" label:"风险百分比"`
	EntryPrice  float64 `json:"entry_price" validate:"required,gt=0" label:"入场价"`
	StopPrice   float64 `json:"stop_price" validate:"required,gt=0" label:"止损价"`
	TakeProfit  float64 `json:"take_profit" validate:"omitempty,gt=0" label:"止盈价"`
	Instrument  string  `json:"instrument" validate:"required" label:"交易品种"`
}

type SizingCalcRes struct {
	RiskAmount  float64 `json:"risk_amount"`  // 本单愿意承担的亏损金额
	PipDistance float64 `json:"pip_distance"` // 入场价到止损价的点数
	LotSize     float64 `json:"lot_size"`     // 建议手数
	RewardRatio float64 `json:"reward_ratio"` // 止盈相对止损的盈亏比，未传止盈时为0
}
