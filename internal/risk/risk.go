package risk

import (
	"math"
	"strings"
)

// 仓位计算器：根据余额、风险百分比和止损距离推算建议手数。
// 纯函数，无IO无副作用，非法输入返回全零结果而不是错误。

type Input struct {
	Balance     float64
	RiskPercent float64 // 1 表示 1%
	EntryPrice  float64
	StopPrice   float64
	TakeProfit  float64 // 可选，仅用于盈亏比
	Instrument  string  // EURUSD / USDJPY / XAUUSD ...
}

type Result struct {
	RiskAmount  float64 // 本单愿意承担的亏损金额
	PipDistance float64 // 入场到止损的点数
	LotSize     float64 // 建议手数
	RewardRatio float64 // 止盈/止损的盈亏比
}

// PipMultiplier 点值换算倍率，按品种的报价小数位约定取固定值：
// JPY货币对2位小数取100，黄金1位小数取10，其余4位小数取10000
func PipMultiplier(instrument string) float64 {
	symbol := strings.ToUpper(instrument)
	switch {
	case strings.Contains(symbol, "JPY"):
		return 100
	case strings.Contains(symbol, "XAU"):
		return 10
	default:
		return 10000
	}
}

// pipValueDivisor 每手每点的近似美元价值，简化常量而不是实时汇率
func pipValueDivisor(instrument string) float64 {
	symbol := strings.ToUpper(instrument)
	switch {
	case strings.Contains(symbol, "JPY"):
		return 9
	case strings.Contains(symbol, "XAU"):
		return 100
	default:
		return 10
	}
}

// Calculate 计算建议仓位，entry==stop时止损距离无意义，返回全零结果
func Calculate(in Input) Result {
	if in.EntryPrice <= 0 || in.StopPrice <= 0 || in.EntryPrice == in.StopPrice {
		return Result{}
	}
	if in.Balance < 0 || in.RiskPercent < 0 {
		return Result{}
	}

	riskAmount := in.Balance * (in.RiskPercent / 100)

	multiplier := PipMultiplier(in.Instrument)
	pipDistance := math.Abs(in.EntryPrice-in.StopPrice) * multiplier

	var lot float64
	if pipDistance > 0 {
		lot = riskAmount / (pipDistance * pipValueDivisor(in.Instrument))
	}

	var reward float64
	if in.TakeProfit > 0 {
		reward = math.Abs(in.TakeProfit-in.EntryPrice) / math.Abs(in.EntryPrice-in.StopPrice)
	}

	return Result{
		RiskAmount:  riskAmount,
		PipDistance: pipDistance,
		LotSize:     lot,
		RewardRatio: reward,
	}
}
