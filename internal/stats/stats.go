package stats

import (
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
)

// 账本聚合：余额和汇总统计都是对记录序列的只读折叠，随算随取

// Summary 账本的汇总统计，只统计已平仓记录的胜负
type Summary struct {
	TotalTrades  int
	OpenTrades   int
	ClosedTrades int
	Wins         int
	Losses       int
	Breakevens   int
	WinRate      float64 // 百分比
	NetPnl       float64
	MaxPnl       float64
	MinPnl       float64
}

// Balance 当前余额 = 初始资金 + 所有记录的pnl之和，与记录顺序无关
func Balance(initialBalance float64, trades []entity.Trade) float64 {
	balance := initialBalance
	for _, trade := range trades {
		balance += trade.Pnl
	}
	return balance
}

// Summarize 计算账本汇总，无已平仓记录时胜率为0而不是NaN
func Summarize(trades []entity.Trade) Summary {
	s := Summary{TotalTrades: len(trades)}
	first := true
	for _, trade := range trades {
		if trade.Status != string(model.StatusClosed) {
			s.OpenTrades++
			continue
		}
		s.ClosedTrades++
		s.NetPnl += trade.Pnl
		switch trade.Result {
		case string(model.ResultWin):
			s.Wins++
		case string(model.ResultLoss):
			s.Losses++
		case string(model.ResultBreakeven):
			s.Breakevens++
		}
		if first || trade.Pnl > s.MaxPnl {
			s.MaxPnl = trade.Pnl
		}
		if first || trade.Pnl < s.MinPnl {
			s.MinPnl = trade.Pnl
		}
		first = false
	}
	if s.ClosedTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.ClosedTrades) * 100
	}
	return s
}
