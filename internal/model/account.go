package model

import (
	"tradediary/internal/model/entity"
)

// 创建交易账户的请求参数，初始资金创建后不可修改
type AccountCreateReq struct {
	Name           string  `json:"name" validate:"required,max=64" label:"账户名称"`
	InitialBalance float64 `json:"initial_balance" validate:"gte=0" label:"初始资金"`
	Currency       string  `json:"currency" validate:"omitempty,len=3" label:"币种"`
}

type AccountCreateRes struct {
	Account entity.Account `json:"account"`
}

type AccountListRes struct {
	Accounts []entity.Account `json:"accounts"`
}

// 账户当前余额，= 初始资金 + 账本内所有pnl之和
type AccountBalanceRes struct {
	AccountId      int64   `json:"account_id"`
	Currency       string  `json:"currency"`
	InitialBalance float64 `json:"initial_balance"`
	CurrentBalance float64 `json:"current_balance"`
}

// 账户汇总统计，仅统计已平仓记录的胜率和极值
type AccountSummaryRes struct {
	AccountId      int64   `json:"account_id"`
	TotalTrades    int     `json:"total_trades"`
	OpenTrades     int     `json:"open_trades"`
	ClosedTrades   int     `json:"closed_trades"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Breakevens     int     `json:"breakevens"`
	WinRate        float64 `json:"win_rate"` // 百分比，无已平仓记录时为0
	NetPnl         float64 `json:"net_pnl"`
	MaxPnl         float64 `json:"max_pnl"`
	MinPnl         float64 `json:"min_pnl"`
	CurrentBalance float64 `json:"current_balance"`
}

// 账本导出结果
type AccountBackupRes struct {
	JsonPath string `json:"json_path"`
	CsvPath  string `json:"csv_path"`
	Trades   int    `json:"trades"`
}
