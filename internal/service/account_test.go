package service

import (
	"context"
	"testing"
	"tradediary/internal/dao/query"
	"tradediary/internal/model"
	"tradediary/pkg/errors/ecode"

	perrors "tradediary/pkg/errors"
)

func newTestServices(t *testing.T) (*accountService, *tradeService) {
	t.Helper()
	db := newTestDB(t)
	ad := query.NewAccountDao(db)
	ld := query.NewLedgerDao(db)
	return NewAccountService(ad, ld), NewTradeService(ld, ad, nil)
}

func TestAccountCreateAndList(t *testing.T) {
	as, _ := newTestServices(t)
	ctx := context.Background()

	created, err := as.AccountCreate(ctx, 1, model.AccountCreateReq{Name: "主账户", InitialBalance: 10000})
	if err != nil {
		t.Fatalf("创建账户失败：%v", err)
	}
	if created.Account.Currency != "USD" {
		t.Fatalf("币种缺省应为USD，得到%s", created.Account.Currency)
	}
	if created.Account.InitialBalance != 10000 {
		t.Fatalf("初始资金应为10000，得到%v", created.Account.InitialBalance)
	}

	// 同名账户拒绝重复创建
	_, err = as.AccountCreate(ctx, 1, model.AccountCreateReq{Name: "主账户"})
	if !perrors.IsCode(err, ecode.ValidateErr) {
		t.Fatalf("同名账户应返回参数错误，得到：%v", err)
	}

	// 不同用户可以使用相同名称
	if _, err = as.AccountCreate(ctx, 2, model.AccountCreateReq{Name: "主账户"}); err != nil {
		t.Fatalf("不同用户同名账户应允许：%v", err)
	}

	list, err := as.AccountList(ctx, 1)
	if err != nil {
		t.Fatalf("账户列表失败：%v", err)
	}
	if len(list.Accounts) != 1 {
		t.Fatalf("用户1应只有1个账户，得到%d", len(list.Accounts))
	}
}

func TestAccountBalanceFoldsLedger(t *testing.T) {
	as, ts := newTestServices(t)
	ctx := context.Background()

	created, err := as.AccountCreate(ctx, 1, model.AccountCreateReq{Name: "主账户", InitialBalance: 10000})
	if err != nil {
		t.Fatalf("创建账户失败：%v", err)
	}
	accountId := created.Account.Id

	// 空账本时余额等于初始资金
	balance, err := as.AccountBalance(ctx, 1, accountId)
	if err != nil {
		t.Fatalf("查询余额失败：%v", err)
	}
	if balance.CurrentBalance != 10000 {
		t.Fatalf("空账本余额应为10000，得到%v", balance.CurrentBalance)
	}

	openOne(t, ts, 1, accountId, "EURUSD")
	if _, err = ts.TradeClose(ctx, 1, 0, model.TradeCloseReq{
		AccountId: accountId, Result: string(model.ResultWin), Pnl: 250,
	}); err != nil {
		t.Fatalf("平仓失败：%v", err)
	}
	openOne(t, ts, 1, accountId, "XAUUSD")
	if _, err = ts.TradeClose(ctx, 1, 1, model.TradeCloseReq{
		AccountId: accountId, Result: string(model.ResultLoss), Pnl: 100,
	}); err != nil {
		t.Fatalf("平仓失败：%v", err)
	}
	// 未平仓记录pnl为0，不影响余额
	openOne(t, ts, 1, accountId, "USDJPY")

	balance, err = as.AccountBalance(ctx, 1, accountId)
	if err != nil {
		t.Fatalf("查询余额失败：%v", err)
	}
	if balance.CurrentBalance != 10150 {
		t.Fatalf("余额应为10000+250-100=10150，得到%v", balance.CurrentBalance)
	}
}

func TestAccountSummary(t *testing.T) {
	as, ts := newTestServices(t)
	ctx := context.Background()

	created, err := as.AccountCreate(ctx, 1, model.AccountCreateReq{Name: "主账户", InitialBalance: 5000})
	if err != nil {
		t.Fatalf("创建账户失败：%v", err)
	}
	accountId := created.Account.Id

	openOne(t, ts, 1, accountId, "EURUSD")
	openOne(t, ts, 1, accountId, "EURUSD")
	openOne(t, ts, 1, accountId, "EURUSD")
	for i, tc := range []struct {
		result string
		pnl    float64
	}{
		{string(model.ResultWin), 300},
		{string(model.ResultLoss), 120},
	} {
		if _, err = ts.TradeClose(ctx, 1, i, model.TradeCloseReq{
			AccountId: accountId, Result: tc.result, Pnl: tc.pnl,
		}); err != nil {
			t.Fatalf("平仓失败：%v", err)
		}
	}

	summary, err := as.AccountSummary(ctx, 1, accountId)
	if err != nil {
		t.Fatalf("查询汇总失败：%v", err)
	}
	if summary.TotalTrades != 3 || summary.OpenTrades != 1 || summary.ClosedTrades != 2 {
		t.Fatalf("记录计数错误：total=%d open=%d closed=%d", summary.TotalTrades, summary.OpenTrades, summary.ClosedTrades)
	}
	if summary.WinRate != 50 {
		t.Fatalf("胜率应为50，得到%v", summary.WinRate)
	}
	if summary.MaxPnl != 300 || summary.MinPnl != -120 {
		t.Fatalf("极值错误：max=%v min=%v", summary.MaxPnl, summary.MinPnl)
	}
	if summary.NetPnl != 180 {
		t.Fatalf("净盈亏应为180，得到%v", summary.NetPnl)
	}
	if summary.CurrentBalance != 5180 {
		t.Fatalf("当前余额应为5180，得到%v", summary.CurrentBalance)
	}
}

func TestAccountNotFound(t *testing.T) {
	as, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := as.AccountBalance(ctx, 1, 42); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("未知账户余额应返回不存在错误，得到：%v", err)
	}
	if _, err := as.AccountSummary(ctx, 1, 42); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("未知账户汇总应返回不存在错误，得到：%v", err)
	}
	if err := as.AccountDelete(ctx, 1, 42); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("未知账户删除应返回不存在错误，得到：%v", err)
	}
}
