package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"tradediary/internal/dao/query"
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
	"tradediary/pkg/errors/ecode"

	perrors "tradediary/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=busy_timeout(5000)", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开sqlite失败：%v", err)
	}
	if err = db.AutoMigrate(&entity.User{}, &entity.Account{}, &entity.Trade{}); err != nil {
		t.Fatalf("建表失败：%v", err)
	}
	t.Cleanup(func() {
		db.Exec("DROP TABLE trade")
		db.Exec("DROP TABLE account")
		db.Exec("DROP TABLE user")
	})
	return db
}

func newTestTradeService(t *testing.T) (*tradeService, int64, int64) {
	t.Helper()
	db := newTestDB(t)
	ad := query.NewAccountDao(db)
	ld := query.NewLedgerDao(db)

	account := entity.Account{Id: 1001, UserId: 1, Name: "主账户", InitialBalance: 10000, Currency: "USD"}
	if err := ad.AccountCreate(context.Background(), &account); err != nil {
		t.Fatalf("创建账户失败：%v", err)
	}
	return NewTradeService(ld, ad, nil), account.UserId, account.Id
}

func openOne(t *testing.T, ts *tradeService, userId, accountId int64, instrument string) model.TradeOpenRes {
	t.Helper()
	res, err := ts.TradeOpen(context.Background(), userId, model.TradeOpenReq{
		AccountId:  accountId,
		Instrument: instrument,
		Direction:  string(model.DirectionLong),
		EntryPrice: 1.08,
		StopPrice:  1.079,
	})
	if err != nil {
		t.Fatalf("开仓失败：%v", err)
	}
	return res
}

func TestTradeOpenAppendsToLedger(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	ctx := context.Background()

	first := openOne(t, ts, userId, accountId, "EURUSD")
	if first.Index != 0 {
		t.Fatalf("首条记录下标应为0，得到%d", first.Index)
	}
	if first.Trade.Status != string(model.StatusOpen) || first.Trade.Result != string(model.ResultPending) {
		t.Fatalf("新开仓状态错误：%s/%s", first.Trade.Status, first.Trade.Result)
	}
	if first.Trade.Pnl != 0 {
		t.Fatalf("开仓记录pnl应为0，得到%v", first.Trade.Pnl)
	}

	second := openOne(t, ts, userId, accountId, "XAUUSD")
	if second.Index != 1 {
		t.Fatalf("第二条记录下标应为1，得到%d", second.Index)
	}

	list, err := ts.TradeList(ctx, userId, accountId)
	if err != nil {
		t.Fatalf("读取账本失败：%v", err)
	}
	if list.Total != 2 {
		t.Fatalf("账本长度应为2，得到%d", list.Total)
	}
	// 追加的记录严格排在末尾
	if list.Trades[0].Instrument != "EURUSD" || list.Trades[1].Instrument != "XAUUSD" {
		t.Fatalf("账本顺序错误：%s, %s", list.Trades[0].Instrument, list.Trades[1].Instrument)
	}
}

func TestTradeInstrumentCanonicalUppercase(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	ctx := context.Background()

	// 小写品种入库时规范化为大写
	opened := openOne(t, ts, userId, accountId, "eurusd")
	if opened.Trade.Instrument != "EURUSD" {
		t.Fatalf("开仓品种应规范化为EURUSD，得到%s", opened.Trade.Instrument)
	}
	stored, err := ts.TradeGet(ctx, userId, accountId, 0)
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	if stored.Trade.Instrument != "EURUSD" {
		t.Fatalf("入库品种应为EURUSD，得到%s", stored.Trade.Instrument)
	}

	instrument := "xauUsd"
	updated, err := ts.TradeUpdate(ctx, userId, 0, model.TradeUpdateReq{
		AccountId:  accountId,
		Instrument: &instrument,
	})
	if err != nil {
		t.Fatalf("更新失败：%v", err)
	}
	if updated.Trade.Instrument != "XAUUSD" {
		t.Fatalf("更新品种应规范化为XAUUSD，得到%s", updated.Trade.Instrument)
	}
}

func TestTradeClosePnlSign(t *testing.T) {
	cases := []struct {
		result  string
		rawPnl  float64
		wantPnl float64
	}{
		{string(model.ResultWin), 150, 150},
		{string(model.ResultWin), -150, 150},   // WIN时负数取正
		{string(model.ResultLoss), 80, -80},    // LOSS时正数取负
		{string(model.ResultLoss), -80, -80},
		{string(model.ResultBreakeven), 42, 0}, // BREAKEVEN恒为0
	}
	for _, tc := range cases {
		ts, userId, accountId := newTestTradeService(t)
		openOne(t, ts, userId, accountId, "EURUSD")

		res, err := ts.TradeClose(context.Background(), userId, 0, model.TradeCloseReq{
			AccountId: accountId,
			Result:    tc.result,
			Pnl:       tc.rawPnl,
		})
		if err != nil {
			t.Fatalf("平仓失败（%s, %v）：%v", tc.result, tc.rawPnl, err)
		}
		if res.Trade.Pnl != tc.wantPnl {
			t.Fatalf("%s传入%v，pnl应为%v，得到%v", tc.result, tc.rawPnl, tc.wantPnl, res.Trade.Pnl)
		}
		if res.Trade.Status != string(model.StatusClosed) {
			t.Fatalf("平仓后状态应为CLOSED，得到%s", res.Trade.Status)
		}
	}
}

func TestTradeCloseTwiceRejected(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	openOne(t, ts, userId, accountId, "EURUSD")

	req := model.TradeCloseReq{AccountId: accountId, Result: string(model.ResultWin), Pnl: 100}
	if _, err := ts.TradeClose(context.Background(), userId, 0, req); err != nil {
		t.Fatalf("首次平仓失败：%v", err)
	}
	_, err := ts.TradeClose(context.Background(), userId, 0, req)
	if err == nil {
		t.Fatal("重复平仓应返回错误")
	}
	if !perrors.IsCode(err, ecode.ValidateErr) {
		t.Fatalf("重复平仓应返回参数错误码，得到：%v", err)
	}
}

func TestTradeCloseInvalidResultRejected(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	openOne(t, ts, userId, accountId, "EURUSD")

	// 直接调用服务层也不能把记录平成PENDING
	for _, result := range []string{string(model.ResultPending), "GAIN", ""} {
		_, err := ts.TradeClose(context.Background(), userId, 0, model.TradeCloseReq{
			AccountId: accountId,
			Result:    result,
			Pnl:       100,
		})
		if !perrors.IsCode(err, ecode.ValidateErr) {
			t.Fatalf("结果%q平仓应返回参数错误，得到：%v", result, err)
		}
	}

	// 记录保持OPEN状态
	stored, err := ts.TradeGet(context.Background(), userId, accountId, 0)
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	if stored.Trade.Status != string(model.StatusOpen) || stored.Trade.Result != string(model.ResultPending) {
		t.Fatalf("记录不应被改动：%s/%s", stored.Trade.Status, stored.Trade.Result)
	}
}

func TestTradeUpdateMergesOnlyGivenFields(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	opened := openOne(t, ts, userId, accountId, "EURUSD")

	notes := "回踩确认后进场"
	res, err := ts.TradeUpdate(context.Background(), userId, 0, model.TradeUpdateReq{
		AccountId: accountId,
		Notes:     &notes,
	})
	if err != nil {
		t.Fatalf("更新失败：%v", err)
	}
	if res.Trade.Notes != notes {
		t.Fatalf("备注未更新：%s", res.Trade.Notes)
	}
	// 未传入的字段保持原值
	if res.Trade.Instrument != opened.Trade.Instrument {
		t.Fatalf("品种不应被改动：%s", res.Trade.Instrument)
	}
	if res.Trade.EntryPrice != opened.Trade.EntryPrice {
		t.Fatalf("入场价不应被改动：%v", res.Trade.EntryPrice)
	}
	if res.Trade.Status != string(model.StatusOpen) {
		t.Fatalf("状态不应被改动：%s", res.Trade.Status)
	}
}

func TestTradeUpdateEmptyPatchRejected(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	openOne(t, ts, userId, accountId, "EURUSD")

	_, err := ts.TradeUpdate(context.Background(), userId, 0, model.TradeUpdateReq{AccountId: accountId})
	if !perrors.IsCode(err, ecode.ValidateErr) {
		t.Fatalf("空更新应返回参数错误，得到：%v", err)
	}
}

func TestTradeDeleteShiftsIndexes(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	ctx := context.Background()
	openOne(t, ts, userId, accountId, "EURUSD")
	openOne(t, ts, userId, accountId, "XAUUSD")
	openOne(t, ts, userId, accountId, "USDJPY")

	removed, err := ts.TradeDelete(ctx, userId, accountId, 1)
	if err != nil {
		t.Fatalf("删除失败：%v", err)
	}
	if removed.Trade.Instrument != "XAUUSD" {
		t.Fatalf("删除的应是下标1的记录，得到%s", removed.Trade.Instrument)
	}

	// 删除后后续记录的下标前移
	shifted, err := ts.TradeGet(ctx, userId, accountId, 1)
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	if shifted.Trade.Instrument != "USDJPY" {
		t.Fatalf("下标1应变为USDJPY，得到%s", shifted.Trade.Instrument)
	}
}

func TestTradeIndexOutOfRange(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	ctx := context.Background()
	openOne(t, ts, userId, accountId, "EURUSD")

	if _, err := ts.TradeGet(ctx, userId, accountId, 5); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("越界读取应返回不存在错误，得到：%v", err)
	}
	if _, err := ts.TradeDelete(ctx, userId, accountId, 5); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("越界删除应返回不存在错误，得到：%v", err)
	}
	notes := "x"
	if _, err := ts.TradeUpdate(ctx, userId, 5, model.TradeUpdateReq{AccountId: accountId, Notes: &notes}); !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("越界更新应返回不存在错误，得到：%v", err)
	}
}

func TestTradeUnknownAccount(t *testing.T) {
	ts, userId, _ := newTestTradeService(t)
	_, err := ts.TradeList(context.Background(), userId, 999999)
	if !perrors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("未知账户应返回不存在错误，得到：%v", err)
	}
}

// 事件必须在账本写入成功后发出
type captureSink struct {
	events []model.JournalEvent
}

func (c *captureSink) Publish(event model.JournalEvent) {
	c.events = append(c.events, event)
}

func TestTradeEventsEmitted(t *testing.T) {
	ts, userId, accountId := newTestTradeService(t)
	sink := &captureSink{}
	ts.SetEventSink(sink)

	openOne(t, ts, userId, accountId, "EURUSD")
	if _, err := ts.TradeClose(context.Background(), userId, 0, model.TradeCloseReq{
		AccountId: accountId, Result: string(model.ResultWin), Pnl: 10,
	}); err != nil {
		t.Fatalf("平仓失败：%v", err)
	}
	if _, err := ts.TradeDelete(context.Background(), userId, accountId, 0); err != nil {
		t.Fatalf("删除失败：%v", err)
	}

	if len(sink.events) != 3 {
		t.Fatalf("应收到3个事件，得到%d", len(sink.events))
	}
	wantTypes := []model.JournalEventType{model.EventTradeOpened, model.EventTradeClosed, model.EventTradeDeleted}
	for i, want := range wantTypes {
		if sink.events[i].Type != want {
			t.Fatalf("事件%d类型应为%s，得到%s", i, want, sink.events[i].Type)
		}
	}
}
