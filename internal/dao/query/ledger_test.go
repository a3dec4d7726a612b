package query

import (
	"context"
	"errors"
	"testing"
	"tradediary/internal/dao"
	"tradediary/internal/model/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开sqlite失败：%v", err)
	}
	if err = db.AutoMigrate(&entity.Trade{}); err != nil {
		t.Fatalf("建表失败：%v", err)
	}
	return db
}

func appendTrade(t *testing.T, ld dao.LedgerDao, id int64, instrument string) {
	t.Helper()
	err := ld.LedgerAppend(context.Background(), &entity.Trade{
		Id:         id,
		UserId:     1,
		AccountId:  10,
		Instrument: instrument,
		Direction:  "LONG",
		Status:     "OPEN",
		Result:     "PENDING",
	})
	if err != nil {
		t.Fatalf("追加失败：%v", err)
	}
}

func TestLedgerLoadEmptyIsNotError(t *testing.T) {
	ld := NewLedgerDao(newLedgerTestDB(t))
	trades, err := ld.LedgerLoad(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("空账本读取不应报错：%v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("空账本应返回空序列，得到%d条", len(trades))
	}
}

func TestLedgerAppendOrdering(t *testing.T) {
	ld := NewLedgerDao(newLedgerTestDB(t))
	ctx := context.Background()

	appendTrade(t, ld, 100, "EURUSD")
	appendTrade(t, ld, 200, "XAUUSD")
	appendTrade(t, ld, 300, "USDJPY")

	trades, err := ld.LedgerLoad(ctx, 1, 10)
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	want := []string{"EURUSD", "XAUUSD", "USDJPY"}
	for i, instrument := range want {
		if trades[i].Instrument != instrument {
			t.Fatalf("下标%d应为%s，得到%s", i, instrument, trades[i].Instrument)
		}
	}

	count, err := ld.LedgerCount(ctx, 1, 10)
	if err != nil || count != 3 {
		t.Fatalf("账本长度应为3，得到%d（err=%v）", count, err)
	}
}

func TestLedgerGetAtOutOfRange(t *testing.T) {
	ld := NewLedgerDao(newLedgerTestDB(t))
	ctx := context.Background()
	appendTrade(t, ld, 100, "EURUSD")

	if _, err := ld.LedgerGetAt(ctx, 1, 10, 1); !errors.Is(err, dao.ErrIndexOutOfRange) {
		t.Fatalf("越界应返回ErrIndexOutOfRange，得到：%v", err)
	}
	if _, err := ld.LedgerGetAt(ctx, 1, 10, -1); !errors.Is(err, dao.ErrIndexOutOfRange) {
		t.Fatalf("负下标应返回ErrIndexOutOfRange，得到：%v", err)
	}
}

func TestLedgerReplaceAtMergesPatch(t *testing.T) {
	ld := NewLedgerDao(newLedgerTestDB(t))
	ctx := context.Background()
	appendTrade(t, ld, 100, "EURUSD")

	updated, err := ld.LedgerReplaceAt(ctx, 1, 10, 0, map[string]interface{}{
		"status": "CLOSED",
		"result": "WIN",
		"pnl":    150.0,
	})
	if err != nil {
		t.Fatalf("合并更新失败：%v", err)
	}
	if updated.Status != "CLOSED" || updated.Result != "WIN" || updated.Pnl != 150 {
		t.Fatalf("更新字段未生效：%s/%s/%v", updated.Status, updated.Result, updated.Pnl)
	}
	// patch未包含的列保持原值
	if updated.Instrument != "EURUSD" || updated.Direction != "LONG" {
		t.Fatalf("未更新字段被改动：%s/%s", updated.Instrument, updated.Direction)
	}
}

func TestLedgerRemoveAtShifts(t *testing.T) {
	ld := NewLedgerDao(newLedgerTestDB(t))
	ctx := context.Background()
	appendTrade(t, ld, 100, "EURUSD")
	appendTrade(t, ld, 200, "XAUUSD")
	appendTrade(t, ld, 300, "USDJPY")

	removed, err := ld.LedgerRemoveAt(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("删除失败：%v", err)
	}
	if removed.Instrument != "EURUSD" {
		t.Fatalf("删除的应是EURUSD，得到%s", removed.Instrument)
	}

	trades, err := ld.LedgerLoad(ctx, 1, 10)
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	if len(trades) != 2 || trades[0].Instrument != "XAUUSD" {
		t.Fatalf("删除后下标应前移，得到%v条，首条%s", len(trades), trades[0].Instrument)
	}
}

func TestLedgerIsolatedByUserAndAccount(t *testing.T) {
	db := newLedgerTestDB(t)
	ld := NewLedgerDao(db)
	ctx := context.Background()
	appendTrade(t, ld, 100, "EURUSD")

	// 其他用户或账户的账本互不可见
	other := &entity.Trade{Id: 200, UserId: 2, AccountId: 10, Instrument: "GBPUSD", Direction: "SHORT", Status: "OPEN", Result: "PENDING"}
	if err := ld.LedgerAppend(ctx, other); err != nil {
		t.Fatalf("追加失败：%v", err)
	}

	trades, _ := ld.LedgerLoad(ctx, 1, 10)
	if len(trades) != 1 || trades[0].Instrument != "EURUSD" {
		t.Fatalf("账本隔离失败：%v", trades)
	}
	if _, err := ld.LedgerGetAt(ctx, 2, 10, 0); err != nil {
		t.Fatalf("用户2账本读取失败：%v", err)
	}
}
