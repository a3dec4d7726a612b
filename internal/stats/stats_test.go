package stats

import (
	"math"
	"math/rand"
	"testing"
	"tradediary/internal/model/entity"
)

func closed(result string, pnl float64) entity.Trade {
	return entity.Trade{Status: "CLOSED", Result: result, Pnl: pnl}
}

func open() entity.Trade {
	return entity.Trade{Status: "OPEN", Result: "PENDING", Pnl: 0}
}

func TestBalanceOrderIndependent(t *testing.T) {
	trades := []entity.Trade{
		closed("WIN", 120.5),
		closed("LOSS", -80),
		open(),
		closed("BREAKEVEN", 0),
		closed("LOSS", -40.25),
		closed("WIN", 300),
	}
	want := Balance(1000, trades)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]entity.Trade, len(trades))
		copy(shuffled, trades)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Balance(1000, shuffled); math.Abs(got-want) > 1e-9 {
			t.Fatalf("balance changed after permutation: %v != %v", got, want)
		}
	}
	if math.Abs(want-(1000+120.5-80-40.25+300)) > 1e-9 {
		t.Fatalf("balance = %v", want)
	}
}

func TestBalanceEmptyLedger(t *testing.T) {
	if got := Balance(2500, nil); got != 2500 {
		t.Fatalf("empty ledger balance = %v, want 2500", got)
	}
}

func TestSummarizeWinRate(t *testing.T) {
	trades := []entity.Trade{
		closed("WIN", 100),
		closed("WIN", 50),
		closed("LOSS", -70),
		closed("BREAKEVEN", 0),
		open(),
	}
	s := Summarize(trades)
	if s.TotalTrades != 5 || s.OpenTrades != 1 || s.ClosedTrades != 4 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.Wins != 2 || s.Losses != 1 || s.Breakevens != 1 {
		t.Fatalf("result counts wrong: %+v", s)
	}
	if math.Abs(s.WinRate-50.0) > 1e-9 {
		t.Fatalf("win rate = %v, want 50", s.WinRate)
	}
	if s.MaxPnl != 100 || s.MinPnl != -70 {
		t.Fatalf("extremes wrong: max=%v min=%v", s.MaxPnl, s.MinPnl)
	}
	if math.Abs(s.NetPnl-80) > 1e-9 {
		t.Fatalf("net pnl = %v, want 80", s.NetPnl)
	}
}

func TestSummarizeNoClosedTrades(t *testing.T) {
	// 没有已平仓记录时胜率为0，不能出现除零
	s := Summarize([]entity.Trade{open(), open()})
	if s.WinRate != 0 {
		t.Fatalf("win rate = %v, want 0", s.WinRate)
	}
	if s.ClosedTrades != 0 || s.OpenTrades != 2 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.MaxPnl != 0 || s.MinPnl != 0 {
		t.Fatalf("extremes should stay zero: %+v", s)
	}
}

func TestSummarizeAllLosses(t *testing.T) {
	s := Summarize([]entity.Trade{closed("LOSS", -10), closed("LOSS", -30)})
	if s.WinRate != 0 {
		t.Fatalf("win rate = %v, want 0", s.WinRate)
	}
	if s.MaxPnl != -10 || s.MinPnl != -30 {
		t.Fatalf("extremes wrong: %+v", s)
	}
}
