package risk

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateEURUSD(t *testing.T) {
	// 1万美元账户冒1%风险，10个点止损
	r := Calculate(Input{
		Balance:     10000,
		RiskPercent: 1,
		EntryPrice:  1.08000,
		StopPrice:   1.07900,
		Instrument:  "EURUSD",
	})
	if !almostEqual(r.RiskAmount, 100) {
		t.Fatalf("risk amount = %v, want 100", r.RiskAmount)
	}
	if math.Abs(r.PipDistance-10.0) > 1e-6 {
		t.Fatalf("pip distance = %v, want 10", r.PipDistance)
	}
	if math.Abs(r.LotSize-1.0) > 1e-6 {
		t.Fatalf("lot size = %v, want 1.0", r.LotSize)
	}
}

func TestCalculateXAUUSD(t *testing.T) {
	r := Calculate(Input{
		Balance:     10000,
		RiskPercent: 1,
		EntryPrice:  1950.0,
		StopPrice:   1945.0,
		Instrument:  "XAUUSD",
	})
	if !almostEqual(r.RiskAmount, 100) {
		t.Fatalf("risk amount = %v, want 100", r.RiskAmount)
	}
	if math.Abs(r.PipDistance-50.0) > 1e-6 {
		t.Fatalf("pip distance = %v, want 50", r.PipDistance)
	}
	if math.Abs(r.LotSize-0.02) > 1e-6 {
		t.Fatalf("lot size = %v, want 0.02", r.LotSize)
	}
}

func TestCalculateJPYPair(t *testing.T) {
	r := Calculate(Input{
		Balance:     5000,
		RiskPercent: 2,
		EntryPrice:  150.00,
		StopPrice:   149.50,
		Instrument:  "USDJPY",
	})
	// 2位小数品种，0.5的价差是50个点
	if math.Abs(r.PipDistance-50.0) > 1e-6 {
		t.Fatalf("pip distance = %v, want 50", r.PipDistance)
	}
	want := 100.0 / (50.0 * 9)
	if math.Abs(r.LotSize-want) > 1e-9 {
		t.Fatalf("lot size = %v, want %v", r.LotSize, want)
	}
}

func TestCalculateDegenerate(t *testing.T) {
	// entry == stop 止损距离无意义，约定返回全零而不是错误
	r := Calculate(Input{
		Balance:     10000,
		RiskPercent: 1,
		EntryPrice:  1.1000,
		StopPrice:   1.1000,
		Instrument:  "EURUSD",
	})
	if r != (Result{}) {
		t.Fatalf("degenerate input should return zero result, got %+v", r)
	}
}

func TestCalculateNeverNegative(t *testing.T) {
	cases := []Input{
		{Balance: 0, RiskPercent: 0, EntryPrice: 1.2, StopPrice: 1.1, Instrument: "GBPUSD"},
		{Balance: 100, RiskPercent: 0.5, EntryPrice: 0.9, StopPrice: 1.0, Instrument: "AUDUSD"},
		{Balance: 250000, RiskPercent: 10, EntryPrice: 199.5, StopPrice: 200.5, Instrument: "GBPJPY"},
	}
	for _, in := range cases {
		r := Calculate(in)
		if r.LotSize < 0 || r.RiskAmount < 0 || r.PipDistance < 0 {
			t.Fatalf("negative sizing for %+v: %+v", in, r)
		}
	}
}

func TestRewardRatio(t *testing.T) {
	r := Calculate(Input{
		Balance:     10000,
		RiskPercent: 1,
		EntryPrice:  1.0800,
		StopPrice:   1.0790,
		TakeProfit:  1.0830,
		Instrument:  "EURUSD",
	})
	if math.Abs(r.RewardRatio-3.0) > 1e-6 {
		t.Fatalf("reward ratio = %v, want 3", r.RewardRatio)
	}
}

func TestPipMultiplierTable(t *testing.T) {
	cases := map[string]float64{
		"USDJPY":  100,
		"eurjpy":  100,
		"XAUUSD":  10,
		"xauaud":  10,
		"EURUSD":  10000,
		"GBPNZD":  10000,
		"unknown": 10000,
	}
	for symbol, want := range cases {
		if got := PipMultiplier(symbol); got != want {
			t.Fatalf("multiplier(%s) = %v, want %v", symbol, got, want)
		}
	}
}
