package service

import (
	"context"
	"testing"
	"time"
)

func sessionAt(t *testing.T, moment time.Time) *sessionService {
	t.Helper()
	s := NewSessionService()
	s.now = func() time.Time { return moment }
	return s
}

func TestSessionClosedOnWeekend(t *testing.T) {
	// 2026-08-29 是周六
	s := sessionAt(t, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	res, err := s.SessionStatus(context.Background())
	if err != nil {
		t.Fatalf("查询时段失败：%v", err)
	}
	if res.IsOpen {
		t.Fatal("周六市场应休市")
	}
	if len(res.ActiveSessions) != 0 {
		t.Fatalf("休市时不应有活跃时段：%v", res.ActiveSessions)
	}
	// 下一次变化是周日22:00开盘
	want := time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC)
	if !res.NextChange.Equal(want) {
		t.Fatalf("下一次开盘应为%v，得到%v", want, res.NextChange)
	}
}

func TestSessionOpenSundayEvening(t *testing.T) {
	// 周日22:00整点开盘
	s := sessionAt(t, time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC))
	res, _ := s.SessionStatus(context.Background())
	if !res.IsOpen {
		t.Fatal("周日22:00后市场应开放")
	}
}

func TestSessionClosesFridayEvening(t *testing.T) {
	// 周五21:59开放，22:00休市
	s := sessionAt(t, time.Date(2026, 8, 28, 21, 59, 0, 0, time.UTC))
	res, _ := s.SessionStatus(context.Background())
	if !res.IsOpen {
		t.Fatal("周五22:00前市场应开放")
	}
	want := time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)
	if !res.NextChange.Equal(want) {
		t.Fatalf("下一次休市应为%v，得到%v", want, res.NextChange)
	}

	s = sessionAt(t, time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC))
	res, _ = s.SessionStatus(context.Background())
	if res.IsOpen {
		t.Fatal("周五22:00后市场应休市")
	}
}

func TestSessionOverlapLondonNewYork(t *testing.T) {
	// 周三14:00 UTC，伦敦和纽约时段重叠
	s := sessionAt(t, time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC))
	res, _ := s.SessionStatus(context.Background())
	if !res.IsOpen {
		t.Fatal("周三白天市场应开放")
	}
	got := map[string]bool{}
	for _, name := range res.ActiveSessions {
		got[name] = true
	}
	if !got["London"] || !got["NewYork"] {
		t.Fatalf("14:00应同时处于伦敦和纽约时段：%v", res.ActiveSessions)
	}
	if got["Tokyo"] || got["Sydney"] {
		t.Fatalf("14:00不应处于亚洲时段：%v", res.ActiveSessions)
	}
}

func TestSessionTokyoSydneyOverlap(t *testing.T) {
	// 周二03:00 UTC，悉尼和东京时段重叠
	s := sessionAt(t, time.Date(2026, 8, 25, 3, 0, 0, 0, time.UTC))
	res, _ := s.SessionStatus(context.Background())
	got := map[string]bool{}
	for _, name := range res.ActiveSessions {
		got[name] = true
	}
	if !got["Tokyo"] || !got["Sydney"] {
		t.Fatalf("03:00应同时处于东京和悉尼时段：%v", res.ActiveSessions)
	}
}
