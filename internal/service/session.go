package service

import (
	"context"
	"time"
	"tradediary/internal/model"
)

// 外汇市场时段：全部按UTC计算。
// 市场从周日22:00开盘持续到周五22:00，中间不间断。

type SessionService interface {
	SessionStatus(ctx context.Context) (res model.SessionStatusRes, err error)
}

type sessionService struct {
	// 便于测试注入固定时间
	now func() time.Time
}

func NewSessionService() *sessionService {
	return &sessionService{now: time.Now}
}

// 各交易时段的UTC开收盘小时，跨零点的时段end小于start
type sessionWindow struct {
	name  string
	start int
	end   int
}

var sessionWindows = []sessionWindow{
	{name: "Sydney", start: 21, end: 6},
	{name: "Tokyo", start: 0, end: 9},
	{name: "London", start: 7, end: 16},
	{name: "NewYork", start: 12, end: 21},
}

func (w sessionWindow) contains(hour int) bool {
	if w.start <= w.end {
		return hour >= w.start && hour < w.end
	}
	return hour >= w.start || hour < w.end
}

// marketOpen 周日22:00(UTC)至周五22:00(UTC)之间市场开放
func marketOpen(t time.Time) bool {
	t = t.UTC()
	switch t.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return t.Hour() >= 22
	case time.Friday:
		return t.Hour() < 22
	default:
		return true
	}
}

// nextMarketChange 下一次开市或休市的时刻
func nextMarketChange(t time.Time) time.Time {
	t = t.UTC()
	if marketOpen(t) {
		// 下一个周五22:00
		next := time.Date(t.Year(), t.Month(), t.Day(), 22, 0, 0, 0, time.UTC)
		for next.Weekday() != time.Friday || !next.After(t) {
			next = next.Add(24 * time.Hour)
		}
		return next
	}
	// 下一个周日22:00
	next := time.Date(t.Year(), t.Month(), t.Day(), 22, 0, 0, 0, time.UTC)
	for next.Weekday() != time.Sunday || !next.After(t) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func (s *sessionService) SessionStatus(ctx context.Context) (res model.SessionStatusRes, err error) {
	now := s.now().UTC()
	res.ServerTime = now
	res.IsOpen = marketOpen(now)
	res.NextChange = nextMarketChange(now)
	res.ActiveSessions = []string{}
	if !res.IsOpen {
		return res, nil
	}
	hour := now.Hour()
	for _, w := range sessionWindows {
		if w.contains(hour) {
			res.ActiveSessions = append(res.ActiveSessions, w.name)
		}
	}
	return res, nil
}
