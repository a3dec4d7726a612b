package service

import (
	"context"
	"tradediary/internal/model"
	"tradediary/internal/risk"
)

type SizingService interface {
	SizingCalculate(ctx context.Context, req model.SizingCalcReq) (res model.SizingCalcRes, err error)
}

type sizingService struct{}

func NewSizingService() *sizingService {
	return &sizingService{}
}

// SizingCalculate 纯计算，非法的价位组合返回全零结果而不是错误
func (s *sizingService) SizingCalculate(ctx context.Context, req model.SizingCalcReq) (res model.SizingCalcRes, err error) {
	result := risk.Calculate(risk.Input{
		Balance:     req.Balance,
		RiskPercent: req.RiskPercent,
		EntryPrice:  req.EntryPrice,
		StopPrice:   req.StopPrice,
		TakeProfit:  req.TakeProfit,
		Instrument:  req.Instrument,
	})
	res = model.SizingCalcRes{
		RiskAmount:  result.RiskAmount,
		PipDistance: result.PipDistance,
		LotSize:     result.LotSize,
		RewardRatio: result.RewardRatio,
	}
	return res, nil
}
