package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
	"tradediary/internal/consts"
	"tradediary/internal/dao"
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
	"tradediary/internal/notifier"
	perrors "tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/logger"
	"tradediary/utils"
	"tradediary/utils/uuid"

	"gorm.io/gorm"
)

// EventSink 账本事件的下游订阅者（websocket推送等）
type EventSink interface {
	Publish(event model.JournalEvent)
}

type TradeService interface {
	// 开仓：向账本追加一条OPEN记录，返回记录及其下标
	TradeOpen(ctx context.Context, userId int64, req model.TradeOpenReq) (res model.TradeOpenRes, err error)
	// 平仓：按下标把OPEN记录置为CLOSED，pnl符号按result归一
	TradeClose(ctx context.Context, userId int64, index int, req model.TradeCloseReq) (res model.TradeRes, err error)
	// 部分更新：只合并传入的字段
	TradeUpdate(ctx context.Context, userId int64, index int, req model.TradeUpdateReq) (res model.TradeRes, err error)
	// 删除指定下标的记录，返回被删除的记录
	TradeDelete(ctx context.Context, userId, accountId int64, index int) (res model.TradeRes, err error)
	TradeGet(ctx context.Context, userId, accountId int64, index int) (res model.TradeRes, err error)
	TradeList(ctx context.Context, userId, accountId int64) (res model.TradeListRes, err error)
	// 把AI分析报告写入记录的extras和notes
	TradeAttachAnalysis(ctx context.Context, userId, accountId int64, index int, report string) error
}

type tradeService struct {
	ld   dao.LedgerDao
	ad   dao.AccountDao
	iSrv *uuid.SnowNode
	ntf  notifier.TextNotifier
	sink EventSink

	// 每个(user, account)账本一把锁，同一账本的写操作串行执行
	locks sync.Map
}

func NewTradeService(ld dao.LedgerDao, ad dao.AccountDao, ntf notifier.TextNotifier) *tradeService {
	if ntf == nil {
		ntf = notifier.Noop{}
	}
	return &tradeService{
		ld:   ld,
		ad:   ad,
		iSrv: uuid.NewNode(3),
		ntf:  ntf,
	}
}

// SetEventSink 注入事件订阅者，启动时由路由装配调用
func (t *tradeService) SetEventSink(sink EventSink) {
	t.sink = sink
}

func (t *tradeService) ledgerLock(userId, accountId int64) *sync.Mutex {
	key := strconv.FormatInt(userId, 10) + ":" + strconv.FormatInt(accountId, 10)
	mu, _ := t.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (t *tradeService) checkAccount(ctx context.Context, userId, accountId int64) error {
	_, err := t.ad.AccountGet(ctx, userId, accountId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return perrors.WithCode(ecode.NotFoundErr, "账户不存在")
		}
		return err
	}
	return nil
}

func (t *tradeService) TradeOpen(ctx context.Context, userId int64, req model.TradeOpenReq) (res model.TradeOpenRes, err error) {
	if err = t.checkAccount(ctx, userId, req.AccountId); err != nil {
		return res, err
	}

	tradeDate := time.Now()
	if req.TradeDate != "" {
		tradeDate, err = time.Parse(consts.DateLayout, req.TradeDate)
		if err != nil {
			return res, perrors.WithCode(ecode.ValidateErr, "开仓日期格式应为"+consts.DateLayout)
		}
	}

	trade := entity.Trade{
		Id:          t.iSrv.GenSnowID(),
		AccountId:   req.AccountId,
		UserId:      userId,
		TradeDate:   tradeDate,
		Instrument:  strings.ToUpper(req.Instrument),
		Direction:   req.Direction,
		Status:      string(model.StatusOpen),
		Result:      string(model.ResultPending),
		Pnl:         0,
		EntryPrice:  req.EntryPrice,
		StopPrice:   req.StopPrice,
		TakeProfit:  req.TakeProfit,
		RiskPercent: req.RiskPercent,
		LotSize:     req.LotSize,
		Notes:       utils.ValidUTF8String(req.Notes),
		BeforeImage: req.BeforeImage,
	}

	mu := t.ledgerLock(userId, req.AccountId)
	mu.Lock()
	err = t.ld.LedgerAppend(ctx, &trade)
	var count int64
	if err == nil {
		count, err = t.ld.LedgerCount(ctx, userId, req.AccountId)
	}
	mu.Unlock()
	if err != nil {
		return res, err
	}

	res.Trade = trade
	res.Index = int(count) - 1
	InvalidateSummaryCache(ctx, userId, req.AccountId)
	t.emit(model.JournalEvent{
		Type:      model.EventTradeOpened,
		UserId:    userId,
		AccountId: req.AccountId,
		Index:     res.Index,
		Trade:     &trade,
		At:        time.Now(),
	})
	t.notify(fmt.Sprintf("*开仓* %s %s #%d", trade.Instrument, trade.Direction, res.Index))
	return res, nil
}

func (t *tradeService) TradeClose(ctx context.Context, userId int64, index int, req model.TradeCloseReq) (res model.TradeRes, err error) {
	if err = t.checkAccount(ctx, userId, req.AccountId); err != nil {
		return res, err
	}

	// pnl方向由result决定：WIN取正幅度，LOSS取负幅度，BREAKEVEN恒为0
	pnl := math.Abs(req.Pnl)
	switch model.TradeResult(req.Result) {
	case model.ResultWin:
	case model.ResultLoss:
		pnl = -pnl
	case model.ResultBreakeven:
		pnl = 0
	default:
		// 平仓结果只能是WIN/LOSS/BREAKEVEN，拦截绕过参数校验的调用
		return res, perrors.WithCode(ecode.ValidateErr, "平仓结果不正确")
	}

	mu := t.ledgerLock(userId, req.AccountId)
	mu.Lock()
	defer mu.Unlock()

	current, err := t.ld.LedgerGetAt(ctx, userId, req.AccountId, index)
	if err != nil {
		return res, t.mapLedgerErr(err, index)
	}
	if current.Status == string(model.StatusClosed) {
		return res, perrors.WithCode(ecode.ValidateErr, "该记录已平仓")
	}

	patch := map[string]interface{}{
		"status": string(model.StatusClosed),
		"result": req.Result,
		"pnl":    pnl,
		"ratio":  req.Ratio,
	}
	if req.Notes != "" {
		patch["notes"] = utils.ValidUTF8String(req.Notes)
	}
	if req.AfterImage != "" {
		patch["after_image"] = req.AfterImage
	}
	updated, err := t.ld.LedgerReplaceAt(ctx, userId, req.AccountId, index, patch)
	if err != nil {
		return res, t.mapLedgerErr(err, index)
	}

	res.Trade = updated
	res.Index = index
	InvalidateSummaryCache(ctx, userId, req.AccountId)
	t.emit(model.JournalEvent{
		Type:      model.EventTradeClosed,
		UserId:    userId,
		AccountId: req.AccountId,
		Index:     index,
		Trade:     &updated,
		At:        time.Now(),
	})
	t.notify(fmt.Sprintf("*平仓* %s %s #%d 盈亏 %.2f", updated.Instrument, updated.Result, index, updated.Pnl))
	return res, nil
}

func (t *tradeService) TradeUpdate(ctx context.Context, userId int64, index int, req model.TradeUpdateReq) (res model.TradeRes, err error) {
	if err = t.checkAccount(ctx, userId, req.AccountId); err != nil {
		return res, err
	}

	patch := map[string]interface{}{}
	if req.TradeDate != nil {
		tradeDate, parseErr := time.Parse(consts.DateLayout, *req.TradeDate)
		if parseErr != nil {
			return res, perrors.WithCode(ecode.ValidateErr, "开仓日期格式应为"+consts.DateLayout)
		}
		patch["trade_date"] = tradeDate
	}
	if req.Instrument != nil {
		// 品种统一存大写规范形式
		patch["instrument"] = strings.ToUpper(*req.Instrument)
	}
	if req.Notes != nil {
		patch["notes"] = utils.ValidUTF8String(*req.Notes)
	}
	if req.Ratio != nil {
		patch["ratio"] = *req.Ratio
	}
	if req.TakeProfit != nil {
		patch["take_profit"] = *req.TakeProfit
	}
	if req.BeforeImage != nil {
		patch["before_image"] = *req.BeforeImage
	}
	if req.AfterImage != nil {
		patch["after_image"] = *req.AfterImage
	}
	if len(patch) == 0 {
		return res, perrors.WithCode(ecode.ValidateErr, "没有可更新的字段")
	}

	mu := t.ledgerLock(userId, req.AccountId)
	mu.Lock()
	updated, err := t.ld.LedgerReplaceAt(ctx, userId, req.AccountId, index, patch)
	mu.Unlock()
	if err != nil {
		return res, t.mapLedgerErr(err, index)
	}
	res.Trade = updated
	res.Index = index
	InvalidateSummaryCache(ctx, userId, req.AccountId)
	return res, nil
}

func (t *tradeService) TradeDelete(ctx context.Context, userId, accountId int64, index int) (res model.TradeRes, err error) {
	if err = t.checkAccount(ctx, userId, accountId); err != nil {
		return res, err
	}

	mu := t.ledgerLock(userId, accountId)
	mu.Lock()
	removed, err := t.ld.LedgerRemoveAt(ctx, userId, accountId, index)
	mu.Unlock()
	if err != nil {
		return res, t.mapLedgerErr(err, index)
	}
	res.Trade = removed
	res.Index = index
	InvalidateSummaryCache(ctx, userId, accountId)
	t.emit(model.JournalEvent{
		Type:      model.EventTradeDeleted,
		UserId:    userId,
		AccountId: accountId,
		Index:     index,
		Trade:     &removed,
		At:        time.Now(),
	})
	return res, nil
}

func (t *tradeService) TradeGet(ctx context.Context, userId, accountId int64, index int) (res model.TradeRes, err error) {
	if err = t.checkAccount(ctx, userId, accountId); err != nil {
		return res, err
	}
	trade, err := t.ld.LedgerGetAt(ctx, userId, accountId, index)
	if err != nil {
		return res, t.mapLedgerErr(err, index)
	}
	res.Trade = trade
	res.Index = index
	return res, nil
}

func (t *tradeService) TradeList(ctx context.Context, userId, accountId int64) (res model.TradeListRes, err error) {
	if err = t.checkAccount(ctx, userId, accountId); err != nil {
		return res, err
	}
	trades, err := t.ld.LedgerLoad(ctx, userId, accountId)
	if err != nil {
		return res, err
	}
	res.AccountId = accountId
	res.Total = len(trades)
	res.Trades = trades
	return res, nil
}

func (t *tradeService) TradeAttachAnalysis(ctx context.Context, userId, accountId int64, index int, report string) error {
	mu := t.ledgerLock(userId, accountId)
	mu.Lock()
	defer mu.Unlock()

	current, err := t.ld.LedgerGetAt(ctx, userId, accountId, index)
	if err != nil {
		return t.mapLedgerErr(err, index)
	}
	notes := current.Notes
	if notes != "" {
		notes += "\n\n"
	}
	notes += "[AI分析]\n" + report
	_, err = t.ld.LedgerReplaceAt(ctx, userId, accountId, index, map[string]interface{}{"notes": notes})
	if err != nil {
		return t.mapLedgerErr(err, index)
	}
	return nil
}

// mapLedgerErr 下标越界映射为资源不存在错误，其余原样返回
func (t *tradeService) mapLedgerErr(err error, index int) error {
	if errors.Is(err, dao.ErrIndexOutOfRange) {
		return perrors.Wrapf(err, ecode.NotFoundErr, "记录#%d不存在", index)
	}
	return err
}

func (t *tradeService) emit(event model.JournalEvent) {
	if t.sink == nil {
		return
	}
	t.sink.Publish(event)
}

// notify 异步推送消息，失败只记日志不影响主流程
func (t *tradeService) notify(text string) {
	go func() {
		if err := t.ntf.SendText(text); err != nil {
			logger.Warnf("推送通知失败：%v", err)
		}
	}()
}
