package service

import (
	"context"
	"errors"
	"strconv"
	"tradediary/internal/consts"
	"tradediary/internal/dao"
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
	"tradediary/internal/stats"
	"tradediary/pkg/cache"
	perrors "tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/logger"
	"tradediary/utils/uuid"

	"github.com/goccy/go-json"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type AccountService interface {
	AccountCreate(ctx context.Context, userId int64, req model.AccountCreateReq) (res model.AccountCreateRes, err error)
	AccountList(ctx context.Context, userId int64) (res model.AccountListRes, err error)
	AccountDelete(ctx context.Context, userId, accountId int64) error
	// 当前余额 = 初始资金 + 账本内所有pnl之和
	AccountBalance(ctx context.Context, userId, accountId int64) (res model.AccountBalanceRes, err error)
	// 账本汇总统计，结果短时间缓存，账本写入后失效
	AccountSummary(ctx context.Context, userId, accountId int64) (res model.AccountSummaryRes, err error)
}

type accountService struct {
	ad   dao.AccountDao
	ld   dao.LedgerDao
	iSrv *uuid.SnowNode
	rc   *redis.Client
}

func NewAccountService(ad dao.AccountDao, ld dao.LedgerDao) *accountService {
	return &accountService{
		ad:   ad,
		ld:   ld,
		iSrv: uuid.NewNode(2),
		rc:   cache.GetRedisClientOrNil(),
	}
}

func (a *accountService) AccountCreate(ctx context.Context, userId int64, req model.AccountCreateReq) (res model.AccountCreateRes, err error) {
	// 同一用户下账户名唯一
	_, err = a.ad.AccountGetByName(ctx, userId, req.Name)
	if err == nil {
		return res, perrors.WithCode(ecode.ValidateErr, "账户名称已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return res, err
	}

	account := entity.Account{
		Id:             a.iSrv.GenSnowID(),
		UserId:         userId,
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		Currency:       req.Currency,
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}
	if err = a.ad.AccountCreate(ctx, &account); err != nil {
		return res, err
	}
	res.Account = account
	return res, nil
}

func (a *accountService) AccountList(ctx context.Context, userId int64) (res model.AccountListRes, err error) {
	accounts, err := a.ad.AccountList(ctx, userId)
	if err != nil {
		return res, err
	}
	res.Accounts = accounts
	return res, nil
}

func (a *accountService) AccountDelete(ctx context.Context, userId, accountId int64) error {
	_, err := a.ad.AccountGet(ctx, userId, accountId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return perrors.WithCode(ecode.NotFoundErr, "账户不存在")
		}
		return err
	}
	if err = a.ad.AccountDelete(ctx, userId, accountId); err != nil {
		return err
	}
	InvalidateSummaryCache(ctx, userId, accountId)
	return nil
}

func (a *accountService) AccountBalance(ctx context.Context, userId, accountId int64) (res model.AccountBalanceRes, err error) {
	account, err := a.ad.AccountGet(ctx, userId, accountId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, perrors.WithCode(ecode.NotFoundErr, "账户不存在")
		}
		return res, err
	}
	trades, err := a.ld.LedgerLoad(ctx, userId, accountId)
	if err != nil {
		return res, err
	}
	res = model.AccountBalanceRes{
		AccountId:      account.Id,
		Currency:       account.Currency,
		InitialBalance: account.InitialBalance,
		CurrentBalance: stats.Balance(account.InitialBalance, trades),
	}
	return res, nil
}

func (a *accountService) AccountSummary(ctx context.Context, userId, accountId int64) (res model.AccountSummaryRes, err error) {
	rdsKey := summaryCacheKey(userId, accountId)
	if a.rc != nil {
		if jsonBytes, cacheErr := a.rc.Get(ctx, rdsKey).Bytes(); cacheErr == nil {
			if jsonErr := json.Unmarshal(jsonBytes, &res); jsonErr == nil {
				return res, nil
			}
		} else if cacheErr != redis.Nil {
			logger.Warnf("读取汇总缓存失败：%v", cacheErr)
		}
	}

	account, err := a.ad.AccountGet(ctx, userId, accountId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, perrors.WithCode(ecode.NotFoundErr, "账户不存在")
		}
		return res, err
	}
	trades, err := a.ld.LedgerLoad(ctx, userId, accountId)
	if err != nil {
		return res, err
	}
	summary := stats.Summarize(trades)
	res = model.AccountSummaryRes{
		AccountId:      account.Id,
		TotalTrades:    summary.TotalTrades,
		OpenTrades:     summary.OpenTrades,
		ClosedTrades:   summary.ClosedTrades,
		Wins:           summary.Wins,
		Losses:         summary.Losses,
		Breakevens:     summary.Breakevens,
		WinRate:        summary.WinRate,
		NetPnl:         summary.NetPnl,
		MaxPnl:         summary.MaxPnl,
		MinPnl:         summary.MinPnl,
		CurrentBalance: stats.Balance(account.InitialBalance, trades),
	}
	if a.rc != nil {
		if data, jsonErr := json.Marshal(res); jsonErr == nil {
			a.rc.Set(ctx, rdsKey, data, consts.SummaryCacheTTL)
		}
	}
	return res, nil
}

func summaryCacheKey(userId, accountId int64) string {
	return consts.AccountSummaryPrefix + strconv.FormatInt(userId, 10) + ":" + strconv.FormatInt(accountId, 10)
}

// InvalidateSummaryCache 账本写入后删除汇总缓存，保证读到最新统计
func InvalidateSummaryCache(ctx context.Context, userId, accountId int64) {
	rc := cache.GetRedisClientOrNil()
	if rc == nil {
		return
	}
	if err := rc.Del(ctx, summaryCacheKey(userId, accountId)).Err(); err != nil {
		logger.Warnf("删除汇总缓存失败：%v", err)
	}
}
