package service

import (
	"context"
	"errors"
	"time"
	"tradediary/internal/dao"
	"tradediary/internal/model"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/logger"
	"tradediary/pkg/recorder"

	perrors "tradediary/pkg/errors"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type BackupService interface {
	// 导出单个账户的完整账本为JSON和CSV文件
	BackupAccount(ctx context.Context, userId, accountId int64) (res model.AccountBackupRes, err error)
	// 导出用户名下所有账户，单个账户失败不中断其余导出，错误合并返回
	BackupAll(ctx context.Context, userId int64) (res []model.AccountBackupRes, err error)
}

type backupService struct {
	ad  dao.AccountDao
	ld  dao.LedgerDao
	dir string
}

func NewBackupService(ad dao.AccountDao, ld dao.LedgerDao, dir string) *backupService {
	return &backupService{ad: ad, ld: ld, dir: dir}
}

func (b *backupService) BackupAccount(ctx context.Context, userId, accountId int64) (res model.AccountBackupRes, err error) {
	account, err := b.ad.AccountGet(ctx, userId, accountId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, perrors.WithCode(ecode.NotFoundErr, "账户不存在")
		}
		return res, err
	}
	trades, err := b.ld.LedgerLoad(ctx, userId, accountId)
	if err != nil {
		return res, err
	}

	archive := recorder.Archive{
		ExportedAt: time.Now(),
		UserId:     userId,
		AccountId:  accountId,
		Account:    account.Name,
		Trades:     trades,
	}
	jsonPath, err := recorder.WriteJSON(b.dir, archive)
	if err != nil {
		return res, perrors.Wrap(err, ecode.StorageErr, "导出JSON失败")
	}
	csvPath, err := recorder.WriteCSV(b.dir, archive)
	if err != nil {
		return res, perrors.Wrap(err, ecode.StorageErr, "导出CSV失败")
	}

	res = model.AccountBackupRes{
		JsonPath: jsonPath,
		CsvPath:  csvPath,
		Trades:   len(trades),
	}
	logger.Infof("账户[%s]导出完成，共%d条记录", account.Name, len(trades))
	return res, nil
}

func (b *backupService) BackupAll(ctx context.Context, userId int64) (res []model.AccountBackupRes, err error) {
	accounts, listErr := b.ad.AccountList(ctx, userId)
	if listErr != nil {
		return nil, listErr
	}
	for _, account := range accounts {
		one, backupErr := b.BackupAccount(ctx, userId, account.Id)
		if backupErr != nil {
			err = multierr.Append(err, perrors.Wrapf(backupErr, ecode.StorageErr, "账户[%s]导出失败", account.Name))
			continue
		}
		res = append(res, one)
	}
	return res, err
}
