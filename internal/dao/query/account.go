package query

import (
	"context"
	"tradediary/internal/dao"
	"tradediary/internal/model/entity"

	"gorm.io/gorm"
)

var _ dao.AccountDao = (*accountDao)(nil)

type accountDao struct {
	ds *gorm.DB
}

func NewAccountDao(ds *gorm.DB) *accountDao {
	return &accountDao{
		ds: ds,
	}
}

func (a *accountDao) AccountCreate(ctx context.Context, account *entity.Account) error {
	return a.ds.WithContext(ctx).Create(account).Error
}

func (a *accountDao) AccountGet(ctx context.Context, userId, accountId int64) (entity.Account, error) {
	var account entity.Account
	err := a.ds.WithContext(ctx).
		Where("user_id = ? AND id = ?", userId, accountId).
		First(&account).Error
	return account, err
}

func (a *accountDao) AccountGetByName(ctx context.Context, userId int64, name string) (entity.Account, error) {
	var account entity.Account
	err := a.ds.WithContext(ctx).
		Where("user_id = ? AND name = ?", userId, name).
		First(&account).Error
	return account, err
}

func (a *accountDao) AccountList(ctx context.Context, userId int64) ([]entity.Account, error) {
	var accounts []entity.Account
	err := a.ds.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id asc").
		Find(&accounts).Error
	return accounts, err
}

func (a *accountDao) AccountDelete(ctx context.Context, userId, accountId int64) error {
	return a.ds.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&entity.Account{Id: accountId}).Error
}
