package dao

import (
	"context"
	"tradediary/internal/model/entity"
)

type AccountDao interface {
	// 创建账户，(user_id, name) 唯一
	AccountCreate(ctx context.Context, account *entity.Account) error
	// 获取账户，不存在时返回gorm.ErrRecordNotFound
	AccountGet(ctx context.Context, userId, accountId int64) (entity.Account, error)
	// 按名称查找账户
	AccountGetByName(ctx context.Context, userId int64, name string) (entity.Account, error)
	// 用户的账户列表
	AccountList(ctx context.Context, userId int64) ([]entity.Account, error)
	// 删除账户
	AccountDelete(ctx context.Context, userId, accountId int64) error
}
