package dao

import (
	"context"
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
)

type UserDao interface {
	// 根据用户名获取user实体
	UserGetByName(ctx context.Context, username string) (entity.User, error)
	// 根据用户id获取用户
	UserGetById(ctx context.Context, userId int64) (model.UserInfo, error)
	// 创建用户
	UserCreate(ctx context.Context, user *entity.User) error
	// 用户名称校验
	UserVerifyUsername(ctx context.Context, username string) (count int64, err error)
	// 用户邮箱校验
	UserVerifyEmail(ctx context.Context, email string) (count int64, err error)
	// 删除用户
	UserDelete(ctx context.Context, userId int64) error
}
