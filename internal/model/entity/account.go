package entity

import (
	"tradediary/utils"

	"gorm.io/plugin/soft_delete"
)

// Account 交易账户，和用户是多对一关系，每个账户拥有一个独立的账本
type Account struct {
	Id     int64  `gorm:"column:id;primary_key;" json:"id"`
	UserId int64  `gorm:"column:user_id;not null;uniqueIndex:idx_user_name" json:"user_id"`
	Name   string `gorm:"column:name;type:varchar(64);not null;uniqueIndex:idx_user_name" json:"name"`
	// 初始资金，创建后不可修改，当前余额 = 初始资金 + 账本内所有pnl之和
	InitialBalance float64               `gorm:"column:initial_balance;not null" json:"initial_balance"`
	Currency       string                `gorm:"column:currency;type:varchar(10);default:USD" json:"currency"`
	CreatedAt      utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      utils.JsonTime        `gorm:"column:deleted_at" json:"deleted_at"`
	IsDel          soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt"`
	Trades         []Trade               `gorm:"foreignKey:account_id;references:id"`
}

func (Account) TableName() string {
	return "account"
}
