package entity

import (
	"tradediary/utils"

	"gorm.io/plugin/soft_delete"
)

type User struct {
	Id           int64                 `gorm:"column:id;primary_key;" json:"id"`
	Username     string                `gorm:"column:username;not null;unique" json:"username"` // unique 用户名唯一且不能为空
	Nickname     string                `gorm:"column:nickname" json:"nickname"`
	Email        string                `gorm:"column:email;unique" json:"email"` // unique 邮箱号唯一
	Password     string                `gorm:"column:password" json:"-"`
	RegisteredIp string                `gorm:"column:registered_ip" json:"registered_ip"`
	CreatedAt    utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    utils.JsonTime        `gorm:"column:deleted_at" json:"deleted_at"`
	IsDel        soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt"`
	Accounts     []Account             `gorm:"foreignKey:user_id;references:id"`
}

func (User) TableName() string {
	return "user"
}
