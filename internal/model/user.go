package model

// 用户登陆发起请求的参数
type UserLoginReq struct {
	Username string `json:"username" validate:"required" label:"用户名"`
	Password string `json:"password" validate:"required" label:"密码"`
	Captcha  string `json:"captcha" validate:"required" label:"验证码"`
}

// 用户登陆成功响应的结构体
type UserLoginRes struct {
	Token   string `json:"token"`
	Timeout int    `json:"timeout"`
}

// 用户注册的参数
type UserRegisterReq struct {
	Username string `json:"username" validate:"required,min=3,max=32" label:"用户名"`
	Password string `json:"password" validate:"required,min=6" label:"密码"`
	Email    string `json:"email" validate:"required,email" label:"邮箱地址"`
	Captcha  string `json:"captcha" validate:"required" label:"验证码"`
}

type UserRegisterRes struct {
	IsSuccess bool `json:"is_success"`
}

type UserGetInfoRes struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type UserInfo struct {
	UserId   int64  `gorm:"column:id" json:"user_id"`
	Username string `gorm:"column:username" json:"username"`
	Nickname string `gorm:"column:nickname" json:"nickname"`
	Password string `gorm:"column:password" json:"-"`
	Email    string `gorm:"column:email" json:"email"`
}

type CaptchaRes struct {
	Image string `json:"image"`
}
