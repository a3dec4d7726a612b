package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	UserID      = "user_id"
	JWTTokenCtx = "token_ctx"

	UserInfoPrefix       = "User_Info_list:"
	AccountSummaryPrefix = "Account_Summary_list:"
	AccountBalancePrefix = "Account_Balance_list:"
	CaptchaPrefix        = "Captcha_list:"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5
	// 账户汇总的缓存时间，账本写入后会主动失效
	SummaryCacheTTL = time.Second * 30
)

const (
	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)
