package model

// AI图表分析请求，图片通过multipart上传
type AnalysisReq struct {
	Instrument string `form:"instrument" validate:"required" label:"交易品种"`
	Mode       string `form:"mode" validate:"omitempty,oneof=trend breakout reversal scalp" label:"策略模式"`
	AccountId  int64  `form:"account_id" label:"账户id"`
	TradeIndex *int   `form:"trade_index" label:"账本下标"` // 传入时分析结果会追加到该记录的备注
}

type AnalysisRes struct {
	Report string   `json:"report"`
	Images []string `json:"images"` // 已保存的快照引用
}

// 快照上传结果
type SnapshotUploadRes struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}
