package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Trade 账本中的一条交易记录，按id升序构成账户的有序账本
// 状态机：OPEN(result=PENDING, pnl=0) -> CLOSED(result=WIN/LOSS/BREAKEVEN)
type Trade struct {
	Id        int64 `gorm:"primaryKey" json:"id"`
	AccountId int64 `gorm:"column:account_id;not null;index:idx_account" json:"account_id"`
	UserId    int64 `gorm:"column:user_id;not null;index:idx_user" json:"user_id"`

	TradeDate  time.Time `gorm:"column:trade_date;type:date;not null" json:"trade_date"` // 开仓日期
	Instrument string    `gorm:"column:instrument;type:varchar(20);not null" json:"instrument"`
	Direction  string    `gorm:"column:direction;type:varchar(8);not null" json:"direction"`       // LONG/SHORT
	Status     string    `gorm:"column:status;type:varchar(8);not null;index:idx_status" json:"status"` // OPEN/CLOSED
	Result     string    `gorm:"column:result;type:varchar(12);not null" json:"result"`           // PENDING/WIN/LOSS/BREAKEVEN

	// 已实现盈亏，开仓状态恒为0；WIN为正，LOSS为负，BREAKEVEN为0
	Pnl   float64 `gorm:"column:pnl;type:decimal(15,2);default:0" json:"pnl"`
	Ratio float64 `gorm:"column:ratio;type:decimal(8,2);default:0" json:"ratio"` // 已实现盈亏比

	// 开仓参数，供仓位计算回看
	EntryPrice  float64 `gorm:"column:entry_price;type:decimal(15,5)" json:"entry_price"`
	StopPrice   float64 `gorm:"column:stop_price;type:decimal(15,5)" json:"stop_price"`
	TakeProfit  float64 `gorm:"column:take_profit;type:decimal(15,5)" json:"take_profit"`
	RiskPercent float64 `gorm:"column:risk_percent;type:decimal(6,2)" json:"risk_percent"`
	LotSize     float64 `gorm:"column:lot_size;type:decimal(10,2)" json:"lot_size"`

	Notes       string `gorm:"column:notes;type:text" json:"notes"`
	BeforeImage string `gorm:"column:before_image;type:varchar(255)" json:"before_image"` // 开仓前图表快照引用
	AfterImage  string `gorm:"column:after_image;type:varchar(255)" json:"after_image"`   // 平仓后图表快照引用

	Extras datatypes.JSON `gorm:"column:extras;type:json" json:"extras"` // AI分析等附加信息

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trade"
}
