package dao

import (
	"context"
	"errors"
	"tradediary/internal/model/entity"
)

// ErrIndexOutOfRange 账本下标越界
var ErrIndexOutOfRange = errors.New("ledger index out of range")

// LedgerDao 账本存储：一个(user, account)对应一个按id升序的有序记录序列，
// 记录按它在序列中的下标寻址
type LedgerDao interface {
	// 读取整个账本，账本不存在时返回空序列而不是错误
	LedgerLoad(ctx context.Context, userId, accountId int64) ([]entity.Trade, error)
	// 追加一条记录到账本末尾，追加后对后续Load立即可见
	LedgerAppend(ctx context.Context, trade *entity.Trade) error
	// 读取指定下标的记录，越界返回ErrIndexOutOfRange
	LedgerGetAt(ctx context.Context, userId, accountId int64, index int) (entity.Trade, error)
	// 合并更新指定下标的记录，只改动patch中给出的列，越界返回ErrIndexOutOfRange
	LedgerReplaceAt(ctx context.Context, userId, accountId int64, index int, patch map[string]interface{}) (entity.Trade, error)
	// 删除指定下标的记录，越界返回ErrIndexOutOfRange
	LedgerRemoveAt(ctx context.Context, userId, accountId int64, index int) (entity.Trade, error)
	// 账本长度
	LedgerCount(ctx context.Context, userId, accountId int64) (int64, error)
}
