package query

import (
	"context"
	"tradediary/internal/dao"
	"tradediary/internal/model/entity"

	"gorm.io/gorm"
)

var _ dao.LedgerDao = (*ledgerDao)(nil)

// 账本的有序性由id升序保证，下标是load结果中的位置
type ledgerDao struct {
	ds *gorm.DB
}

func NewLedgerDao(ds *gorm.DB) *ledgerDao {
	return &ledgerDao{
		ds: ds,
	}
}

func (l *ledgerDao) LedgerLoad(ctx context.Context, userId, accountId int64) ([]entity.Trade, error) {
	var trades []entity.Trade
	err := l.ds.WithContext(ctx).
		Where("user_id = ? AND account_id = ?", userId, accountId).
		Order("id asc").
		Find(&trades).Error
	return trades, err
}

func (l *ledgerDao) LedgerAppend(ctx context.Context, trade *entity.Trade) error {
	return l.ds.WithContext(ctx).Create(trade).Error
}

// idAt 把账本下标换成主键id，越界返回ErrIndexOutOfRange
func (l *ledgerDao) idAt(ctx context.Context, userId, accountId int64, index int) (int64, error) {
	if index < 0 {
		return 0, dao.ErrIndexOutOfRange
	}
	var ids []int64
	err := l.ds.WithContext(ctx).Model(&entity.Trade{}).
		Where("user_id = ? AND account_id = ?", userId, accountId).
		Order("id asc").
		Offset(index).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, dao.ErrIndexOutOfRange
	}
	return ids[0], nil
}

func (l *ledgerDao) LedgerGetAt(ctx context.Context, userId, accountId int64, index int) (entity.Trade, error) {
	var trade entity.Trade
	id, err := l.idAt(ctx, userId, accountId, index)
	if err != nil {
		return trade, err
	}
	err = l.ds.WithContext(ctx).Where("id = ?", id).First(&trade).Error
	return trade, err
}

func (l *ledgerDao) LedgerReplaceAt(ctx context.Context, userId, accountId int64, index int, patch map[string]interface{}) (entity.Trade, error) {
	var trade entity.Trade
	id, err := l.idAt(ctx, userId, accountId, index)
	if err != nil {
		return trade, err
	}
	// map形式的Updates只改动给出的列，实现合并语义
	if err = l.ds.WithContext(ctx).Model(&entity.Trade{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		return trade, err
	}
	err = l.ds.WithContext(ctx).Where("id = ?", id).First(&trade).Error
	return trade, err
}

func (l *ledgerDao) LedgerRemoveAt(ctx context.Context, userId, accountId int64, index int) (entity.Trade, error) {
	var trade entity.Trade
	id, err := l.idAt(ctx, userId, accountId, index)
	if err != nil {
		return trade, err
	}
	if err = l.ds.WithContext(ctx).Where("id = ?", id).First(&trade).Error; err != nil {
		return trade, err
	}
	err = l.ds.WithContext(ctx).Delete(&entity.Trade{}, id).Error
	return trade, err
}

func (l *ledgerDao) LedgerCount(ctx context.Context, userId, accountId int64) (int64, error) {
	var count int64
	err := l.ds.WithContext(ctx).Model(&entity.Trade{}).
		Where("user_id = ? AND account_id = ?", userId, accountId).
		Count(&count).Error
	return count, err
}
