package trade

import (
	"tradediary/internal/consts"
	"tradediary/internal/model"
	"tradediary/internal/service"
	"tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/response"
	"tradediary/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type TradeHandler struct {
	service service.TradeService
}

func NewTradeHandler(service service.TradeService) *TradeHandler {
	return &TradeHandler{service: service}
}

// 账本下标从路径参数读取，负数直接按参数错误拒绝
func parseIndex(ctx *gin.Context) (int, bool) {
	raw := ctx.Param("index")
	index := cast.ToInt(raw)
	if raw == "" || (index == 0 && raw != "0") || index < 0 {
		response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "账本下标不正确"), nil)
		return 0, false
	}
	return index, true
}

// @Summary		开仓登记
// @title			Journal API
// @version		1.0
// @description	向账本追加一条OPEN状态的交易记录
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string				false	"Bearer 用户令牌"
// @Param			object			body		model.TradeOpenReq	true	"开仓参数"
// @Success		200				{object}	response.ApiResponse{data=model.TradeOpenRes}
// @Router			/api/v1/trades [post]
func (handler *TradeHandler) TradeOpen() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TradeOpenReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeOpen(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		平仓
// @title			Journal API
// @version		1.0
// @description	把指定下标的OPEN记录置为CLOSED，盈亏符号按结果归一：WIN为正，LOSS为负，BREAKEVEN为0
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string				false	"Bearer 用户令牌"
// @Param			index			path		int					true	"账本下标"
// @Param			object			body		model.TradeCloseReq	true	"平仓参数"
// @Success		200				{object}	response.ApiResponse{data=model.TradeRes}
// @Router			/api/v1/trades/{index}/close [post]
func (handler *TradeHandler) TradeClose() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		index, ok := parseIndex(ctx)
		if !ok {
			return
		}
		var req model.TradeCloseReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeClose(ctx, userId, index, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		更新交易记录
// @title			Journal API
// @version		1.0
// @description	部分更新，只合并传入的字段，未传字段保持原值
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					false	"Bearer 用户令牌"
// @Param			index			path		int						true	"账本下标"
// @Param			object			body		model.TradeUpdateReq	true	"更新参数"
// @Success		200				{object}	response.ApiResponse{data=model.TradeRes}
// @Router			/api/v1/trades/{index} [put]
func (handler *TradeHandler) TradeUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		index, ok := parseIndex(ctx)
		if !ok {
			return
		}
		var req model.TradeUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeUpdate(ctx, userId, index, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		删除交易记录
// @title			Journal API
// @version		1.0
// @description	删除指定下标的记录，后续记录下标前移
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			index			path		int		true	"账本下标"
// @Param			account_id		query		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.TradeRes}
// @Router			/api/v1/trades/{index} [delete]
func (handler *TradeHandler) TradeDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		index, ok := parseIndex(ctx)
		if !ok {
			return
		}
		accountId := cast.ToInt64(ctx.Query("account_id"))
		if accountId == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "账户id不正确"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeDelete(ctx, userId, accountId, index)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		查看交易记录
// @title			Journal API
// @version		1.0
// @description	读取账本中指定下标的记录
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			index			path		int		true	"账本下标"
// @Param			account_id		query		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.TradeRes}
// @Router			/api/v1/trades/{index} [get]
func (handler *TradeHandler) TradeGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		index, ok := parseIndex(ctx)
		if !ok {
			return
		}
		accountId := cast.ToInt64(ctx.Query("account_id"))
		if accountId == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "账户id不正确"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeGet(ctx, userId, accountId, index)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		账本列表
// @title			Journal API
// @version		1.0
// @description	按账本顺序返回指定账户的全部交易记录
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			account_id		query		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.TradeListRes}
// @Router			/api/v1/trades [get]
func (handler *TradeHandler) TradeList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accountId := cast.ToInt64(ctx.Query("account_id"))
		if accountId == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "账户id不正确"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.TradeList(ctx, userId, accountId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
