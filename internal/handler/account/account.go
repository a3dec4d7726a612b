package account

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

type AccountHandler struct {
	service service.AccountService
	backup  service.BackupService
}

func NewAccountHandler(service service.AccountService, backup service.BackupService) *AccountHandler {
	return &AccountHandler{service: service, backup: backup}
}

// @Summary		创建交易账户
// @title			Journal API
// @version		1.0
// @description	创建交易账户，初始资金创建后不可修改
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string					false	"Bearer 用户令牌"
// @Param			object			body		model.AccountCreateReq	true	"账户参数"
// @Success		200				{object}	response.ApiResponse{data=model.AccountCreateRes}
// @Router			/api/v1/accounts [post]
func (handler *AccountHandler) AccountCreate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AccountCreateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.AccountCreate(ctx, userId, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		账户列表
// @title			Journal API
// @version		1.0
// @description	获取当前用户的全部交易账户
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.AccountListRes}
// @Router			/api/v1/accounts [get]
func (handler *AccountHandler) AccountList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.AccountList(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "账户列表获取失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		删除账户
// @title			Journal API
// @version		1.0
// @description	删除账户及其账本
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			id				path		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/accounts/{id} [delete]
func (handler *AccountHandler) AccountDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		accountId := cast.ToInt64(ctx.Param("id"))
		if accountId == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "账户id不正确"), nil)
			return
		}
		if err := handler.service.AccountDelete(ctx, userId, accountId); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		账户余额
// @title			Journal API
// @version		1.0
// @description	当前余额 = 初始资金 + 账本内所有盈亏之和
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			id				path		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.AccountBalanceRes}
// @Router			/api/v1/accounts/{id}/balance [get]
func (handler *AccountHandler) AccountBalance() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		accountId := cast.ToInt64(ctx.Param("id"))
		res, err := handler.service.AccountBalance(ctx, userId, accountId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		账户汇总统计
// @title			Journal API
// @version		1.0
// @description	胜率、极值等统计只计入已平仓记录
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			id				path		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.AccountSummaryRes}
// @Router			/api/v1/accounts/{id}/summary [get]
func (handler *AccountHandler) AccountSummary() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		accountId := cast.ToInt64(ctx.Param("id"))
		res, err := handler.service.AccountSummary(ctx, userId, accountId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		导出账户账本
// @title			Journal API
// @version		1.0
// @description	把指定账户的账本导出为JSON和CSV文件
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			id				path		int		true	"账户id"
// @Success		200				{object}	response.ApiResponse{data=model.AccountBackupRes}
// @Router			/api/v1/accounts/{id}/backup [post]
func (handler *AccountHandler) AccountBackup() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		accountId := cast.ToInt64(ctx.Param("id"))
		res, err := handler.backup.BackupAccount(ctx, userId, accountId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		导出全部账户
// @title			Journal API
// @version		1.0
// @description	导出当前用户名下所有账户的账本，单个账户失败不中断其余导出
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/accounts/backup [post]
func (handler *AccountHandler) AccountBackupAll() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.backup.BackupAll(ctx, userId)
		if err != nil {
			// 部分成功时同时返回成功明细和错误说明
			response.JSON(ctx, errors.Wrap(err, ecode.StorageErr, "部分账户导出失败"), res)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
