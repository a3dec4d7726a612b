package market

import (
	"tradediary/internal/service"
	"tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/response"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	service service.SessionService
}

func NewMarketHandler(service service.SessionService) *MarketHandler {
	return &MarketHandler{service: service}
}

// @Summary		市场时段状态
// @title			Journal API
// @version		1.0
// @description	按UTC返回外汇市场开闭状态和当前活跃时段
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.SessionStatusRes}
// @Router			/api/v1/market/session [get]
func (handler *MarketHandler) SessionStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.SessionStatus(ctx)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "时段状态获取失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
