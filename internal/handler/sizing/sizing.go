package sizing

import (
	"tradediary/internal/model"
	"tradediary/internal/service"
	"tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/response"
	"tradediary/pkg/validator"

	"github.com/gin-gonic/gin"
)

type SizingHandler struct {
	service service.SizingService
}

func NewSizingHandler(service service.SizingService) *SizingHandler {
	return &SizingHandler{service: service}
}

// @Summary		仓位计算
// @title			Journal API
// @version		1.0
// @description	根据余额、风险百分比和止损距离计算建议手数，入场价和止损价相等时返回全零结果
// @Accept			json
// @Produce		json
// @Param			Authorization	header		string				false	"Bearer 用户令牌"
// @Param			object			body		model.SizingCalcReq	true	"计算参数"
// @Success		200				{object}	response.ApiResponse{data=model.SizingCalcRes}
// @Router			/api/v1/sizing/calculate [post]
func (handler *SizingHandler) SizingCalculate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SizingCalcReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := handler.service.SizingCalculate(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "仓位计算失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
