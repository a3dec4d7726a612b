package analysis

import (
	"io"
	"net/http"
	"tradediary/internal/consts"
	"tradediary/internal/model"
	"tradediary/internal/service"
	"tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/response"
	"tradediary/pkg/validator"

	"github.com/gin-gonic/gin"
)

// 单张快照限制8MB，超过直接拒绝
const maxSnapshotSize = 8 << 20

type AnalysisHandler struct {
	service service.AnalysisService
}

func NewAnalysisHandler(service service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func readSnapshots(ctx *gin.Context) ([]service.Snapshot, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, errors.WithCode(ecode.ValidateErr, "请求需要multipart格式")
	}
	files := form.File["images"]
	snapshots := make([]service.Snapshot, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxSnapshotSize {
			return nil, errors.WithCode(ecode.ValidateErr, "图片超过大小限制")
		}
		f, openErr := fh.Open()
		if openErr != nil {
			return nil, errors.Wrap(openErr, ecode.ValidateErr, "图片读取失败")
		}
		data, readErr := io.ReadAll(f)
		f.Close()
		if readErr != nil {
			return nil, errors.Wrap(readErr, ecode.ValidateErr, "图片读取失败")
		}
		snapshots = append(snapshots, service.Snapshot{Filename: fh.Filename, Data: data})
	}
	return snapshots, nil
}

// @Summary		AI图表分析
// @title			Journal API
// @version		1.0
// @description	上传K线图快照，由视觉模型生成复盘分析报告；传入账本下标时报告会追加到对应记录
// @Accept			multipart/form-data
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			instrument		formData	string	true	"交易品种"
// @Param			mode			formData	string	false	"策略模式：trend/breakout/reversal/scalp"
// @Param			account_id		formData	int		false	"账户id"
// @Param			trade_index		formData	int		false	"账本下标"
// @Param			images			formData	file	true	"图表快照，可多张"
// @Success		200				{object}	response.ApiResponse{data=model.AnalysisRes}
// @Router			/api/v1/analysis [post]
func (handler *AnalysisHandler) Analyze() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AnalysisReq
		if err := ctx.ShouldBind(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		snapshots, err := readSnapshots(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.Analyze(ctx, userId, req, snapshots)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		上传图表快照
// @title			Journal API
// @version		1.0
// @description	仅保存快照并返回可写入交易记录的引用
// @Accept			multipart/form-data
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Param			images			formData	file	true	"图表快照"
// @Success		200				{object}	response.ApiResponse{data=model.SnapshotUploadRes}
// @Router			/api/v1/analysis/snapshot [post]
func (handler *AnalysisHandler) SnapshotUpload() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		snapshots, err := readSnapshots(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		if len(snapshots) == 0 {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "缺少图片文件"), nil)
			return
		}
		res, err := handler.service.SaveSnapshot(ctx, snapshots[0])
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		读取图表快照
// @title			Journal API
// @version		1.0
// @description	按引用返回快照图片内容
// @Produce		image/png
// @Param			Authorization	header	string	false	"Bearer 用户令牌"
// @Param			ref				path	string	true	"快照引用"
// @Success		200
// @Router			/api/v1/analysis/snapshot/{ref} [get]
func (handler *AnalysisHandler) SnapshotGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ref := ctx.Param("ref")
		data, mime, err := handler.service.LoadSnapshot(ctx, ref)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		ctx.Data(http.StatusOK, mime, data)
	}
}
