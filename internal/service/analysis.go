package service

import (
	"context"
	"path/filepath"
	"tradediary/internal/model"
	"tradediary/internal/vision"
	"tradediary/pkg/blob"
	perrors "tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/logger"
)

// 快照输入：文件名用于推断mime，内容为原始图片字节
type Snapshot struct {
	Filename string
	Data     []byte
}

type AnalysisService interface {
	// 保存快照并调用视觉模型生成分析报告，
	// 指定了账本下标时把报告追加到对应记录
	Analyze(ctx context.Context, userId int64, req model.AnalysisReq, snapshots []Snapshot) (res model.AnalysisRes, err error)
	// 仅保存一张快照，返回可入库的引用
	SaveSnapshot(ctx context.Context, snapshot Snapshot) (res model.SnapshotUploadRes, err error)
	// 按引用读取快照内容，返回数据和mime类型
	LoadSnapshot(ctx context.Context, ref string) (data []byte, mime string, err error)
}

type analysisService struct {
	vc    *vision.Client
	store *blob.Store
	ts    TradeService
}

func NewAnalysisService(vc *vision.Client, store *blob.Store, ts TradeService) *analysisService {
	return &analysisService{vc: vc, store: store, ts: ts}
}

func mimeOf(filename string) string {
	switch filepath.Ext(filename) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

func (a *analysisService) SaveSnapshot(ctx context.Context, snapshot Snapshot) (res model.SnapshotUploadRes, err error) {
	ref, err := a.store.Save(snapshot.Data, snapshot.Filename)
	if err != nil {
		return res, perrors.Wrap(err, ecode.StorageErr, "保存快照失败")
	}
	res.Reference = ref
	res.URL = a.store.URL(ref)
	return res, nil
}

func (a *analysisService) LoadSnapshot(ctx context.Context, ref string) ([]byte, string, error) {
	data, err := a.store.Load(ref)
	if err != nil {
		return nil, "", perrors.Wrap(err, ecode.NotFoundErr, "快照不存在")
	}
	return data, mimeOf(ref), nil
}

func (a *analysisService) Analyze(ctx context.Context, userId int64, req model.AnalysisReq, snapshots []Snapshot) (res model.AnalysisRes, err error) {
	if len(snapshots) == 0 {
		return res, perrors.WithCode(ecode.ValidateErr, "至少上传一张图表快照")
	}
	if a.vc == nil {
		return res, perrors.WithCode(ecode.AnalysisErr, "视觉分析未配置")
	}

	images := make([]vision.Image, 0, len(snapshots))
	refs := make([]string, 0, len(snapshots))
	for _, snapshot := range snapshots {
		ref, saveErr := a.store.Save(snapshot.Data, snapshot.Filename)
		if saveErr != nil {
			return res, perrors.Wrap(saveErr, ecode.StorageErr, "保存快照失败")
		}
		refs = append(refs, ref)
		images = append(images, vision.Image{Mime: mimeOf(snapshot.Filename), Data: snapshot.Data})
	}

	mode := req.Mode
	if mode == "" {
		mode = "trend"
	}
	report, err := a.vc.Analyze(ctx, images, mode, req.Instrument)
	if err != nil {
		return res, perrors.Wrap(err, ecode.AnalysisErr, "图表分析失败")
	}

	// 报告回写失败不影响本次分析结果的返回
	if req.TradeIndex != nil && req.AccountId > 0 {
		if attachErr := a.ts.TradeAttachAnalysis(ctx, userId, req.AccountId, *req.TradeIndex, report); attachErr != nil {
			logger.Warnf("分析报告写入账本失败：%v", attachErr)
		}
	}

	res.Report = report
	res.Images = refs
	return res, nil
}
