package api

import (
	"tradediary/conf"
	"tradediary/internal/dao/query"
	"tradediary/internal/handler/account"
	"tradediary/internal/handler/analysis"
	"tradediary/internal/handler/market"
	"tradediary/internal/handler/sizing"
	"tradediary/internal/handler/stream"
	"tradediary/internal/handler/trade"
	"tradediary/internal/handler/user"
	"tradediary/internal/model/entity"
	"tradediary/internal/notifier"
	"tradediary/internal/router"
	"tradediary/internal/service"
	"tradediary/internal/vision"
	"tradediary/pkg/blob"
	"tradediary/pkg/logger"
	"tradediary/pkg/recorder"

	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB) Router {
	if err := db.AutoMigrate(&entity.User{}, &entity.Account{}, &entity.Trade{}); err != nil {
		logger.Fatalf("数据库迁移失败：%v", err)
	}

	appCfg := conf.AppConfig

	ud := query.NewUserDao(db)
	ad := query.NewAccountDao(db)
	ld := query.NewLedgerDao(db)

	// 交易提醒推送，未启用时使用空实现
	var ntf notifier.TextNotifier = notifier.Noop{}
	if appCfg.Telegram.Enabled {
		ntf = notifier.NewTelegram(appCfg.Telegram.BotToken, appCfg.Telegram.ChatId)
	}

	us := service.NewUserService(ud)
	as := service.NewAccountService(ad, ld)
	ts := service.NewTradeService(ld, ad, ntf)
	ss := service.NewSizingService()
	ms := service.NewSessionService()
	bs := service.NewBackupService(ad, ld, appCfg.Backup.Dir)

	// 快照存储和AI图表分析
	store, err := blob.NewStore(appCfg.Blob.Dir, appCfg.Blob.BaseURL)
	if err != nil {
		logger.Fatalf("快照目录初始化失败：%v", err)
	}
	var vc *vision.Client
	if appCfg.Vision.ApiKey != "" {
		vc = vision.NewClient(appCfg.Vision)
	}
	ans := service.NewAnalysisService(vc, store, ts)

	// 账本事件的websocket分发，另落一份审计日志
	wsh := stream.NewHandler()
	auditLog := recorder.NewJSONFileRecorder("logs/journal-log.json")
	ts.SetEventSink(service.NewFanoutSink(wsh, service.NewRecorderSink(auditLog)))

	apiRouter := router.NewApiRouter(
		user.NewUserHandler(us),
		account.NewAccountHandler(as, bs),
		trade.NewTradeHandler(ts),
		sizing.NewSizingHandler(ss),
		analysis.NewAnalysisHandler(ans),
		market.NewMarketHandler(ms),
		wsh,
	)
	return apiRouter
}
