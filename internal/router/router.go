package router

import (
	"tradediary/internal/handler/account"
	"tradediary/internal/handler/analysis"
	"tradediary/internal/handler/market"
	"tradediary/internal/handler/ping"
	"tradediary/internal/handler/sizing"
	"tradediary/internal/handler/stream"
	"tradediary/internal/handler/trade"
	"tradediary/internal/handler/user"
	"tradediary/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	userHandler     *user.UserHandler
	accountHandler  *account.AccountHandler
	tradeHandler    *trade.TradeHandler
	sizingHandler   *sizing.SizingHandler
	analysisHandler *analysis.AnalysisHandler
	marketHandler   *market.MarketHandler
	streamHandler   *stream.Handler
}

func NewApiRouter(
	uh *user.UserHandler,
	ah *account.AccountHandler,
	th *trade.TradeHandler,
	sh *sizing.SizingHandler,
	anh *analysis.AnalysisHandler,
	mh *market.MarketHandler,
	wsh *stream.Handler,
) *ApiRouter {
	return &ApiRouter{
		userHandler:     uh,
		accountHandler:  ah,
		tradeHandler:    th,
		sizingHandler:   sh,
		analysisHandler: anh,
		marketHandler:   mh,
		streamHandler:   wsh,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	auth := base.Group("/auth", middleware.AntiDuplicateMiddleware())
	{
		auth.POST("/login", api.userHandler.UserLogin())
		auth.POST("/register", api.userHandler.UserRegister())
		auth.POST("/captcha", api.userHandler.CaptchaGen())
	}

	u := base.Group("/user", middleware.AuthToken())
	{
		u.GET("/info", api.userHandler.UserGetInfo())
		u.GET("/logout", api.userHandler.UserLogout())
	}

	a := base.Group("/accounts", middleware.AuthToken())
	{
		a.POST("", api.accountHandler.AccountCreate())
		a.GET("", api.accountHandler.AccountList())
		a.POST("/backup", api.accountHandler.AccountBackupAll())
		a.DELETE("/:id", api.accountHandler.AccountDelete())
		a.GET("/:id/balance", api.accountHandler.AccountBalance())
		a.GET("/:id/summary", api.accountHandler.AccountSummary())
		a.POST("/:id/backup", api.accountHandler.AccountBackup())
	}

	t := base.Group("/trades", middleware.AuthToken())
	{
		t.POST("", api.tradeHandler.TradeOpen())
		t.GET("", api.tradeHandler.TradeList())
		t.GET("/:index", api.tradeHandler.TradeGet())
		t.PUT("/:index", api.tradeHandler.TradeUpdate())
		t.DELETE("/:index", api.tradeHandler.TradeDelete())
		t.POST("/:index/close", api.tradeHandler.TradeClose())
	}

	s := base.Group("/sizing", middleware.AuthToken())
	{
		s.POST("/calculate", api.sizingHandler.SizingCalculate())
	}

	an := base.Group("/analysis", middleware.AuthToken())
	{
		an.POST("", api.analysisHandler.Analyze())
		an.POST("/snapshot", api.analysisHandler.SnapshotUpload())
		an.GET("/snapshot/:ref", api.analysisHandler.SnapshotGet())
	}

	m := base.Group("/market")
	{
		m.GET("/session", api.marketHandler.SessionStatus())
	}

	// websocket推送账本事件，不加防抖
	base.GET("/stream/ws", middleware.AuthToken(), api.streamHandler.ServeWS)
}
