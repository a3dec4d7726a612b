package middleware

import (
	"github.com/gin-gonic/gin"
)

// GlobalMiddleware 全局中间件装配，按Router接口挂载到gin引擎
type GlobalMiddleware struct{}

func NewMiddleware() *GlobalMiddleware {
	return &GlobalMiddleware{}
}

func (m *GlobalMiddleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(RequestId())
	g.Use(Logger)
	g.Use(NoCache())
	g.Use(Options())
	g.Use(Secure())
}
