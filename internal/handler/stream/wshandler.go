package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"tradediary/internal/consts"
	"tradediary/internal/model"
	"tradediary/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/spf13/cast"
)

// 客户端请求的消息格式
type subscribeMessage struct {
	Action   string  `json:"action"`   // subscribe | unsubscribe
	Accounts []int64 `json:"accounts"` // 账户id列表，空表示该用户的全部账户
}

type ClientConn struct {
	Conn   *websocket.Conn
	Send   chan []byte // 异步发送通道
	UserId int64
	// 订阅的账户集合，空集合表示接收该用户的全部账本事件
	Accounts map[int64]struct{}
}

// Handler 账本事件的websocket分发器，同时实现service.EventSink
type Handler struct {
	mu sync.RWMutex
	// 每个用户对应的在线连接集合
	userClients map[int64]map[*ClientConn]struct{}
	upgrader    websocket.Upgrader
}

func NewHandler() *Handler {
	return &Handler{
		userClients: make(map[int64]map[*ClientConn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
		},
	}
}

// ServeWS 建立websocket连接，仅推送当前登录用户自己的账本事件
func (h *Handler) ServeWS(c *gin.Context) {
	userId := cast.ToInt64(c.Value(consts.UserID))
	if userId == 0 {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket升级失败：%v", err)
		return
	}
	client := &ClientConn{
		Conn:     conn,
		Send:     make(chan []byte, 64),
		UserId:   userId,
		Accounts: make(map[int64]struct{}),
	}

	h.mu.Lock()
	if h.userClients[userId] == nil {
		h.userClients[userId] = make(map[*ClientConn]struct{})
	}
	h.userClients[userId][client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.userClients[userId], client)
		if len(h.userClients[userId]) == 0 {
			delete(h.userClients, userId)
		}
		h.mu.Unlock()
		close(client.Send)
		conn.Close()
	}()

	// 不断从Send channel取消息写入websocket
	go client.writePump()
	// 阻塞读取客户端的订阅消息
	client.readPump(h)
}

// Publish 把账本事件推给该用户的所有在线连接
func (h *Handler) Publish(event model.JournalEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.userClients[event.UserId] {
		if len(client.Accounts) > 0 {
			if _, ok := client.Accounts[event.AccountId]; !ok {
				continue
			}
		}
		select {
		case client.Send <- data:
		default:
			// 队列满就丢弃，客户端可随时重新拉取账本全量
		}
	}
}

func (c *ClientConn) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump 读取客户端的订阅消息
func (c *ClientConn) readPump(h *Handler) {
	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg subscribeMessage
		if err := json.Unmarshal(msg, &clientMsg); err != nil {
			logger.Debugf("忽略无法解析的订阅消息：%v", err)
			continue
		}

		h.mu.Lock()
		switch clientMsg.Action {
		case "subscribe":
			for _, accountId := range clientMsg.Accounts {
				c.Accounts[accountId] = struct{}{}
			}
		case "unsubscribe":
			for _, accountId := range clientMsg.Accounts {
				delete(c.Accounts, accountId)
			}
		}
		h.mu.Unlock()
	}
}
