package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"tradediary/conf"
	"tradediary/pkg/logger"
)

// 图表分析客户端：兼容 OpenAI 的视觉聊天补全接口（/v1/chat/completions）。
// 核心只负责传入品种和策略模式并取回纯文本报告，不感知服务内部协议。

type Image struct {
	Mime string // image/png 等
	Data []byte
}

// DataURI 转成聊天接口要求的 data uri 形式
func (img Image) DataURI() string {
	mime := img.Mime
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

type Client struct {
	BaseURL    string
	ApiKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int // 用于 429/5xx 的简易重试，0 表示默认重试 2 次
}

func NewClient(cfg conf.VisionConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:    cfg.BaseURL,
		ApiKey:     cfg.ApiKey,
		Model:      cfg.Model,
		Timeout:    timeout,
		MaxRetries: cfg.MaxRetries,
	}
}

const systemPrompt = "你是一名专业的外汇交易复盘助手。根据用户上传的K线图表，" +
	"从结构、关键位、动能三个角度给出简明的中文分析，最后给出值得注意的风险点。不要编造图中不存在的信息。"

// Analyze 分析图表快照，返回纯文本报告
func (c *Client) Analyze(ctx context.Context, images []Image, mode, instrument string) (string, error) {
	if len(images) == 0 {
		return "", fmt.Errorf("没有可分析的图片")
	}
	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	// 规范化 BaseURL，避免配置里已经带了 /chat/completions 导致路径重复
	url := c.BaseURL
	if url == "" {
		url = "https://api.openai.com/v1"
	}
	url = strings.TrimRight(url, "/")
	url = strings.TrimSuffix(url, "/chat/completions")
	url = url + "/chat/completions"

	userPrompt := fmt.Sprintf("品种：%s", strings.ToUpper(instrument))
	if mode != "" {
		userPrompt += fmt.Sprintf("，策略模式：%s", mode)
	}

	// 视觉接口的消息体：文本 + 若干 image_url
	content := []map[string]any{
		{"type": "text", "text": userPrompt},
	}
	for _, img := range images {
		content = append(content, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": img.DataURI()},
		})
	}
	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": content},
		},
		"temperature": 0.5,
	}
	b, _ := json.Marshal(body)

	httpc := &http.Client{Timeout: c.Timeout}
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.ApiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.ApiKey)
		}

		resp, err := httpc.Do(req)
		if err != nil {
			lastErr = err
			break
		}
		if resp.StatusCode/100 == 2 {
			var r struct {
				Choices []struct {
					Message struct {
						Content string `json:"content"`
					} `json:"message"`
				} `json:"choices"`
			}
			derr := json.NewDecoder(resp.Body).Decode(&r)
			resp.Body.Close()
			if derr != nil {
				return "", derr
			}
			if len(r.Choices) == 0 {
				return "", fmt.Errorf("empty choices")
			}
			return strings.TrimSpace(r.Choices[0].Message.Content), nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("vision status=%d", resp.StatusCode)
		// 仅对限流和服务端错误重试
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode/100 != 5 {
			break
		}
		logger.Warnf("图表分析请求失败（第%d次）：%v", attempt+1, lastErr)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt+1) * time.Second):
		}
	}
	return "", lastErr
}
