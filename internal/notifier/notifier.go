package notifier

// TextNotifier 最小化的文本通知接口，调用方不感知具体实现
type TextNotifier interface {
	SendText(text string) error
}

// Noop 未配置通知渠道时的空实现
type Noop struct{}

func (Noop) SendText(string) error { return nil }
