package service

import (
	"tradediary/internal/model"
	"tradediary/pkg/logger"
	"tradediary/pkg/recorder"
)

// 账本事件的订阅者组合：websocket推送之外还落一份本地审计日志

type fanoutSink struct {
	sinks []EventSink
}

// NewFanoutSink 把事件依次交给多个订阅者
func NewFanoutSink(sinks ...EventSink) EventSink {
	return &fanoutSink{sinks: sinks}
}

func (f *fanoutSink) Publish(event model.JournalEvent) {
	for _, sink := range f.sinks {
		sink.Publish(event)
	}
}

type recorderSink struct {
	rec *recorder.JSONFileRecorder
}

// NewRecorderSink 把账本事件逐行追加到本地JSON审计日志
func NewRecorderSink(rec *recorder.JSONFileRecorder) EventSink {
	return &recorderSink{rec: rec}
}

func (r *recorderSink) Publish(event model.JournalEvent) {
	if err := r.rec.Record(event); err != nil {
		logger.Warnf("审计日志写入失败：%v", err)
	}
}
