package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
	"tradediary/internal/model/entity"

	"github.com/goccy/go-json"
)

// 账本导出：JSON归档 + CSV表格，用于备份和外部分析

// JSONFileRecorder 追加式JSON行记录器，多个goroutine可并发Record
type JSONFileRecorder struct {
	Path string

	mu sync.Mutex
}

func NewJSONFileRecorder(path string) *JSONFileRecorder {
	return &JSONFileRecorder{
		Path: path,
	}
}

func (r *JSONFileRecorder) Record(result any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Archive 一次性账本归档
type Archive struct {
	ExportedAt time.Time      `json:"exported_at"`
	UserId     int64          `json:"user_id"`
	AccountId  int64          `json:"account_id"`
	Account    string         `json:"account"`
	Trades     []entity.Trade `json:"trades"`
}

// WriteJSON 把归档写入dir下的JSON文件，返回文件路径
func WriteJSON(dir string, archive Archive) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := archive.Account + "_" + archive.ExportedAt.Format("20060102_150405") + ".json"
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var csvHeader = []string{
	"date", "instrument", "direction", "status", "result",
	"pnl", "ratio", "entry_price", "stop_price", "take_profit",
	"risk_percent", "lot_size", "notes", "before_image", "after_image",
}

// WriteCSV 把账本写入dir下的CSV文件，返回文件路径
func WriteCSV(dir string, archive Archive) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := archive.Account + "_" + archive.ExportedAt.Format("20060102_150405") + ".csv"
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, trade := range archive.Trades {
		row := []string{
			trade.TradeDate.Format("2006-01-02"),
			trade.Instrument,
			trade.Direction,
			trade.Status,
			trade.Result,
			strconv.FormatFloat(trade.Pnl, 'f', 2, 64),
			strconv.FormatFloat(trade.Ratio, 'f', 2, 64),
			strconv.FormatFloat(trade.EntryPrice, 'f', -1, 64),
			strconv.FormatFloat(trade.StopPrice, 'f', -1, 64),
			strconv.FormatFloat(trade.TakeProfit, 'f', -1, 64),
			strconv.FormatFloat(trade.RiskPercent, 'f', 2, 64),
			strconv.FormatFloat(trade.LotSize, 'f', 2, 64),
			trade.Notes,
			trade.BeforeImage,
			trade.AfterImage,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
