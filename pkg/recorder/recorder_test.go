package recorder

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

func TestRecordConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal-log.json")
	r := NewJSONFileRecorder(path)

	// 多个goroutine并发追加，每条记录必须是完整的一行JSON
	const writers = 8
	const perWriter = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				if err := r.Record(map[string]int{"writer": id, "seq": j}); err != nil {
					t.Errorf("写入失败：%v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开记录文件失败：%v", err)
	}
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var row map[string]int
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("第%d行不是合法JSON：%v", lines+1, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("读取记录文件失败：%v", err)
	}
	if lines != writers*perWriter {
		t.Fatalf("应有%d行记录，得到%d", writers*perWriter, lines)
	}
}
