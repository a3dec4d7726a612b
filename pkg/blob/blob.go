package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"tradediary/utils/uuid"
)

// 图表快照的本地文件存储，核心只保存返回的引用字符串

type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if dir == "" {
		dir = "data/snapshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save 保存图片字节并返回引用（相对文件名）
func (s *Store) Save(data []byte, filename string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	ref := uuid.GenUUID16() + ext
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", err
	}
	return ref, nil
}

// Load 根据引用读取图片
func (s *Store) Load(ref string) ([]byte, error) {
	// 引用只允许是纯文件名，防止路径穿越
	if ref != filepath.Base(ref) || ref == "." || ref == "" {
		return nil, fmt.Errorf("invalid blob reference %q", ref)
	}
	return os.ReadFile(filepath.Join(s.dir, ref))
}

// URL 返回引用的外部访问地址
func (s *Store) URL(ref string) string {
	if s.baseURL == "" {
		return ref
	}
	return s.baseURL + "/" + ref
}
