package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"shopops/dsagent/pkg/errorutil"
)

// 产物文件名（每次运行整体覆盖）
const (
	FileSelection     = "selection.json"
	FilePriceUpdate   = "price_update.csv"
	FileStockUpdate   = "stock_update.csv"
	FileListings      = "listings.json"
	FileRedlines      = "listing_redlines.json"
	FileOrderActions  = "order_actions.json"
	FileDailyReport   = "daily_report.md"
	FileManagerReport = "manager_report.md"
)

// Store 产物存储（输出目录下的 JSON / CSV / Markdown 文件）
type Store struct {
	dir string
}

// NewStore 创建产物存储
// 输出目录不存在时自动创建；不可写视为致命错误
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errorutil.Fatal("output directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errorutil.FatalWithDetails("create output directory failed", err.Error())
	}

	// 写权限探测
	probe := filepath.Join(dir, ".dsagent_probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return nil, errorutil.FatalWithDetails("output directory is not writable", err.Error())
	}
	_ = os.Remove(probe)

	return &Store{dir: dir}, nil
}

// Dir 返回输出目录
func (s *Store) Dir() string {
	return s.dir
}

// Path 返回产物文件的完整路径
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// SaveJSON 写 JSON 产物（覆盖写）
func (s *Store) SaveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("marshal artifact %s failed", name), err.Error())
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("write artifact %s failed", name), err.Error())
	}

	return nil
}

// SaveCSV 写 CSV 产物（覆盖写，首行为表头）
func (s *Store) SaveCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("create artifact %s failed", name), err.Error())
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("write artifact %s header failed", name), err.Error())
	}
	if err := w.WriteAll(rows); err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("write artifact %s rows failed", name), err.Error())
	}

	w.Flush()
	return w.Error()
}

// SaveMarkdown 写 Markdown 产物（覆盖写）
func (s *Store) SaveMarkdown(name string, content string) error {
	if err := os.WriteFile(s.Path(name), []byte(content), 0o644); err != nil {
		return errorutil.FatalWithDetails(fmt.Sprintf("write artifact %s failed", name), err.Error())
	}
	return nil
}
