package textgen

// GenerateRequest 文本生成请求（对端为 chat 风格 HTTP 服务）
type GenerateRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Prompt      string  `json:"prompt"`
}

// GenerateResponse 文本生成响应
// 对端不保证相同输入产生相同输出
type GenerateResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}
