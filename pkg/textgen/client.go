package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client 文本生成服务客户端封装
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient 创建文本生成客户端
func NewClient(baseURL string, apiKey string, model string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("textgen base_url is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{},
	}, nil
}

// GenerateText 生成自由文本
// 每次调用受 timeout 约束，超时按单次调用失败处理
func (c *Client) GenerateText(ctx context.Context, temperature float64, prompt string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &GenerateRequest{
		Model:       c.model,
		Temperature: temperature,
		Prompt:      prompt,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal generate request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("textgen call failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read textgen response failed: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("textgen returned status %d: %s", httpResp.StatusCode, truncate(string(respBody), 256))
	}

	var resp GenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshal textgen response failed: %w", err)
	}

	if resp.Error != "" {
		return "", fmt.Errorf("textgen error: %s", resp.Error)
	}

	return resp.Content, nil
}

// GenerateJSON 生成结构化 JSON 并解析到 out
// 对端常把 JSON 包在 markdown 代码块里，解析前先剥离
func (c *Client) GenerateJSON(ctx context.Context, temperature float64, prompt string, out interface{}) error {
	content, err := c.GenerateText(ctx, temperature, prompt)
	if err != nil {
		return err
	}

	payload := ExtractJSON(content)
	if payload == "" {
		return fmt.Errorf("textgen response contains no JSON object: %s", truncate(content, 256))
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("unmarshal textgen JSON failed: %w", err)
	}

	return nil
}

// ExtractJSON 从自由文本中提取首个 JSON 对象
// 返回空串表示文本中不存在 '{' ... '}' 片段
func ExtractJSON(content string) string {
	s := strings.TrimSpace(content)

	// 剥离 markdown 代码块围栏
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}

	return s[start : end+1]
}

// truncate 截断长文本（用于错误信息）
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
