package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Sourcing SourcingConfig `mapstructure:"sourcing"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	TextGen  TextGenConfig  `mapstructure:"textgen"`
	Pool     PoolConfig     `mapstructure:"pool"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// SourcingConfig 选品配置
// min_stock：可售库存下限（低于该值视为近期有断货风险）
// top_n：每次运行选取的 SKU 上限
type SourcingConfig struct {
	MinStock int `mapstructure:"min_stock"`
	TopN     int `mapstructure:"top_n"`
}

// PricingConfig 定价配置
// divisor = 1 - (2.9% 交易手续费 + 10% 税 + 25% 目标毛利) = 0.621
// fixed_fee：固定加价项（美元）
// round_step：售价向上取整步长（美元）
type PricingConfig struct {
	Divisor   float64 `mapstructure:"divisor"`
	FixedFee  float64 `mapstructure:"fixed_fee"`
	RoundStep float64 `mapstructure:"round_step"`
}

// TextGenConfig 文本生成服务配置
type TextGenConfig struct {
	BaseURL      string            `mapstructure:"base_url"`
	APIKey       string            `mapstructure:"api_key"`
	Model        string            `mapstructure:"model"`
	Timeout      time.Duration     `mapstructure:"timeout"`
	Temperatures TemperatureConfig `mapstructure:"temperatures"`
}

// TemperatureConfig 按角色区分的采样温度
type TemperatureConfig struct {
	Listing float64 `mapstructure:"listing"`
	Audit   float64 `mapstructure:"audit"`
	Email   float64 `mapstructure:"email"`
	Manager float64 `mapstructure:"manager"`
}

// PoolConfig 条目级并发池配置
type PoolConfig struct {
	Workers    int           `mapstructure:"workers"`
	BufferSize int           `mapstructure:"buffer_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// setDefaults 注册默认值（与业务公式的推导值保持一致）
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dsagent")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("sourcing.min_stock", 10)
	v.SetDefault("sourcing.top_n", 10)

	v.SetDefault("pricing.divisor", 0.621)
	v.SetDefault("pricing.fixed_fee", 0.30)
	v.SetDefault("pricing.round_step", 0.50)

	v.SetDefault("textgen.model", "gemini-2.0-flash")
	v.SetDefault("textgen.timeout", 30*time.Second)
	v.SetDefault("textgen.temperatures.listing", 0.7)
	v.SetDefault("textgen.temperatures.audit", 0.0)
	v.SetDefault("textgen.temperatures.email", 0.0)
	v.SetDefault("textgen.temperatures.manager", 0.3)

	v.SetDefault("pool.workers", 4)
	v.SetDefault("pool.buffer_size", 16)
	v.SetDefault("pool.timeout", 45*time.Second)
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Default 返回默认配置（不读文件，供工具与测试使用）
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// 仅默认值，Unmarshal 不会失败
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Sourcing.MinStock < 0 {
		return fmt.Errorf("sourcing.min_stock must be >= 0")
	}
	if c.Sourcing.TopN <= 0 {
		return fmt.Errorf("sourcing.top_n must be > 0")
	}
	if c.Pricing.Divisor <= 0 || c.Pricing.Divisor >= 1 {
		return fmt.Errorf("pricing.divisor must be in (0, 1)")
	}
	if c.Pricing.FixedFee < 0 {
		return fmt.Errorf("pricing.fixed_fee must be >= 0")
	}
	if c.Pricing.RoundStep <= 0 {
		return fmt.Errorf("pricing.round_step must be > 0")
	}
	if c.TextGen.BaseURL == "" {
		return fmt.Errorf("textgen.base_url is required")
	}
	if c.TextGen.Timeout <= 0 {
		return fmt.Errorf("textgen.timeout must be > 0")
	}
	if c.Pool.Workers <= 0 {
		return fmt.Errorf("pool.workers must be > 0")
	}
	return nil
}
