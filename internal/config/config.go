// Package config 服务配置：默认值 < 配置文件 < IDGEN_ 前缀环境变量
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"katydid-common-idgen/pkg/idgen/snowflake"
	"katydid-common-idgen/pkg/logger"
)

// EnvPrefix 环境变量前缀，例如 IDGEN_NODE_WORKER_ID
const EnvPrefix = "IDGEN"

var validate = validator.New()

// Config 顶层配置
type Config struct {
	Node      NodeConfig      `mapstructure:"node"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Log       logger.Config   `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
}

// NodeConfig 节点身份
type NodeConfig struct {
	RegionID int64 `mapstructure:"region_id" validate:"gte=0,lte=7"`
	WorkerID int64 `mapstructure:"worker_id" validate:"gte=0,lte=1023"`
}

// GeneratorConfig 生成器行为
type GeneratorConfig struct {
	EnableMetrics bool          `mapstructure:"enable_metrics"`
	SpinInterval  time.Duration `mapstructure:"spin_interval" validate:"gte=0,lte=1ms"`
}

// HTTPConfig HTTP服务
type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"`
}

// Default 内置默认值
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			EnableMetrics: true,
			SpinInterval:  100 * time.Microsecond,
		},
		Log: logger.DefaultConfig(),
		HTTP: HTTPConfig{
			Addr: ":8080",
			Mode: "release",
		},
	}
}

// Load 读取配置文件（path 为空时只用默认值和环境变量）并校验
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults 注册所有键，AutomaticEnv 只对已知键生效
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("node.region_id", d.Node.RegionID)
	v.SetDefault("node.worker_id", d.Node.WorkerID)
	v.SetDefault("generator.enable_metrics", d.Generator.EnableMetrics)
	v.SetDefault("generator.spin_interval", d.Generator.SpinInterval)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.filename", d.Log.Filename)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.mode", d.HTTP.Mode)
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s failed on %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SnowflakeConfig 转换为生成器配置
func (c *Config) SnowflakeConfig() *snowflake.Config {
	return &snowflake.Config{
		RegionID:      c.Node.RegionID,
		WorkerID:      c.Node.WorkerID,
		EnableMetrics: c.Generator.EnableMetrics,
		SpinInterval:  c.Generator.SpinInterval,
	}
}
