// Package config 提供基于viper的配置加载，
// 解析storage配置段并支持配置文件变更监听。
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// Config 配置管理器
type Config struct {
	// viper实例
	viper *viper.Viper

	// 配置文件路径
	configPath string

	// 配置文件名
	configName string

	// 配置文件类型
	configType string

	// 是否已加载
	loaded bool

	// 锁
	mu sync.RWMutex

	// 配置更改回调
	onChangeCallbacks []func()
}

// Option 配置选项函数
type Option func(*Config)

// New 创建一个新的配置管理器
func New(options ...Option) *Config {
	cfg := &Config{
		viper:      viper.New(),
		configPath: "./config",
		configName: "storage",
		configType: "yaml",
	}

	for _, opt := range options {
		opt(cfg)
	}

	return cfg
}

// WithConfigPath 设置配置文件路径
func WithConfigPath(path string) Option {
	return func(c *Config) {
		c.configPath = path
	}
}

// WithConfigName 设置配置文件名
func WithConfigName(name string) Option {
	return func(c *Config) {
		c.configName = name
	}
}

// WithConfigType 设置配置文件类型
func WithConfigType(configType string) Option {
	return func(c *Config) {
		c.configType = configType
	}
}

// Load 加载配置文件
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viper.AddConfigPath(c.configPath)
	c.viper.SetConfigName(c.configName)
	c.viper.SetConfigType(c.configType)

	// 加载环境变量，如OBS_STORAGE_DISKS_OBS_CONFIG_BUCKET
	c.viper.AutomaticEnv()
	c.viper.SetEnvPrefix("OBS_STORAGE")
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := c.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("config: 加载配置文件失败: %w", err)
	}

	c.loaded = true
	c.setupConfigWatch()
	return nil
}

// setupConfigWatch 设置配置文件变更监听
func (c *Config) setupConfigWatch() {
	c.viper.WatchConfig()
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		c.mu.RLock()
		callbacks := make([]func(), len(c.onChangeCallbacks))
		copy(callbacks, c.onChangeCallbacks)
		c.mu.RUnlock()

		for _, callback := range callbacks {
			callback()
		}
	})
}

// OnChange 注册配置变更回调
func (c *Config) OnChange(callback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChangeCallbacks = append(c.onChangeCallbacks, callback)
}

// Loaded 判断配置是否已加载
func (c *Config) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Get 获取指定键的配置值
func (c *Config) Get(key string) interface{} {
	return c.viper.Get(key)
}

// GetString 获取字符串配置值
func (c *Config) GetString(key string) string {
	return c.viper.GetString(key)
}

// GetInt 获取整数配置值
func (c *Config) GetInt(key string) int {
	return c.viper.GetInt(key)
}

// GetBool 获取布尔配置值
func (c *Config) GetBool(key string) bool {
	return c.viper.GetBool(key)
}

// StorageConfig 解析storage配置段
func (c *Config) StorageConfig() (storage.StorageConfig, error) {
	var cfg storage.StorageConfig
	if err := c.viper.UnmarshalKey("storage", &cfg); err != nil {
		return storage.StorageConfig{}, fmt.Errorf("config: 解析storage配置段失败: %w", err)
	}
	return cfg, nil
}
