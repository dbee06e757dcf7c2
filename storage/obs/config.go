package obs

import (
	"time"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// Config 华为云OBS配置选项
type Config struct {
	// AccessKey 访问密钥ID
	AccessKey string

	// SecretKey 访问密钥
	SecretKey string

	// Endpoint 端点，如 obs.cn-north-4.myhuaweicloud.com
	Endpoint string

	// Bucket 存储桶名称
	Bucket string

	// Prefix 根前缀，所有虚拟路径都映射到该前缀之下
	Prefix string

	// Domain 公开访问域名（CDN或自定义域名）。
	// 设置后公开URL使用该域名，且签名URL中的
	// 桶+端点主机会被改写为该域名。
	Domain string

	// UseSSL 是否使用HTTPS
	UseSSL bool

	// PathStyle 是否使用路径式寻址（默认虚拟主机式）
	PathStyle bool

	// DefaultVisibility 默认可见性
	DefaultVisibility string

	// PageSize 单次列举的最大条目数
	PageSize int

	// ConnectTimeout 连接超时
	ConnectTimeout time.Duration

	// ReadWriteTimeout 读写超时
	ReadWriteTimeout time.Duration

	// MaxRetries 传输层最大重试次数，由SDK执行
	MaxRetries int
}

// DefaultConfig 返回默认OBS配置
func DefaultConfig() Config {
	return Config{
		UseSSL:            true,
		DefaultVisibility: storage.VisibilityPrivate,
		PageSize:          1000,
		ConnectTimeout:    30 * time.Second,
		ReadWriteTimeout:  60 * time.Second,
		MaxRetries:        3,
	}
}

// ConfigFromDisk 从磁盘配置映射构建OBS配置
func ConfigFromDisk(disk storage.DiskConfig) Config {
	cfg := DefaultConfig()
	cfg.AccessKey = disk.GetString("access_key", "")
	cfg.SecretKey = disk.GetString("secret_key", "")
	cfg.Endpoint = disk.GetString("endpoint", "")
	cfg.Bucket = disk.GetString("bucket", "")
	cfg.Prefix = disk.GetString("prefix", "")
	cfg.Domain = disk.GetString("domain", "")
	cfg.UseSSL = disk.GetBool("use_ssl", true)
	cfg.PathStyle = disk.GetBool("path_style", false)
	cfg.DefaultVisibility = disk.GetString("default_visibility", storage.VisibilityPrivate)
	if pageSize := disk.GetInt("page_size", 0); pageSize > 0 {
		cfg.PageSize = pageSize
	}
	if retries := disk.GetInt("max_retries", -1); retries >= 0 {
		cfg.MaxRetries = retries
	}
	return cfg
}
