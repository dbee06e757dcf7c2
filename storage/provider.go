package storage

// StorageConfig 文件存储系统配置
type StorageConfig struct {
	// 默认驱动
	DefaultDisk string `mapstructure:"default_disk"`

	// 磁盘配置
	Disks map[string]DiskConfig `mapstructure:"disks"`
}

// DiskConfig 磁盘配置
type DiskConfig struct {
	// 驱动类型 (obs)
	Driver string `mapstructure:"driver"`

	// 驱动配置
	Config map[string]interface{} `mapstructure:"config"`
}

// GetString 从驱动配置中读取字符串值
func (c DiskConfig) GetString(key, defaultValue string) string {
	if val, ok := c.Config[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetBool 从驱动配置中读取布尔值
func (c DiskConfig) GetBool(key string, defaultValue bool) bool {
	if val, ok := c.Config[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// GetInt 从驱动配置中读取整数值
func (c DiskConfig) GetInt(key string, defaultValue int) int {
	if val, ok := c.Config[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}
