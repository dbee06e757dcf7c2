// Package obsstorage 把配置、存储管理器和OBS驱动装配为
// 可直接注入使用的存储服务。
//
// 典型用法：
//
//	container := dig.New()
//	if err := obsstorage.Register(container); err != nil { ... }
//	err := container.Invoke(func(manager *storage.Manager) {
//	    manager.Write(ctx, "a.txt", []byte("hello"))
//	})
package obsstorage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/t9527332/huawei-obs-storage/config"
	"github.com/t9527332/huawei-obs-storage/storage"
	"github.com/t9527332/huawei-obs-storage/storage/obs"
)

// NewManager 根据存储配置构建管理器，逐个解析磁盘驱动
func NewManager(cfg storage.StorageConfig, options ...storage.ManagerOption) (*storage.Manager, error) {
	manager := storage.NewManager(options...)

	for name, disk := range cfg.Disks {
		fs, err := ResolveDriver(disk)
		if err != nil {
			return nil, fmt.Errorf("storage: 初始化磁盘 '%s' 失败: %w", name, err)
		}
		manager.RegisterDisk(name, fs)
	}

	if cfg.DefaultDisk != "" {
		if err := manager.SetDefaultDisk(cfg.DefaultDisk); err != nil {
			return nil, err
		}
	}
	return manager, nil
}

// ResolveDriver 按驱动类型创建文件系统驱动
func ResolveDriver(disk storage.DiskConfig) (storage.FileSystem, error) {
	switch disk.Driver {
	case "obs":
		return obs.Resolve(disk)
	default:
		return nil, fmt.Errorf("storage: 不支持的驱动类型 '%s'", disk.Driver)
	}
}

// Register 把配置管理器与存储管理器注册到dig容器
func Register(container *dig.Container) error {
	if err := container.Provide(func() (*config.Config, error) {
		cfg := config.New()
		if err := cfg.Load(); err != nil {
			return nil, err
		}
		return cfg, nil
	}); err != nil {
		return err
	}

	return container.Provide(func(cfg *config.Config) (*storage.Manager, error) {
		storageCfg, err := cfg.StorageConfig()
		if err != nil {
			return nil, err
		}
		return NewManager(storageCfg, storage.WithLogger(logrus.StandardLogger()))
	})
}
