package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager 存储管理器，维护已注册的磁盘驱动并代理默认磁盘的操作
type Manager struct {
	// 已注册的磁盘驱动
	disks map[string]FileSystem

	// 默认磁盘名称
	defaultDisk string

	// 日志记录器
	logger *logrus.Logger

	// 互斥锁保证并发安全
	mu sync.RWMutex
}

// ManagerOption 管理器选项函数
type ManagerOption func(*Manager)

// WithLogger 设置管理器使用的日志记录器
func WithLogger(logger *logrus.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager 创建新的存储管理器
func NewManager(options ...ManagerOption) *Manager {
	m := &Manager{
		disks:  make(map[string]FileSystem),
		logger: logrus.New(),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Disk 获取指定名称的文件系统驱动
func (m *Manager) Disk(name string) (FileSystem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if fs, ok := m.disks[name]; ok {
		return fs, nil
	}

	return nil, fmt.Errorf("storage: 磁盘 '%s' 未注册", name)
}

// DefaultDisk 获取默认文件系统驱动
func (m *Manager) DefaultDisk() (FileSystem, error) {
	m.mu.RLock()
	name := m.defaultDisk
	m.mu.RUnlock()

	if name == "" {
		return nil, fmt.Errorf("storage: 未设置默认磁盘")
	}
	return m.Disk(name)
}

// SetDefaultDisk 设置默认文件系统驱动
func (m *Manager) SetDefaultDisk(name string) error {
	if _, err := m.Disk(name); err != nil {
		return err
	}

	m.mu.Lock()
	m.defaultDisk = name
	m.mu.Unlock()

	return nil
}

// RegisterDisk 注册存储驱动。第一个注册的驱动自动成为默认磁盘。
func (m *Manager) RegisterDisk(name string, fs FileSystem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.disks[name] = fs
	if m.defaultDisk == "" {
		m.defaultDisk = name
	}

	m.logger.WithFields(logrus.Fields{
		"disk":    name,
		"default": m.defaultDisk == name,
	}).Debug("storage: 注册磁盘驱动")
}

// UnregisterDisk 注销文件系统驱动
func (m *Manager) UnregisterDisk(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.disks, name)

	// 如果移除的是默认磁盘，选择任意剩余磁盘作为默认磁盘
	if m.defaultDisk == name {
		m.defaultDisk = ""
		for diskName := range m.disks {
			m.defaultDisk = diskName
			break
		}
	}

	m.logger.WithField("disk", name).Debug("storage: 注销磁盘驱动")
}

// DiskNames 获取所有已注册的文件系统驱动名称
func (m *Manager) DiskNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.disks))
	for name := range m.disks {
		names = append(names, name)
	}
	return names
}

// HasDisk 检查指定名称的文件系统驱动是否存在
func (m *Manager) HasDisk(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.disks[name]
	return exists
}

// DefaultDiskName 获取默认文件系统驱动名称
func (m *Manager) DefaultDiskName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.defaultDisk
}

// 以下方法是对默认文件系统驱动的操作代理

// Exists 检查文件在默认磁盘上是否存在
func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return false, err
	}
	return fs.Exists(ctx, path)
}

// Write 向默认磁盘写入文件
func (m *Manager) Write(ctx context.Context, path string, content []byte, options ...WriteOption) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.Write(ctx, path, content, options...)
}

// WriteStream 向默认磁盘通过流写入文件
func (m *Manager) WriteStream(ctx context.Context, path string, content io.Reader, options ...WriteOption) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.WriteStream(ctx, path, content, options...)
}

// Read 从默认磁盘读取文件
func (m *Manager) Read(ctx context.Context, path string) ([]byte, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return nil, err
	}
	return fs.Read(ctx, path)
}

// ReadStream 从默认磁盘获取文件读取流
func (m *Manager) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return nil, err
	}
	return fs.ReadStream(ctx, path)
}

// Delete 从默认磁盘删除文件
func (m *Manager) Delete(ctx context.Context, path string) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.Delete(ctx, path)
}

// DeleteDirectory 从默认磁盘删除目录
func (m *Manager) DeleteDirectory(ctx context.Context, path string) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.DeleteDirectory(ctx, path)
}

// CreateDirectory 在默认磁盘上创建目录
func (m *Manager) CreateDirectory(ctx context.Context, path string, options ...WriteOption) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.CreateDirectory(ctx, path, options...)
}

// ListContents 列出默认磁盘目录下的内容
func (m *Manager) ListContents(ctx context.Context, path string, deep bool) (ContentIterator, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return nil, err
	}
	return fs.ListContents(ctx, path, deep), nil
}

// Copy 在默认磁盘上复制文件
func (m *Manager) Copy(ctx context.Context, source, destination string, options ...WriteOption) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.Copy(ctx, source, destination, options...)
}

// Move 在默认磁盘上移动文件
func (m *Manager) Move(ctx context.Context, source, destination string, options ...WriteOption) error {
	fs, err := m.DefaultDisk()
	if err != nil {
		return err
	}
	return fs.Move(ctx, source, destination, options...)
}

// URL 获取默认磁盘上文件的公开URL
func (m *Manager) URL(ctx context.Context, path string) (string, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return "", err
	}
	return fs.URL(ctx, path), nil
}

// TemporaryURL 获取默认磁盘上文件的临时URL
func (m *Manager) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error) {
	fs, err := m.DefaultDisk()
	if err != nil {
		return "", err
	}
	return fs.TemporaryURL(ctx, path, expiresAt)
}
