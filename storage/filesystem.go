package storage

import (
	"context"
	"io"
	"os"
	"time"
)

// 常见错误定义
var (
	ErrFileNotFound     = os.ErrNotExist
	ErrPermissionDenied = os.ErrPermission
	ErrInvalidPath      = os.ErrInvalid
)

// 可见性取值
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// FileSystem 文件存储系统接口
type FileSystem interface {
	// Exists 检查文件是否存在
	Exists(ctx context.Context, path string) (bool, error)

	// DirectoryExists 检查目录是否存在
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// Write 写入文件内容
	Write(ctx context.Context, path string, content []byte, options ...WriteOption) error

	// WriteStream 通过流写入文件
	WriteStream(ctx context.Context, path string, content io.Reader, options ...WriteOption) error

	// Read 读取文件全部内容
	Read(ctx context.Context, path string) ([]byte, error)

	// ReadStream 获取文件的读取流，调用方负责关闭
	ReadStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete 删除文件
	Delete(ctx context.Context, path string) error

	// DeleteDirectory 删除目录及其全部内容
	DeleteDirectory(ctx context.Context, path string) error

	// CreateDirectory 创建目录
	CreateDirectory(ctx context.Context, path string, options ...WriteOption) error

	// SetVisibility 设置文件可见性
	SetVisibility(ctx context.Context, path, visibility string) error

	// Visibility 获取文件可见性
	Visibility(ctx context.Context, path string) (string, error)

	// MimeType 获取文件MIME类型
	MimeType(ctx context.Context, path string) (string, error)

	// LastModified 获取文件最后修改时间
	LastModified(ctx context.Context, path string) (time.Time, error)

	// Size 获取文件大小
	Size(ctx context.Context, path string) (int64, error)

	// ListContents 列出目录内容。deep为true时递归列出全部后代条目，
	// 否则仅列出直接子项（子目录以DirectoryAttributes形式返回）。
	// 返回的迭代器按需逐页拉取远端结果，不会一次性缓存全部条目。
	ListContents(ctx context.Context, path string, deep bool) ContentIterator

	// Copy 复制文件，目标文件继承源文件的可见性
	Copy(ctx context.Context, source, destination string, options ...WriteOption) error

	// Move 移动文件（复制后删除源文件，两步之间不保证原子性）
	Move(ctx context.Context, source, destination string, options ...WriteOption) error

	// URL 获取文件的公开访问URL，纯字符串拼接，不发起远端调用
	URL(ctx context.Context, path string) string

	// TemporaryURL 获取带签名的临时URL，expiresAt为URL失效时刻
	TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error)

	// Checksum 获取文件校验和
	Checksum(ctx context.Context, path, algorithm string) (string, error)
}

// Appendable 支持位置追加写入的存储驱动（OBS扩展能力）
type Appendable interface {
	// AppendObject 从position位置追加内容，返回下一次追加的位置
	AppendObject(ctx context.Context, path string, content []byte, position int64, options ...WriteOption) (int64, error)

	// AppendFile 从position位置追加本地文件内容，返回下一次追加的位置
	AppendFile(ctx context.Context, path string, sourceFile string, position int64, options ...WriteOption) (int64, error)
}

// ContentIterator 目录列表迭代器。用法与bufio.Scanner一致：
//
//	it := fs.ListContents(ctx, "photos", false)
//	for it.Next() {
//	    entry := it.Entry()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type ContentIterator interface {
	// Next 推进到下一个条目，没有更多条目或出错时返回false
	Next() bool

	// Entry 返回当前条目，仅在Next返回true后有效
	Entry() Attributes

	// Err 返回迭代过程中遇到的第一个错误
	Err() error
}
