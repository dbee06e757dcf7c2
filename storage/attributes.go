package storage

import (
	"path"
	"time"
)

// Attributes 列表条目属性，只有文件和目录两种形态，
// 消费方通过IsDir区分后做类型断言取得具体类型。
type Attributes interface {
	// Path 返回条目的虚拟路径（已剥离根前缀）
	Path() string

	// IsDir 判断是否为目录条目
	IsDir() bool
}

// FileAttributes 文件条目属性
type FileAttributes struct {
	// FilePath 文件路径
	FilePath string

	// FileSize 文件大小（字节），远端未返回时为nil
	FileSize *int64

	// ModTime 最后修改时间，远端未返回时为nil
	ModTime *time.Time

	// ContentType 文件MIME类型，远端未返回时为空
	ContentType string

	// FileVisibility 文件可见性，未探测时为空
	FileVisibility string

	// Extra 附加元数据
	Extra ExtraMetadata
}

// Path 实现Attributes接口
func (f FileAttributes) Path() string {
	return f.FilePath
}

// IsDir 实现Attributes接口
func (f FileAttributes) IsDir() bool {
	return false
}

// Name 返回不含路径的文件名
func (f FileAttributes) Name() string {
	return path.Base(f.FilePath)
}

// DirectoryAttributes 目录条目属性，目录只有路径（结尾分隔符已剥离）
type DirectoryAttributes struct {
	// DirPath 目录路径
	DirPath string
}

// Path 实现Attributes接口
func (d DirectoryAttributes) Path() string {
	return d.DirPath
}

// IsDir 实现Attributes接口
func (d DirectoryAttributes) IsDir() bool {
	return true
}

// MetadataField 附加元数据字段名，取值固定为以下枚举
type MetadataField string

// 附加元数据字段枚举
const (
	FieldStorageClass MetadataField = "StorageClass"
	FieldETag         MetadataField = "ETag"
	FieldVersionID    MetadataField = "VersionId"
	FieldMetadata     MetadataField = "Metadata"
)

// ExtraMetadataFields 附加元数据字段的固定提取顺序
var ExtraMetadataFields = []MetadataField{
	FieldStorageClass,
	FieldETag,
	FieldVersionID,
	FieldMetadata,
}

// MetadataEntry 单个附加元数据项
type MetadataEntry struct {
	Field MetadataField
	Value interface{}
}

// ExtraMetadata 附加元数据，按ExtraMetadataFields的顺序保存，
// 仅包含远端实际返回且非空的字段。
type ExtraMetadata []MetadataEntry

// Get 按字段名查找元数据值，第二个返回值表示字段是否存在
func (e ExtraMetadata) Get(field MetadataField) (interface{}, bool) {
	for _, entry := range e {
		if entry.Field == field {
			return entry.Value, true
		}
	}
	return nil, false
}

// Has 判断字段是否存在
func (e ExtraMetadata) Has(field MetadataField) bool {
	_, ok := e.Get(field)
	return ok
}
