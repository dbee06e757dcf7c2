package obs

import (
	"strings"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// metadataMapper 把OBS返回的原始对象描述符映射为属性记录
type metadataMapper struct {
	prefixer pathPrefixer
}

// mapContent 映射列举返回的内容条目。Key以分隔符结尾的条目
// 无论大小如何，一律按目录处理。
func (m metadataMapper) mapContent(content obs.Content) storage.Attributes {
	p := m.prefixer.stripPrefix(content.Key)
	if p == "" {
		p = "/"
	}

	if strings.HasSuffix(p, "/") {
		return storage.DirectoryAttributes{DirPath: strings.TrimSuffix(p, "/")}
	}

	size := content.Size
	attrs := storage.FileAttributes{
		FilePath: p,
		FileSize: &size,
		Extra:    extraFromContent(content),
	}
	if !content.LastModified.IsZero() {
		modTime := content.LastModified
		attrs.ModTime = &modTime
	}
	return attrs
}

// mapCommonPrefix 映射列举返回的公共前缀（虚拟子目录）
func (m metadataMapper) mapCommonPrefix(prefix string) storage.DirectoryAttributes {
	p := strings.TrimSuffix(m.prefixer.stripPrefix(prefix), "/")
	if p == "" {
		p = "/"
	}
	return storage.DirectoryAttributes{DirPath: p}
}

// mapObjectMetadata 映射元数据探测结果为文件属性，
// 路径由调用方显式给出
func (m metadataMapper) mapObjectMetadata(path string, output *obs.GetObjectMetadataOutput) storage.FileAttributes {
	size := output.ContentLength
	attrs := storage.FileAttributes{
		FilePath:    path,
		FileSize:    &size,
		ContentType: output.ContentType,
		Extra:       extraFromMetadata(output),
	}
	if !output.LastModified.IsZero() {
		modTime := output.LastModified
		attrs.ModTime = &modTime
	}
	return attrs
}

// extraFromContent 从列举条目提取附加元数据，
// 仅包含非空字段，顺序固定
func extraFromContent(content obs.Content) storage.ExtraMetadata {
	extra := storage.ExtraMetadata{}
	if content.StorageClass != "" {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldStorageClass, Value: string(content.StorageClass)})
	}
	if content.ETag != "" {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldETag, Value: trimETag(content.ETag)})
	}
	return extra
}

// extraFromMetadata 从元数据探测结果提取附加元数据，
// 仅包含非空字段，顺序固定
func extraFromMetadata(output *obs.GetObjectMetadataOutput) storage.ExtraMetadata {
	extra := storage.ExtraMetadata{}
	if output.StorageClass != "" {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldStorageClass, Value: string(output.StorageClass)})
	}
	if output.ETag != "" {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldETag, Value: trimETag(output.ETag)})
	}
	if output.VersionId != "" {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldVersionID, Value: output.VersionId})
	}
	if len(output.Metadata) > 0 {
		extra = append(extra, storage.MetadataEntry{Field: storage.FieldMetadata, Value: output.Metadata})
	}
	return extra
}

// trimETag 去除ETag两端的引号
func trimETag(etag string) string {
	return strings.Trim(etag, "\"")
}
