// Package obs 提供基于华为云OBS的文件存储驱动。
//
// 驱动把抽象文件操作映射到OBS的对象操作上：虚拟路径经根前缀
// 映射为对象Key，目录以带结尾分隔符的零字节占位对象模拟，
// 可见性与对象ACL双向转换。每个公开操作要么返回完整结果，
// 要么返回唯一对应类别的*storage.StorageError，不产生未分类错误。
//
// 取消与超时不在本层实现，由SDK客户端的传输配置承担。
package obs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// FileSystem 华为云OBS文件存储系统
type FileSystem struct {
	client   obsAPI
	config   Config
	prefixer pathPrefixer
	mapper   metadataMapper
}

var (
	_ storage.FileSystem = (*FileSystem)(nil)
	_ storage.Appendable = (*FileSystem)(nil)
)

// New 创建华为云OBS文件存储系统
func New(cfg Config) (*FileSystem, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("obs: bucket不能为空")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("obs: endpoint不能为空")
	}

	client, err := newObsClient(cfg)
	if err != nil {
		return nil, err
	}
	return newWithClient(&sdkClient{client: client}, cfg), nil
}

// Resolve 从磁盘配置映射创建OBS驱动，供存储管理器按驱动类型解析
func Resolve(disk storage.DiskConfig) (*FileSystem, error) {
	return New(ConfigFromDisk(disk))
}

// newWithClient 以指定客户端创建文件系统，测试入口
func newWithClient(client obsAPI, cfg Config) *FileSystem {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 1000
	}
	if cfg.DefaultVisibility == "" {
		cfg.DefaultVisibility = storage.VisibilityPrivate
	}

	prefixer := newPathPrefixer(cfg.Prefix)
	return &FileSystem{
		client:   client,
		config:   cfg,
		prefixer: prefixer,
		mapper:   metadataMapper{prefixer: prefixer},
	}
}

// Close 关闭底层客户端
func (f *FileSystem) Close() {
	f.client.Close()
}

// Exists 实现storage.FileSystem接口。
// 元数据探测返回404视为文件不存在，不作为错误。
func (f *FileSystem) Exists(ctx context.Context, path string) (bool, error) {
	input := &obs.GetObjectMetadataInput{
		Bucket: f.config.Bucket,
		Key:    f.prefixer.prefixPath(path),
	}

	if _, err := f.client.GetObjectMetadata(input); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return false, nil
		}
		return false, &storage.StorageError{
			Kind: storage.FailureExistenceCheck, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return true, nil
}

// DirectoryExists 实现storage.FileSystem接口。
// 以max-keys=1列举目录前缀，Contents或CommonPrefixes任一非空即存在。
// 仅有零字节占位对象（无真实子项）同样判定为存在。
func (f *FileSystem) DirectoryExists(ctx context.Context, path string) (bool, error) {
	input := &obs.ListObjectsInput{Bucket: f.config.Bucket}
	input.Prefix = f.prefixer.prefixDirectoryPath(path)
	input.Delimiter = "/"
	input.MaxKeys = 1

	output, err := f.client.ListObjects(input)
	if err != nil {
		return false, &storage.StorageError{
			Kind: storage.FailureDirectoryExistenceCheck, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return len(output.Contents) > 0 || len(output.CommonPrefixes) > 0, nil
}

// Write 实现storage.FileSystem接口。
// 未显式指定MIME类型且内容非空时自动探测。
func (f *FileSystem) Write(ctx context.Context, path string, content []byte, options ...storage.WriteOption) error {
	opts := f.writeOptions(options...)
	if opts.MimeType == "" && len(content) > 0 {
		opts.MimeType = storage.DetectMimeType(path, content)
	}

	input := &obs.PutObjectInput{}
	input.Bucket = f.config.Bucket
	input.Key = f.prefixer.prefixPath(path)
	applyObjectOptions(&input.ObjectOperationInput, opts)
	applyContentOptions(&input.PutObjectBasicInput, opts)
	input.ContentLength = int64(len(content))
	input.Body = bytes.NewReader(content)

	if _, err := f.client.PutObject(input); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureWrite, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// WriteStream 实现storage.FileSystem接口
func (f *FileSystem) WriteStream(ctx context.Context, path string, content io.Reader, options ...storage.WriteOption) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return &storage.StorageError{Kind: storage.FailureWrite, Path: path, Err: err}
	}
	return f.Write(ctx, path, data, options...)
}

// Read 实现storage.FileSystem接口
func (f *FileSystem) Read(ctx context.Context, path string) ([]byte, error) {
	body, err := f.ReadStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &storage.StorageError{Kind: storage.FailureRead, Path: path, Err: err}
	}
	return data, nil
}

// ReadStream 实现storage.FileSystem接口，调用方负责关闭返回的流
func (f *FileSystem) ReadStream(ctx context.Context, path string) (io.ReadCloser, error) {
	input := &obs.GetObjectInput{}
	input.Bucket = f.config.Bucket
	input.Key = f.prefixer.prefixPath(path)

	output, err := f.client.GetObject(input)
	if err != nil {
		return nil, &storage.StorageError{
			Kind: storage.FailureRead, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return output.Body, nil
}

// Delete 实现storage.FileSystem接口
func (f *FileSystem) Delete(ctx context.Context, path string) error {
	input := &obs.DeleteObjectInput{
		Bucket: f.config.Bucket,
		Key:    f.prefixer.prefixPath(path),
	}

	if _, err := f.client.DeleteObject(input); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureDelete, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// DeleteDirectory 实现storage.FileSystem接口。
// 枚举目录下全部后代后发起一次批量删除，批量删除不保证原子性。
func (f *FileSystem) DeleteDirectory(ctx context.Context, path string) error {
	deleter := treeDeleter{
		client:   f.client,
		bucket:   f.config.Bucket,
		pageSize: f.config.PageSize,
		mapper:   f.mapper,
	}

	if err := deleter.deleteTree(ctx, f.prefixer.prefixDirectoryPath(path)); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureDelete, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// CreateDirectory 实现storage.FileSystem接口。
// 写入一个Key以分隔符结尾的零字节占位对象。
func (f *FileSystem) CreateDirectory(ctx context.Context, path string, options ...storage.WriteOption) error {
	opts := f.writeOptions(options...)

	input := &obs.PutObjectInput{}
	input.Bucket = f.config.Bucket
	input.Key = f.prefixer.prefixDirectoryPath(path)
	applyObjectOptions(&input.ObjectOperationInput, opts)
	input.ContentType = "application/x-directory"
	input.ContentLength = 0
	input.Body = bytes.NewReader(nil)

	if _, err := f.client.PutObject(input); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureCreateDirectory, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// SetVisibility 实现storage.FileSystem接口
func (f *FileSystem) SetVisibility(ctx context.Context, path, visibility string) error {
	input := &obs.SetObjectAclInput{
		Bucket: f.config.Bucket,
		Key:    f.prefixer.prefixPath(path),
		ACL:    visibilityToACL(visibility),
	}

	if _, err := f.client.SetObjectAcl(input); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureSetVisibility, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// Visibility 实现storage.FileSystem接口。
// 存在授予AllUsers组读权限的ACL条目即为public，否则为private。
func (f *FileSystem) Visibility(ctx context.Context, path string) (string, error) {
	input := &obs.GetObjectAclInput{
		Bucket: f.config.Bucket,
		Key:    f.prefixer.prefixPath(path),
	}

	output, err := f.client.GetObjectAcl(input)
	if err != nil {
		return "", &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return grantsToVisibility(output.Grants), nil
}

// MimeType 实现storage.FileSystem接口
func (f *FileSystem) MimeType(ctx context.Context, path string) (string, error) {
	attrs, err := f.metadata(ctx, path)
	if err != nil {
		return "", err
	}
	if attrs.ContentType == "" {
		return "", &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: "mime type not available",
		}
	}
	return attrs.ContentType, nil
}

// LastModified 实现storage.FileSystem接口
func (f *FileSystem) LastModified(ctx context.Context, path string) (time.Time, error) {
	attrs, err := f.metadata(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	if attrs.ModTime == nil {
		return time.Time{}, &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: "last modified not available",
		}
	}
	return *attrs.ModTime, nil
}

// Size 实现storage.FileSystem接口
func (f *FileSystem) Size(ctx context.Context, path string) (int64, error) {
	attrs, err := f.metadata(ctx, path)
	if err != nil {
		return 0, err
	}
	if attrs.FileSize == nil {
		return 0, &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: "file size not available",
		}
	}
	return *attrs.FileSize, nil
}

// ListContents 实现storage.FileSystem接口。
// deep为false时以"/"为分隔符列出直接子项，公共前缀作为目录条目；
// deep为true时不加分隔符平铺列出全部后代。
func (f *FileSystem) ListContents(ctx context.Context, path string, deep bool) storage.ContentIterator {
	delimiter := "/"
	if deep {
		delimiter = ""
	}

	wrap := func(err error) error {
		return &storage.StorageError{
			Kind: storage.FailureListContents, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return newContentIterator(ctx, f.client, f.config.Bucket,
		f.prefixer.prefixDirectoryPath(path), f.config.PageSize,
		f.mapper, delimiter, false, wrap)
}

// Copy 实现storage.FileSystem接口。
// 先读取源文件可见性，再以服务端复制写入目标并重放该可见性；
// 显式传入的可见性选项优先于源文件可见性。
func (f *FileSystem) Copy(ctx context.Context, source, destination string, options ...storage.WriteOption) error {
	opts := storage.DefaultWriteOptions().Apply(options...)

	acl := obs.AclType(opts.ACL)
	if acl == "" && opts.Visibility != "" {
		acl = visibilityToACL(opts.Visibility)
	}
	if acl == "" {
		visibility, err := f.Visibility(ctx, source)
		if err != nil {
			return &storage.StorageError{
				Kind: storage.FailureCopy, From: source, To: destination, Err: err,
			}
		}
		acl = visibilityToACL(visibility)
	}

	input := &obs.CopyObjectInput{}
	input.Bucket = f.config.Bucket
	input.Key = f.prefixer.prefixPath(destination)
	input.CopySourceBucket = f.config.Bucket
	input.CopySourceKey = f.prefixer.prefixPath(source)
	input.ACL = acl
	input.MetadataDirective = obs.CopyMetadata
	if strings.EqualFold(opts.MetadataDirective, string(obs.ReplaceMetadata)) {
		input.MetadataDirective = obs.ReplaceMetadata
		input.ContentType = opts.MimeType
		input.CacheControl = opts.CacheControl
		input.ContentDisposition = opts.ContentDisposition
		input.ContentEncoding = opts.ContentEncoding
		input.ContentLanguage = opts.ContentLanguage
		input.Metadata = opts.Metadata
	}

	if _, err := f.client.CopyObject(input); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureCopy, From: source, To: destination,
			Message: remoteMessage(err), Err: err,
		}
	}
	return nil
}

// Move 实现storage.FileSystem接口。
// 复制后删除源文件；任一步失败整体报告为移动失败，
// 已复制的目标不回滚。
func (f *FileSystem) Move(ctx context.Context, source, destination string, options ...storage.WriteOption) error {
	if err := f.Copy(ctx, source, destination, options...); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureMove, From: source, To: destination, Err: err,
		}
	}
	if err := f.Delete(ctx, source); err != nil {
		return &storage.StorageError{
			Kind: storage.FailureMove, From: source, To: destination, Err: err,
		}
	}
	return nil
}

// AppendObject 实现storage.Appendable接口，
// 从position位置追加内容，返回下一次追加位置
func (f *FileSystem) AppendObject(ctx context.Context, path string, content []byte, position int64, options ...storage.WriteOption) (int64, error) {
	opts := f.writeOptions(options...)
	if opts.MimeType == "" && len(content) > 0 {
		opts.MimeType = storage.DetectMimeType(path, content)
	}
	return f.appendReader(path, bytes.NewReader(content), int64(len(content)), position, opts)
}

// AppendFile 实现storage.Appendable接口，
// 从position位置追加本地文件内容，返回下一次追加位置
func (f *FileSystem) AppendFile(ctx context.Context, path string, sourceFile string, position int64, options ...storage.WriteOption) (int64, error) {
	file, err := os.Open(sourceFile)
	if err != nil {
		return 0, &storage.StorageError{Kind: storage.FailureWrite, Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, &storage.StorageError{Kind: storage.FailureWrite, Path: path, Err: err}
	}

	opts := f.writeOptions(options...)
	if opts.MimeType == "" && info.Size() > 0 {
		opts.MimeType = storage.DetectMimeTypeFromFile(sourceFile)
	}
	return f.appendReader(path, file, info.Size(), position, opts)
}

// appendReader 发起位置追加写入
func (f *FileSystem) appendReader(path string, body io.Reader, length, position int64, opts *storage.WriteOptions) (int64, error) {
	input := &obs.AppendObjectInput{}
	input.Bucket = f.config.Bucket
	input.Key = f.prefixer.prefixPath(path)
	applyObjectOptions(&input.ObjectOperationInput, opts)
	applyContentOptions(&input.PutObjectBasicInput, opts)
	input.ContentLength = length
	input.Body = body
	input.Position = position

	output, err := f.client.AppendObject(input)
	if err != nil {
		return 0, &storage.StorageError{
			Kind: storage.FailureWrite, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return output.NextAppendPosition, nil
}

// URL 实现storage.FileSystem接口。
// 纯字符串拼接，不发起远端调用。
func (f *FileSystem) URL(ctx context.Context, path string) string {
	key := f.prefixer.prefixPath(path)
	scheme := "https"
	if !f.config.UseSSL {
		scheme = "http"
	}

	if f.config.Domain != "" {
		domain := strings.TrimSuffix(f.config.Domain, "/")
		if strings.Contains(domain, "://") {
			return domain + "/" + key
		}
		return fmt.Sprintf("%s://%s/%s", scheme, domain, key)
	}

	if f.config.PathStyle {
		return fmt.Sprintf("%s://%s/%s/%s", scheme, f.config.Endpoint, f.config.Bucket, key)
	}
	return fmt.Sprintf("%s://%s.%s/%s", scheme, f.config.Bucket, f.config.Endpoint, key)
}

// TemporaryURL 实现storage.FileSystem接口。
// 有效期取now到expiresAt的秒数；配置了公开域名且与签名端点
// 不一致时，签名URL中的桶+端点主机被改写为公开域名。
func (f *FileSystem) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) (string, error) {
	expires := int(time.Until(expiresAt).Seconds())
	if expires <= 0 {
		return "", &storage.StorageError{
			Kind: storage.FailureTemporaryURL, Path: path,
			Message: "expiration must be in the future",
		}
	}

	input := &obs.CreateSignedUrlInput{
		Method:  obs.HTTP_GET,
		Bucket:  f.config.Bucket,
		Key:     f.prefixer.prefixPath(path),
		Expires: expires,
	}

	output, err := f.client.CreateSignedUrl(input)
	if err != nil {
		return "", &storage.StorageError{
			Kind: storage.FailureTemporaryURL, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}

	signed := output.SignedUrl
	if f.config.Domain != "" {
		internalHost := f.config.Bucket + "." + f.config.Endpoint
		if f.config.PathStyle {
			internalHost = f.config.Endpoint + "/" + f.config.Bucket
		}
		domain := strings.TrimSuffix(f.config.Domain, "/")
		if idx := strings.Index(domain, "://"); idx >= 0 {
			domain = domain[idx+3:]
		}
		if internalHost != domain {
			signed = strings.Replace(signed, internalHost, domain, 1)
		}
	}
	return signed, nil
}

// Checksum 实现storage.FileSystem接口，
// md5/etag算法返回去引号后的ETag
func (f *FileSystem) Checksum(ctx context.Context, path, algorithm string) (string, error) {
	switch strings.ToLower(algorithm) {
	case "md5", "etag":
	default:
		return "", &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: fmt.Sprintf("unsupported checksum algorithm: %s", algorithm),
		}
	}

	attrs, err := f.metadata(ctx, path)
	if err != nil {
		return "", err
	}
	etag, ok := attrs.Extra.Get(storage.FieldETag)
	if !ok {
		return "", &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: "etag not available",
		}
	}
	return etag.(string), nil
}

// metadata 发起元数据探测并映射为文件属性
func (f *FileSystem) metadata(ctx context.Context, path string) (storage.FileAttributes, error) {
	input := &obs.GetObjectMetadataInput{
		Bucket: f.config.Bucket,
		Key:    f.prefixer.prefixPath(path),
	}

	output, err := f.client.GetObjectMetadata(input)
	if err != nil {
		return storage.FileAttributes{}, &storage.StorageError{
			Kind: storage.FailureRetrieveMetadata, Path: path,
			Message: remoteMessage(err), Err: err,
		}
	}
	return f.mapper.mapObjectMetadata(path, output), nil
}

// writeOptions 以驱动默认可见性为底应用调用方选项
func (f *FileSystem) writeOptions(options ...storage.WriteOption) *storage.WriteOptions {
	opts := storage.DefaultWriteOptions()
	opts.Visibility = f.config.DefaultVisibility
	return opts.Apply(options...)
}

// applyObjectOptions 把写入选项映射到对象操作输入
func applyObjectOptions(input *obs.ObjectOperationInput, opts *storage.WriteOptions) {
	if opts.ACL != "" {
		input.ACL = obs.AclType(opts.ACL)
	} else if opts.Visibility != "" {
		input.ACL = visibilityToACL(opts.Visibility)
	}
	if len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}
	if opts.Expires > 0 {
		input.Expires = opts.Expires
	}
	if opts.SseKmsKeyID != "" {
		input.SseHeader = obs.SseKmsHeader{Encryption: "kms", Key: opts.SseKmsKeyID}
	}
}

// applyContentOptions 把内容相关选项映射到上传输入
func applyContentOptions(input *obs.PutObjectBasicInput, opts *storage.WriteOptions) {
	input.ContentType = opts.MimeType
	if opts.CacheControl != "" {
		input.CacheControl = opts.CacheControl
	}
	if opts.ContentDisposition != "" {
		input.ContentDisposition = opts.ContentDisposition
	}
	if opts.ContentEncoding != "" {
		input.ContentEncoding = opts.ContentEncoding
	}
}
