package storage

// WriteOption 写入类操作的选项函数
type WriteOption func(*WriteOptions)

// WriteOptions 写入类操作的选项集合。字段为一个封闭集合，
// 与OBS请求头一一对应，未设置的字段回退到驱动级默认值。
type WriteOptions struct {
	// Visibility 文件可见性：public 或 private
	Visibility string

	// ACL 显式ACL值，设置后优先于Visibility
	ACL string

	// MimeType 内容MIME类型，设置后跳过自动探测
	MimeType string

	// CacheControl Cache-Control响应头
	CacheControl string

	// ContentDisposition Content-Disposition响应头
	ContentDisposition string

	// ContentLanguage Content-Language响应头
	ContentLanguage string

	// ContentEncoding Content-Encoding响应头
	ContentEncoding string

	// Expires 对象过期天数，0表示不过期
	Expires int64

	// SseKmsKeyID 服务端KMS加密密钥ID
	SseKmsKeyID string

	// MetadataDirective 复制时的元数据处理指令（COPY或REPLACE）
	MetadataDirective string

	// Metadata 用户自定义元数据
	Metadata map[string]string
}

// DefaultWriteOptions 返回默认的写入选项
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{
		Metadata: make(map[string]string),
	}
}

// Apply 依次应用选项函数
func (o *WriteOptions) Apply(options ...WriteOption) *WriteOptions {
	for _, option := range options {
		option(o)
	}
	return o
}

// WithVisibility 设置文件可见性选项
func WithVisibility(visibility string) WriteOption {
	return func(o *WriteOptions) {
		o.Visibility = visibility
	}
}

// WithACL 设置显式ACL选项
func WithACL(acl string) WriteOption {
	return func(o *WriteOptions) {
		o.ACL = acl
	}
}

// WithMimeType 设置MIME类型选项
func WithMimeType(mimeType string) WriteOption {
	return func(o *WriteOptions) {
		o.MimeType = mimeType
	}
}

// WithCacheControl 设置Cache-Control选项
func WithCacheControl(cacheControl string) WriteOption {
	return func(o *WriteOptions) {
		o.CacheControl = cacheControl
	}
}

// WithContentDisposition 设置Content-Disposition选项
func WithContentDisposition(disposition string) WriteOption {
	return func(o *WriteOptions) {
		o.ContentDisposition = disposition
	}
}

// WithContentLanguage 设置Content-Language选项
func WithContentLanguage(language string) WriteOption {
	return func(o *WriteOptions) {
		o.ContentLanguage = language
	}
}

// WithContentEncoding 设置Content-Encoding选项
func WithContentEncoding(encoding string) WriteOption {
	return func(o *WriteOptions) {
		o.ContentEncoding = encoding
	}
}

// WithExpires 设置对象过期天数选项
func WithExpires(days int64) WriteOption {
	return func(o *WriteOptions) {
		o.Expires = days
	}
}

// WithSseKmsKeyID 设置服务端KMS加密密钥选项
func WithSseKmsKeyID(keyID string) WriteOption {
	return func(o *WriteOptions) {
		o.SseKmsKeyID = keyID
	}
}

// WithMetadataDirective 设置复制时的元数据处理指令选项
func WithMetadataDirective(directive string) WriteOption {
	return func(o *WriteOptions) {
		o.MetadataDirective = directive
	}
}

// WithMetadata 设置用户自定义元数据选项
func WithMetadata(metadata map[string]string) WriteOption {
	return func(o *WriteOptions) {
		o.Metadata = metadata
	}
}
