package obs

import (
	"fmt"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

// obsAPI 适配器依赖的OBS客户端操作子集。
// *obs.ObsClient天然满足该接口；测试中以内存实现替代。
// 认证签名、传输层重试与超时全部由SDK客户端承担，
// 适配器本身不做重试。
type obsAPI interface {
	PutObject(input *obs.PutObjectInput) (*obs.PutObjectOutput, error)
	GetObject(input *obs.GetObjectInput) (*obs.GetObjectOutput, error)
	GetObjectMetadata(input *obs.GetObjectMetadataInput) (*obs.GetObjectMetadataOutput, error)
	DeleteObject(input *obs.DeleteObjectInput) (*obs.DeleteObjectOutput, error)
	DeleteObjects(input *obs.DeleteObjectsInput) (*obs.DeleteObjectsOutput, error)
	ListObjects(input *obs.ListObjectsInput) (*obs.ListObjectsOutput, error)
	CopyObject(input *obs.CopyObjectInput) (*obs.CopyObjectOutput, error)
	SetObjectAcl(input *obs.SetObjectAclInput) (*obs.BaseModel, error)
	GetObjectAcl(input *obs.GetObjectAclInput) (*obs.GetObjectAclOutput, error)
	AppendObject(input *obs.AppendObjectInput) (*obs.AppendObjectOutput, error)
	CreateSignedUrl(input *obs.CreateSignedUrlInput) (*obs.CreateSignedUrlOutput, error)
	Close()
}

// sdkClient 包装*obs.ObsClient以满足obsAPI：SDK方法带有
// 不可导出的变参extensionOptions，无法被外部接口直接匹配，
// 此处逐一转发调用，不附加任何行为。
type sdkClient struct {
	client *obs.ObsClient
}

func (c *sdkClient) PutObject(input *obs.PutObjectInput) (*obs.PutObjectOutput, error) {
	return c.client.PutObject(input)
}

func (c *sdkClient) GetObject(input *obs.GetObjectInput) (*obs.GetObjectOutput, error) {
	return c.client.GetObject(input)
}

func (c *sdkClient) GetObjectMetadata(input *obs.GetObjectMetadataInput) (*obs.GetObjectMetadataOutput, error) {
	return c.client.GetObjectMetadata(input)
}

func (c *sdkClient) DeleteObject(input *obs.DeleteObjectInput) (*obs.DeleteObjectOutput, error) {
	return c.client.DeleteObject(input)
}

func (c *sdkClient) DeleteObjects(input *obs.DeleteObjectsInput) (*obs.DeleteObjectsOutput, error) {
	return c.client.DeleteObjects(input)
}

func (c *sdkClient) ListObjects(input *obs.ListObjectsInput) (*obs.ListObjectsOutput, error) {
	return c.client.ListObjects(input)
}

func (c *sdkClient) CopyObject(input *obs.CopyObjectInput) (*obs.CopyObjectOutput, error) {
	return c.client.CopyObject(input)
}

func (c *sdkClient) SetObjectAcl(input *obs.SetObjectAclInput) (*obs.BaseModel, error) {
	return c.client.SetObjectAcl(input)
}

func (c *sdkClient) GetObjectAcl(input *obs.GetObjectAclInput) (*obs.GetObjectAclOutput, error) {
	return c.client.GetObjectAcl(input)
}

func (c *sdkClient) AppendObject(input *obs.AppendObjectInput) (*obs.AppendObjectOutput, error) {
	return c.client.AppendObject(input)
}

func (c *sdkClient) CreateSignedUrl(input *obs.CreateSignedUrlInput) (*obs.CreateSignedUrlOutput, error) {
	return c.client.CreateSignedUrl(input)
}

func (c *sdkClient) Close() {
	c.client.Close()
}

// newObsClient 创建OBS SDK客户端
func newObsClient(cfg Config) (*obs.ObsClient, error) {
	connectTimeout := int(cfg.ConnectTimeout.Seconds())
	if connectTimeout <= 0 {
		connectTimeout = 30
	}
	socketTimeout := int(cfg.ReadWriteTimeout.Seconds())
	if socketTimeout <= 0 {
		socketTimeout = 60
	}

	client, err := obs.New(
		cfg.AccessKey,
		cfg.SecretKey,
		cfg.Endpoint,
		obs.WithSignature(obs.SignatureObs),
		obs.WithPathStyle(cfg.PathStyle),
		obs.WithConnectTimeout(connectTimeout),
		obs.WithSocketTimeout(socketTimeout),
		obs.WithMaxRetryCount(cfg.MaxRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create obs client: %w", err)
	}
	return client, nil
}

// statusCode 提取OBS错误中的HTTP状态码，非OBS错误返回0
func statusCode(err error) int {
	if obsErr, ok := err.(obs.ObsError); ok {
		return obsErr.StatusCode
	}
	return 0
}

// remoteMessage 提取OBS错误中的远端诊断信息
func remoteMessage(err error) string {
	if obsErr, ok := err.(obs.ObsError); ok {
		if obsErr.Code != "" {
			return fmt.Sprintf("%s: %s", obsErr.Code, obsErr.Message)
		}
		return obsErr.Message
	}
	return ""
}
