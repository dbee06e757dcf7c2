package obs

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

// fakeObject 内存中的对象
type fakeObject struct {
	data         []byte
	contentType  string
	acl          obs.AclType
	metadata     map[string]string
	lastModified time.Time
	storageClass obs.StorageClassType
}

func (o *fakeObject) etag() string {
	sum := md5.Sum(o.data)
	return hex.EncodeToString(sum[:])
}

// fakeClient 内存版OBS客户端，模拟列举分页、分组与ACL语义
type fakeClient struct {
	endpoint string
	objects  map[string]*fakeObject

	// 调用计数与删除批次记录，供断言使用
	listCalls     int
	deleteBatches [][]string

	// failures 按方法名注入错误
	failures map[string]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		endpoint: "obs.cn-north-1.myhuaweicloud.com",
		objects:  make(map[string]*fakeObject),
		failures: make(map[string]error),
	}
}

func (c *fakeClient) failWith(method string, err error) {
	c.failures[method] = err
}

func notFoundError() obs.ObsError {
	return obs.ObsError{
		BaseModel: obs.BaseModel{StatusCode: http.StatusNotFound},
		Code:      "NoSuchKey",
		Message:   "The specified key does not exist.",
	}
}

func (c *fakeClient) putRaw(key string, data []byte, contentType string, acl obs.AclType) {
	if acl == "" {
		acl = obs.AclPrivate
	}
	c.objects[key] = &fakeObject{
		data:         data,
		contentType:  contentType,
		acl:          acl,
		lastModified: time.Now().UTC().Truncate(time.Second),
	}
}

func (c *fakeClient) PutObject(input *obs.PutObjectInput) (*obs.PutObjectOutput, error) {
	if err := c.failures["PutObject"]; err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	acl := input.ACL
	if acl == "" {
		acl = obs.AclPrivate
	}
	c.objects[input.Key] = &fakeObject{
		data:         data,
		contentType:  input.ContentType,
		acl:          acl,
		metadata:     input.Metadata,
		lastModified: time.Now().UTC().Truncate(time.Second),
	}
	return &obs.PutObjectOutput{}, nil
}

func (c *fakeClient) GetObject(input *obs.GetObjectInput) (*obs.GetObjectOutput, error) {
	if err := c.failures["GetObject"]; err != nil {
		return nil, err
	}

	object, ok := c.objects[input.Key]
	if !ok {
		return nil, notFoundError()
	}
	output := &obs.GetObjectOutput{}
	output.ContentLength = int64(len(object.data))
	output.ContentType = object.contentType
	output.ETag = `"` + object.etag() + `"`
	output.LastModified = object.lastModified
	output.Body = io.NopCloser(bytes.NewReader(object.data))
	return output, nil
}

func (c *fakeClient) GetObjectMetadata(input *obs.GetObjectMetadataInput) (*obs.GetObjectMetadataOutput, error) {
	if err := c.failures["GetObjectMetadata"]; err != nil {
		return nil, err
	}

	object, ok := c.objects[input.Key]
	if !ok {
		return nil, notFoundError()
	}
	output := &obs.GetObjectMetadataOutput{}
	output.ContentLength = int64(len(object.data))
	output.ContentType = object.contentType
	output.ETag = `"` + object.etag() + `"`
	output.LastModified = object.lastModified
	output.StorageClass = object.storageClass
	output.Metadata = object.metadata
	return output, nil
}

func (c *fakeClient) DeleteObject(input *obs.DeleteObjectInput) (*obs.DeleteObjectOutput, error) {
	if err := c.failures["DeleteObject"]; err != nil {
		return nil, err
	}

	delete(c.objects, input.Key)
	return &obs.DeleteObjectOutput{}, nil
}

func (c *fakeClient) DeleteObjects(input *obs.DeleteObjectsInput) (*obs.DeleteObjectsOutput, error) {
	if err := c.failures["DeleteObjects"]; err != nil {
		return nil, err
	}

	batch := make([]string, 0, len(input.Objects))
	for _, object := range input.Objects {
		batch = append(batch, object.Key)
		delete(c.objects, object.Key)
	}
	c.deleteBatches = append(c.deleteBatches, batch)
	return &obs.DeleteObjectsOutput{}, nil
}

func (c *fakeClient) ListObjects(input *obs.ListObjectsInput) (*obs.ListObjectsOutput, error) {
	if err := c.failures["ListObjects"]; err != nil {
		return nil, err
	}
	c.listCalls++

	maxKeys := input.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 1000
	}

	keys := make([]string, 0, len(c.objects))
	for key := range c.objects {
		if strings.HasPrefix(key, input.Prefix) && key > input.Marker {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var contents []obs.Content
	var prefixes []string
	seen := make(map[string]bool)
	truncated := false
	nextMarker := ""

	for _, key := range keys {
		if len(contents)+len(prefixes) >= maxKeys {
			truncated = true
			break
		}
		rest := key[len(input.Prefix):]
		if input.Delimiter != "" {
			if idx := strings.Index(rest, input.Delimiter); idx >= 0 {
				commonPrefix := input.Prefix + rest[:idx+1]
				if commonPrefix <= input.Marker || seen[commonPrefix] {
					continue
				}
				seen[commonPrefix] = true
				prefixes = append(prefixes, commonPrefix)
				nextMarker = commonPrefix
				continue
			}
		}
		object := c.objects[key]
		contents = append(contents, obs.Content{
			Key:          key,
			Size:         int64(len(object.data)),
			ETag:         `"` + object.etag() + `"`,
			LastModified: object.lastModified,
			StorageClass: object.storageClass,
		})
		nextMarker = key
	}

	output := &obs.ListObjectsOutput{
		Contents:       contents,
		CommonPrefixes: prefixes,
		IsTruncated:    truncated,
	}
	if truncated {
		output.NextMarker = nextMarker
	}
	return output, nil
}

func (c *fakeClient) CopyObject(input *obs.CopyObjectInput) (*obs.CopyObjectOutput, error) {
	if err := c.failures["CopyObject"]; err != nil {
		return nil, err
	}

	source, ok := c.objects[input.CopySourceKey]
	if !ok {
		return nil, notFoundError()
	}
	acl := input.ACL
	if acl == "" {
		acl = obs.AclPrivate
	}
	data := make([]byte, len(source.data))
	copy(data, source.data)
	c.objects[input.Key] = &fakeObject{
		data:         data,
		contentType:  source.contentType,
		acl:          acl,
		metadata:     source.metadata,
		lastModified: time.Now().UTC().Truncate(time.Second),
	}
	return &obs.CopyObjectOutput{}, nil
}

func (c *fakeClient) SetObjectAcl(input *obs.SetObjectAclInput) (*obs.BaseModel, error) {
	if err := c.failures["SetObjectAcl"]; err != nil {
		return nil, err
	}

	object, ok := c.objects[input.Key]
	if !ok {
		return nil, notFoundError()
	}
	object.acl = input.ACL
	return &obs.BaseModel{}, nil
}

func (c *fakeClient) GetObjectAcl(input *obs.GetObjectAclInput) (*obs.GetObjectAclOutput, error) {
	if err := c.failures["GetObjectAcl"]; err != nil {
		return nil, err
	}

	object, ok := c.objects[input.Key]
	if !ok {
		return nil, notFoundError()
	}

	output := &obs.GetObjectAclOutput{}
	output.Grants = []obs.Grant{
		{
			Grantee:    obs.Grantee{Type: obs.GranteeUser, ID: "owner"},
			Permission: obs.PermissionFullControl,
		},
	}
	if object.acl == obs.AclPublicRead || object.acl == obs.AclPublicReadWrite {
		output.Grants = append(output.Grants, obs.Grant{
			Grantee:    obs.Grantee{Type: obs.GranteeGroup, URI: obs.GroupAllUsers},
			Permission: obs.PermissionRead,
		})
	}
	return output, nil
}

func (c *fakeClient) AppendObject(input *obs.AppendObjectInput) (*obs.AppendObjectOutput, error) {
	if err := c.failures["AppendObject"]; err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	object, ok := c.objects[input.Key]
	if !ok {
		if input.Position != 0 {
			return nil, obs.ObsError{
				BaseModel: obs.BaseModel{StatusCode: http.StatusConflict},
				Code:      "PositionNotEqualToLength",
			}
		}
		acl := input.ACL
		if acl == "" {
			acl = obs.AclPrivate
		}
		object = &fakeObject{contentType: input.ContentType, acl: acl}
		c.objects[input.Key] = object
	}
	if input.Position != int64(len(object.data)) {
		return nil, obs.ObsError{
			BaseModel: obs.BaseModel{StatusCode: http.StatusConflict},
			Code:      "PositionNotEqualToLength",
		}
	}
	object.data = append(object.data, data...)
	object.lastModified = time.Now().UTC().Truncate(time.Second)

	output := &obs.AppendObjectOutput{}
	output.NextAppendPosition = int64(len(object.data))
	return output, nil
}

func (c *fakeClient) CreateSignedUrl(input *obs.CreateSignedUrlInput) (*obs.CreateSignedUrlOutput, error) {
	if err := c.failures["CreateSignedUrl"]; err != nil {
		return nil, err
	}

	signed := fmt.Sprintf("https://%s.%s/%s?Expires=%d&Signature=fake",
		input.Bucket, c.endpoint, input.Key, input.Expires)
	return &obs.CreateSignedUrlOutput{SignedUrl: signed}, nil
}

func (c *fakeClient) Close() {}
