package obs

import (
	"context"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// contentIterator 分页列举迭代器，实现storage.ContentIterator。
// 每次远端调用是一个挂起点：条目逐页拉取，整个序列不会
// 一次性驻留内存。分页严格串行，迭代器内部不启动goroutine。
type contentIterator struct {
	ctx      context.Context
	client   obsAPI
	bucket   string
	pageSize int
	mapper   metadataMapper

	// delimiter 为"/"时按层级分组列举，为空时平铺列举全部后代
	delimiter string

	// recursive 为true时对每个公共前缀立即做深度优先下钻
	// （仅在delimiter非空时有意义）
	recursive bool

	// wrap 把远端错误包装为操作对应的失败类别
	wrap func(error) error

	stack []*listFrame
	entry storage.Attributes
	raw   string
	err   error
}

// listFrame 单个前缀的分页状态，递归下钻时压栈
type listFrame struct {
	prefix    string
	marker    string
	fetched   bool
	truncated bool
	pending   []pendingItem
}

// pendingItem 当前页中尚未产出的条目；descend非空表示
// 在此处下钻一个子前缀
type pendingItem struct {
	attrs   storage.Attributes
	rawKey  string
	descend string
}

// newContentIterator 创建列举迭代器，prefix为已加根前缀的Key前缀
func newContentIterator(ctx context.Context, client obsAPI, bucket, prefix string, pageSize int, mapper metadataMapper, delimiter string, recursive bool, wrap func(error) error) *contentIterator {
	if wrap == nil {
		wrap = func(err error) error { return err }
	}
	return &contentIterator{
		ctx:       ctx,
		client:    client,
		bucket:    bucket,
		pageSize:  pageSize,
		mapper:    mapper,
		delimiter: delimiter,
		recursive: recursive,
		wrap:      wrap,
		stack:     []*listFrame{{prefix: prefix}},
	}
}

// Next 实现storage.ContentIterator接口
func (it *contentIterator) Next() bool {
	if it.err != nil {
		return false
	}

	for {
		if len(it.stack) == 0 {
			return false
		}
		frame := it.stack[len(it.stack)-1]

		if len(frame.pending) > 0 {
			item := frame.pending[0]
			frame.pending = frame.pending[1:]

			if item.descend != "" {
				// 深度优先：先钻完子前缀，再继续当前页剩余条目
				it.stack = append(it.stack, &listFrame{prefix: item.descend})
				continue
			}

			it.entry = item.attrs
			it.raw = item.rawKey
			return true
		}

		if !frame.fetched || frame.truncated {
			if err := it.fetch(frame); err != nil {
				it.err = it.wrap(err)
				return false
			}
			continue
		}

		// 当前前缀列举完毕
		it.stack = it.stack[:len(it.stack)-1]
	}
}

// Entry 实现storage.ContentIterator接口
func (it *contentIterator) Entry() storage.Attributes {
	return it.entry
}

// RawKey 返回当前条目的存储侧Key（目录条目带结尾分隔符），
// 供树删除引擎收集删除批次使用
func (it *contentIterator) RawKey() string {
	return it.raw
}

// Err 实现storage.ContentIterator接口
func (it *contentIterator) Err() error {
	return it.err
}

// fetch 拉取一页列举结果并填充frame的待产出队列
func (it *contentIterator) fetch(frame *listFrame) error {
	if err := it.ctx.Err(); err != nil {
		return err
	}

	input := &obs.ListObjectsInput{
		Bucket: it.bucket,
		Marker: frame.marker,
	}
	input.Prefix = frame.prefix
	input.Delimiter = it.delimiter
	input.MaxKeys = it.pageSize

	output, err := it.client.ListObjects(input)
	if err != nil {
		return err
	}

	frame.fetched = true
	frame.truncated = output.IsTruncated
	frame.marker = output.NextMarker
	if frame.truncated && frame.marker == "" && len(output.Contents) > 0 {
		// 无分隔符列举时OBS不回填NextMarker，用本页最后一个Key续页
		frame.marker = output.Contents[len(output.Contents)-1].Key
	}

	pending := make([]pendingItem, 0, len(output.CommonPrefixes)+len(output.Contents))
	for _, prefix := range output.CommonPrefixes {
		pending = append(pending, pendingItem{
			attrs:  it.mapper.mapCommonPrefix(prefix),
			rawKey: prefix,
		})
		if it.recursive {
			pending = append(pending, pendingItem{descend: prefix})
		}
	}
	for _, content := range output.Contents {
		// 跳过前缀自身的零字节目录占位对象
		if content.Key == frame.prefix && content.Size == 0 {
			continue
		}
		pending = append(pending, pendingItem{
			attrs:  it.mapper.mapContent(content),
			rawKey: content.Key,
		})
	}
	frame.pending = pending
	return nil
}
