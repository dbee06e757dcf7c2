package obs

import (
	"context"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

// treeDeleter 树删除引擎：枚举前缀下全部后代并发起一次批量删除
type treeDeleter struct {
	client   obsAPI
	bucket   string
	pageSize int
	mapper   metadataMapper
}

// deleteTree 删除dirKey（带结尾分隔符的目录Key）下的全部后代
// 及目录标记对象本身。批量删除不保证原子性：调用中途失败时
// 已删除的Key不会恢复，错误按位置报告给调用方。
func (d treeDeleter) deleteTree(ctx context.Context, dirKey string) error {
	// 平铺枚举全部后代，不加分隔符
	it := newContentIterator(ctx, d.client, d.bucket, dirKey, d.pageSize, d.mapper, "", false, nil)

	keys := make([]string, 0)
	for it.Next() {
		keys = append(keys, it.RawKey())
	}
	if err := it.Err(); err != nil {
		return err
	}

	// 后代在前，目录标记Key殿后
	keys = append(keys, dirKey)

	objects := make([]obs.ObjectToDelete, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, obs.ObjectToDelete{Key: key})
	}

	input := &obs.DeleteObjectsInput{
		Bucket:  d.bucket,
		Quiet:   true,
		Objects: objects,
	}
	if _, err := d.client.DeleteObjects(input); err != nil {
		return err
	}
	return nil
}
