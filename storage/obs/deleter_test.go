package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t9527332/huawei-obs-storage/storage"
)

func TestDeleteDirectory(t *testing.T) {
	fs, client := newTestFS("root")
	client.putRaw("root/dir/", nil, "application/x-directory", obs.AclPrivate)
	client.putRaw("root/dir/a.txt", []byte("a"), "text/plain", obs.AclPrivate)
	client.putRaw("root/dir/sub/b.txt", []byte("b"), "text/plain", obs.AclPrivate)
	client.putRaw("root/dirother/c.txt", []byte("c"), "text/plain", obs.AclPrivate)
	client.putRaw("root/keep.txt", []byte("k"), "text/plain", obs.AclPrivate)

	require.NoError(t, fs.DeleteDirectory(context.Background(), "dir"))

	// 单次批量删除：全部后代在前，目录标记Key殿后
	require.Len(t, client.deleteBatches, 1)
	batch := client.deleteBatches[0]
	require.Len(t, batch, 3)
	assert.Equal(t, "root/dir/", batch[len(batch)-1])
	assert.Contains(t, batch, "root/dir/a.txt")
	assert.Contains(t, batch, "root/dir/sub/b.txt")

	// 前缀之外的对象不受影响
	assert.Contains(t, client.objects, "root/dirother/c.txt")
	assert.Contains(t, client.objects, "root/keep.txt")
	assert.NotContains(t, client.objects, "root/dir/a.txt")
	assert.NotContains(t, client.objects, "root/dir/sub/b.txt")
	assert.NotContains(t, client.objects, "root/dir/")
}

func TestDeleteDirectoryEmpty(t *testing.T) {
	fs, client := newTestFS("root")

	// 空目录同样发起一次只含目录标记Key的批量删除
	require.NoError(t, fs.DeleteDirectory(context.Background(), "missing"))
	require.Len(t, client.deleteBatches, 1)
	assert.Equal(t, []string{"root/missing/"}, client.deleteBatches[0])
}

func TestDeleteDirectoryListFailure(t *testing.T) {
	fs, client := newTestFS("root")
	client.failWith("ListObjects", errors.New("boom"))

	err := fs.DeleteDirectory(context.Background(), "dir")

	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, storage.FailureDelete, storageErr.Kind)
	assert.Equal(t, "dir", storageErr.Path)
	// 枚举失败时不发起删除
	assert.Empty(t, client.deleteBatches)
}

func TestDeleteDirectoryBatchFailure(t *testing.T) {
	fs, client := newTestFS("root")
	client.putRaw("root/dir/a.txt", []byte("a"), "text/plain", obs.AclPrivate)
	client.failWith("DeleteObjects", errors.New("boom"))

	err := fs.DeleteDirectory(context.Background(), "dir")

	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, storage.FailureDelete, storageErr.Kind)
}
