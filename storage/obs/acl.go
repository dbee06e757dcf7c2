package obs

import (
	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"

	"github.com/t9527332/huawei-obs-storage/storage"
)

// visibilityToACL 把抽象可见性映射为OBS ACL
func visibilityToACL(visibility string) obs.AclType {
	if visibility == storage.VisibilityPublic {
		return obs.AclPublicRead
	}
	return obs.AclPrivate
}

// aclToVisibility 把OBS ACL映射回抽象可见性，
// 未识别的ACL一律按private处理，不报错
func aclToVisibility(acl obs.AclType) string {
	switch acl {
	case obs.AclPublicRead, obs.AclPublicReadWrite:
		return storage.VisibilityPublic
	default:
		return storage.VisibilityPrivate
	}
}

// grantsToVisibility 根据ACL授权列表判断可见性：
// 存在授予AllUsers组READ权限的条目即为public
func grantsToVisibility(grants []obs.Grant) string {
	for _, grant := range grants {
		if grant.Grantee.Type != obs.GranteeGroup {
			continue
		}
		if grant.Grantee.URI != obs.GroupAllUsers {
			continue
		}
		if grant.Permission == obs.PermissionRead || grant.Permission == obs.PermissionFullControl {
			return storage.VisibilityPublic
		}
	}
	return storage.VisibilityPrivate
}
