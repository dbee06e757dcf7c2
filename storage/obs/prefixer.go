package obs

import (
	"strings"
)

// pathPrefixer 在虚拟路径和带根前缀的对象Key之间做双向转换。
// 纯字符串变换，无错误分支。
type pathPrefixer struct {
	prefix string
}

// newPathPrefixer 创建路径前缀器，prefix为空时不加前缀
func newPathPrefixer(prefix string) pathPrefixer {
	prefix = strings.Trim(normalizeSeparators(prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return pathPrefixer{prefix: prefix}
}

// prefixPath 把虚拟路径映射为对象Key
func (p pathPrefixer) prefixPath(path string) string {
	return p.prefix + normalizePath(path)
}

// prefixDirectoryPath 把虚拟路径映射为目录Key，保证以分隔符结尾
func (p pathPrefixer) prefixDirectoryPath(path string) string {
	key := p.prefixPath(path)
	if key != "" && !strings.HasSuffix(key, "/") {
		key += "/"
	}
	return key
}

// stripPrefix 从对象Key剥离根前缀，还原虚拟路径
func (p pathPrefixer) stripPrefix(key string) string {
	return strings.TrimPrefix(key, p.prefix)
}

// normalizePath 规范化虚拟路径：统一分隔符、去除首尾多余斜杠
func normalizePath(path string) string {
	path = normalizeSeparators(path)
	return strings.Trim(path, "/")
}

// normalizeSeparators 把反斜杠统一为正斜杠并折叠重复分隔符
func normalizeSeparators(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}
