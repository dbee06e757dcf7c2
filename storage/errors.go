package storage

import (
	"fmt"
)

// FailureKind 操作失败类别，每个抽象操作对应唯一一种
type FailureKind string

// 失败类别枚举
const (
	FailureExistenceCheck          FailureKind = "existence_check_failed"
	FailureDirectoryExistenceCheck FailureKind = "directory_existence_check_failed"
	FailureWrite                   FailureKind = "write_failed"
	FailureRead                    FailureKind = "read_failed"
	FailureDelete                  FailureKind = "delete_failed"
	FailureCreateDirectory         FailureKind = "create_directory_failed"
	FailureSetVisibility           FailureKind = "set_visibility_failed"
	FailureRetrieveMetadata        FailureKind = "retrieve_metadata_failed"
	FailureListContents            FailureKind = "list_contents_failed"
	FailureMove                    FailureKind = "move_failed"
	FailureCopy                    FailureKind = "copy_failed"
	FailurePublicURL               FailureKind = "public_url_generation_failed"
	FailureTemporaryURL            FailureKind = "temporary_url_generation_failed"
)

// StorageError 存储操作错误。携带失败类别、目标路径、
// 远端返回的诊断信息以及底层原因（可通过errors.Unwrap取得）。
type StorageError struct {
	// Kind 失败类别
	Kind FailureKind

	// Path 操作目标路径
	Path string

	// From 源路径（仅move/copy）
	From string

	// To 目标路径（仅move/copy）
	To string

	// Message 远端返回的诊断信息
	Message string

	// Err 底层原因
	Err error
}

// Error 实现error接口
func (e *StorageError) Error() string {
	target := e.Path
	if e.From != "" || e.To != "" {
		target = fmt.Sprintf("%s -> %s", e.From, e.To)
	}
	if e.Message != "" {
		return fmt.Sprintf("storage: %s: %s: %s", e.Kind, target, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("storage: %s: %s: %v", e.Kind, target, e.Err)
	}
	return fmt.Sprintf("storage: %s: %s", e.Kind, target)
}

// Unwrap 返回底层原因，保持错误链完整
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is 支持按失败类别匹配：errors.Is(err, &StorageError{Kind: FailureWrite})
func (e *StorageError) Is(target error) bool {
	t, ok := target.(*StorageError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Path == "" || t.Path == e.Path)
}

// NewError 创建指定类别的存储错误
func NewError(kind FailureKind, path string, err error) *StorageError {
	return &StorageError{Kind: kind, Path: path, Err: err}
}

// NewErrorWithMessage 创建带远端诊断信息的存储错误
func NewErrorWithMessage(kind FailureKind, path, message string, err error) *StorageError {
	return &StorageError{Kind: kind, Path: path, Message: message, Err: err}
}

// NewTransferError 创建move/copy类操作的存储错误
func NewTransferError(kind FailureKind, from, to string, err error) *StorageError {
	return &StorageError{Kind: kind, From: from, To: to, Err: err}
}
