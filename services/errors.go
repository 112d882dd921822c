package services

import "errors"

// Các lỗi cố định để controller map sang status code
var (
	ErrNotFound         = errors.New("không tìm thấy")
	ErrValidationFailed = errors.New("dữ liệu không hợp lệ")
	ErrNotInvited       = errors.New("không được mời")
	ErrUpdateFailed     = errors.New("cập nhật thất bại sau khi đã ghi một phía")
	ErrUnauthorized     = errors.New("không có quyền")
)
