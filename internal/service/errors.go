package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrTagNameEmpty       = errors.New("标签名不能为空")
	ErrImageFilterInvalid = errors.New("不支持的图片滤镜")
	ErrNotOwner           = errors.New("无权操作该帖子")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrPostNotFound:       NotFound,
	ErrTagNameEmpty:       BadRequest,
	ErrImageFilterInvalid: BadRequest,
	ErrNotOwner:           Forbidden,
	UnExpectedError:       InternalServerError,
}
