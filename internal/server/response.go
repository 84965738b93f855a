package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务状态码
const (
	CodeOK              = "200"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInvalidID       = "INVALID_ID"
	CodeClockBackwards  = "CLOCK_BACKWARDS"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL"
)

// APIResponse 统一响应体
type APIResponse[T any] struct {
	Code string `json:"code"`
	Data T      `json:"data"`
	Msg  string `json:"msg"`
}

// OK 成功响应
func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, APIResponse[T]{
		Code: CodeOK,
		Data: data,
		Msg:  "操作成功",
	})
}

// Fail 失败响应，data 为 null
func Fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Code: code,
		Msg:  msg,
	})
}
