package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"katydid-common-idgen/pkg/idgen/core"
	"katydid-common-idgen/pkg/idgen/domain"
)

const (
	defaultIDCount = 1
	maxIDCount     = 1000
)

// IDsResponse 批量ID，统一以字符串输出
type IDsResponse struct {
	IDs []string `json:"ids"`
}

// IDHandler 暴露 /v1/ids 相关接口
type IDHandler struct {
	gen    core.Generator
	logger *zap.Logger
}

// NewIDHandler 创建处理器
func NewIDHandler(gen core.Generator, logger *zap.Logger) *IDHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IDHandler{gen: gen, logger: logger}
}

// RegisterIDRoutes 注册 /v1 路由
func (h *IDHandler) RegisterIDRoutes(r gin.IRouter) {
	v1 := r.Group("/v1")
	v1.GET("/ids", h.NextIDs)
	v1.GET("/ids/:id", h.Decode)
	v1.GET("/metrics", h.Metrics)
}

// NextIDs 生成 count 个ID（默认1，最多1000）
// @Summary 生成ID
// @Description 批量生成 Snowflake ID，ID 以十进制字符串返回。
// @Tags ID
// @Produce json
// @Param count query int false "数量，1-1000，默认1"
// @Success 200 {object} map[string]interface{} "统一响应包装，data 为 IDsResponse"
// @Failure 400 {object} map[string]interface{} "count 非法"
// @Failure 503 {object} map[string]interface{} "时钟回拨或请求被取消"
// @Router /v1/ids [get]
func (h *IDHandler) NextIDs(c *gin.Context) {
	count := defaultIDCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxIDCount {
			Fail(c, http.StatusBadRequest, CodeInvalidArgument, "count must be an integer between 1 and 1000")
			return
		}
		count = n
	}

	ids, err := h.gen.NextIDBatch(c.Request.Context(), count)
	if err != nil {
		h.failGenerate(c, err)
		return
	}

	OK(c, IDsResponse{IDs: domain.NewIDSlice(ids...).StringSlice()})
}

// Decode 拆解ID，支持十进制、0x、0b
// @Summary 解析ID
// @Description 拆解出时间戳、区域ID、工作机器ID和序列号。
// @Tags ID
// @Produce json
// @Param id path string true "ID，支持十进制、0x十六进制、0b二进制"
// @Success 200 {object} map[string]interface{} "统一响应包装，data 为 IDInfo"
// @Failure 400 {object} map[string]interface{} "ID 非法"
// @Router /v1/ids/{id} [get]
func (h *IDHandler) Decode(c *gin.Context) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		Fail(c, http.StatusBadRequest, CodeInvalidID, err.Error())
		return
	}

	info, err := h.gen.ParseID(id.Uint64())
	if err != nil {
		Fail(c, http.StatusBadRequest, CodeInvalidID, err.Error())
		return
	}

	OK(c, info)
}

// Metrics 生成器指标
// @Summary 生成器指标
// @Tags ID
// @Produce json
// @Success 200 {object} map[string]interface{} "统一响应包装，data 为指标键值"
// @Router /v1/metrics [get]
func (h *IDHandler) Metrics(c *gin.Context) {
	OK(c, h.gen.GetMetrics())
}

// failGenerate 生成失败时的状态码映射
func (h *IDHandler) failGenerate(c *gin.Context, err error) {
	var backward *core.ClockBackwardError
	switch {
	case errors.As(err, &backward):
		h.logger.Warn("时钟回拨，请求被拒绝",
			zap.Int64("regression_ms", backward.Regression),
			zap.Error(err))
		c.Header("Retry-After", "1")
		Fail(c, http.StatusServiceUnavailable, CodeClockBackwards, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		Fail(c, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
	default:
		h.logger.Error("生成ID失败", zap.Error(err))
		Fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
