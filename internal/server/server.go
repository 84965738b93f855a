// Package server ID生成服务的 HTTP 接口
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "katydid-common-idgen/internal/server/docs"
	"katydid-common-idgen/pkg/idgen/core"
)

const shutdownTimeout = 5 * time.Second

// Server HTTP 服务
type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// New 创建服务并注册路由，mode 为 gin 模式（debug|release|test）
func New(gen core.Generator, logger *zap.Logger, mode string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.GET("/healthz", healthz)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	NewIDHandler(gen, logger).RegisterIDRoutes(router)

	return &Server{router: router, logger: logger}
}

// healthz 存活检查
// @Summary 存活检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{} "{"status":"ok"}"
// @Router /healthz [get]
func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler 返回 http.Handler，便于测试
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 监听 addr 直到 ctx 结束，随后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP服务启动", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("HTTP服务已停止")
	return nil
}
