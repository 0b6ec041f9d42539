package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aihub/storescan-go/internal/database"
)

// RootController 服务根路径
type RootController struct {
	BaseController
}

// Index 返回服务标识
func (c *RootController) Index() {
	c.JSONSuccess(map[string]interface{}{
		"service": "storescan",
		"status":  "running",
	})
}

// HealthController 健康检查
type HealthController struct {
	BaseController
}

// Health 检查数据库与Redis连通性
func (c *HealthController) Health() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	components := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if database.DB == nil {
		components["database"] = "not initialized"
		healthy = false
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		components["database"] = "unreachable"
		healthy = false
	}

	if database.RedisClient == nil {
		components["redis"] = "disabled"
	} else if err := database.RedisClient.Ping(ctx).Err(); err != nil {
		components["redis"] = "unreachable"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, map[string]interface{}{
		"healthy":    healthy,
		"components": components,
	})
}
