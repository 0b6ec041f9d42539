package main

import (
	"log"
	"os"
	"strconv"

	"github.com/aihub/storescan-go/app/bootstrap"
	"github.com/aihub/storescan-go/app/router"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/beego/beego/v2/server/web"
	"go.uber.org/zap"
)

func main() {
	// 在bootstrap之前设置端口
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8002" // 默认端口8002
	}
	if p, err := strconv.Atoi(port); err == nil {
		web.BConfig.Listen.HTTPPort = p
	} else {
		web.BConfig.Listen.HTTPPort = 8002
	}

	app, err := bootstrap.Init()
	if err != nil {
		log.Fatalf("failed to bootstrap application: %v", err)
	}
	defer app.Shutdown()

	// 初始化路由
	router.Init()

	// 配置Beego全局设置
	web.BConfig.AppName = "Store Scan Service"
	web.BConfig.CopyRequestBody = true

	logger.Info("🚀 Starting Store Scan Service", zap.Int("port", web.BConfig.Listen.HTTPPort))
	web.Run()
}
