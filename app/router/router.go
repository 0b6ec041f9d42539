package router

import (
	"github.com/aihub/storescan-go/app/controllers"
	"github.com/aihub/storescan-go/internal/config"
	"github.com/beego/beego/v2/server/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init registers all routes. Must be called after config is loaded.
func Init() {
	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/health", &controllers.HealthController{}, "get:Health")

	// 扫描路由
	scanController := &controllers.ScanController{}
	web.Router("/api/scan", scanController, "post:ScanAll")
	// 注意：具体路由必须在参数路由之前
	web.Router("/api/scan/statistics", scanController, "get:Statistics")
	web.Router("/api/scan/:kind", scanController, "post:ScanKind")
	web.Router("/api/cache/clear", scanController, "post:ClearCache")

	// Prometheus指标端点
	if config.AppConfig != nil && config.AppConfig.Prometheus.Enabled {
		web.Handler("/metrics", promhttp.Handler())
	}
}
