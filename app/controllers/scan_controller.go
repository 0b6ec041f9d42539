package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aihub/storescan-go/app/bootstrap"
	apperrors "github.com/aihub/storescan-go/internal/errors"
	"github.com/aihub/storescan-go/internal/kafka"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/aihub/storescan-go/internal/scanner"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// kindAliases 路径参数到内容源类型的映射，同时接受单复数形式
var kindAliases = map[string]scanner.SourceKind{
	"product":       scanner.KindProduct,
	"products":      scanner.KindProduct,
	"page":          scanner.KindPage,
	"pages":         scanner.KindPage,
	"post":          scanner.KindPost,
	"posts":         scanner.KindPost,
	"setting":       scanner.KindSetting,
	"settings":      scanner.KindSetting,
	"taxonomy_term": scanner.KindTaxonomy,
	"taxonomies":    scanner.KindTaxonomy,
}

// scanRequestDTO 单内容源扫描请求体
type scanRequestDTO struct {
	Limit                  *int     `json:"limit" validate:"omitempty,gte=0"`
	ForceRefresh           bool     `json:"force_refresh"`
	IncludeIDs             []string `json:"include_ids" validate:"omitempty,dive,required"`
	ExcludeIDs             []string `json:"exclude_ids" validate:"omitempty,dive,required"`
	IncludeLegalPages      bool     `json:"include_legal_pages"`
	IncludeSettingSections bool     `json:"include_setting_sections"`
}

// ScanController 扫描接口，围绕扫描器做薄封装
type ScanController struct {
	BaseController
}

// scanner 从全局App获取扫描器实例
func (c *ScanController) scanner() *scanner.Scanner {
	app := bootstrap.GetApp()
	if app == nil {
		return nil
	}
	return app.Scanner()
}

// ScanAll 执行全量扫描并返回聚合报告。
// 报告中部分内容源失败时仍返回200，success标志与errors列表是唯一的错误面
func (c *ScanController) ScanAll() {
	s := c.scanner()
	if s == nil {
		c.JSONError(http.StatusServiceUnavailable, "scanner not initialized")
		return
	}

	var opts scanner.ScanAllOptions
	if len(c.Ctx.Input.RequestBody) > 0 {
		if err := json.Unmarshal(c.Ctx.Input.RequestBody, &opts); err != nil {
			c.JSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	report := s.ScanAll(c.Ctx.Request.Context(), opts)

	// 将扫描报告推送给下游向量化阶段（可选，失败不影响响应）
	if producer := kafka.GetProducer(); producer != nil {
		if err := producer.PublishReport(report); err != nil {
			logger.Warn("Failed to publish scan report", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, report)
}

// ScanKind 扫描单个内容源
func (c *ScanController) ScanKind() {
	s := c.scanner()
	if s == nil {
		c.JSONError(http.StatusServiceUnavailable, "scanner not initialized")
		return
	}

	kind, ok := kindAliases[c.Ctx.Input.Param(":kind")]
	if !ok {
		c.JSONError(http.StatusNotFound, "unknown source kind")
		return
	}

	var dto scanRequestDTO
	if len(c.Ctx.Input.RequestBody) > 0 {
		if err := json.Unmarshal(c.Ctx.Input.RequestBody, &dto); err != nil {
			c.JSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	if err := validate.Struct(&dto); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid scan request: "+err.Error())
		return
	}

	chunks, err := s.Scan(c.Ctx.Request.Context(), kind, scanner.ScanRequest{
		Limit:                  dto.Limit,
		ForceRefresh:           dto.ForceRefresh,
		IncludeIDs:             dto.IncludeIDs,
		ExcludeIDs:             dto.ExcludeIDs,
		IncludeLegalPages:      dto.IncludeLegalPages,
		IncludeSettingSections: dto.IncludeSettingSections,
	})
	if err != nil {
		appErr := apperrors.GetAppError(err)
		c.JSONError(appErr.HTTPCode, appErr.Message)
		return
	}

	c.JSONSuccess(map[string]interface{}{
		"kind":   kind,
		"count":  len(chunks),
		"chunks": chunks,
	})
}

// Statistics 返回扫描器运行状态
func (c *ScanController) Statistics() {
	s := c.scanner()
	if s == nil {
		c.JSONError(http.StatusServiceUnavailable, "scanner not initialized")
		return
	}
	c.JSONSuccess(s.GetStatistics())
}

// ClearCache 清空扫描缓存
func (c *ScanController) ClearCache() {
	s := c.scanner()
	if s == nil {
		c.JSONError(http.StatusServiceUnavailable, "scanner not initialized")
		return
	}

	if err := s.FlushCache(context.Background()); err != nil {
		appErr := apperrors.GetAppError(err)
		c.JSONError(appErr.HTTPCode, appErr.Message)
		return
	}
	c.JSONSuccess(map[string]interface{}{"flushed": true})
}
