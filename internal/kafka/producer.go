package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/aihub/storescan-go/internal/scanner"
	"go.uber.org/zap"
)

// Producer Kafka生产者，向下游向量化阶段推送扫描报告事件
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// ScanReportMessage 扫描报告事件结构
type ScanReportMessage struct {
	Success     bool                  `json:"success"`
	Summary     map[string]int        `json:"summary"`
	Errors      []scanner.SourceError `json:"errors"`
	Duration    float64               `json:"duration"`
	TotalChunks int                   `json:"total_chunks"`
	CompletedAt time.Time             `json:"completed_at"`
}

var globalProducer *Producer

// InitProducer 初始化Kafka生产者
func InitProducer(brokers []string, topic string) error {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Timeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}

	globalProducer = &Producer{
		producer: producer,
		topic:    topic,
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", brokers), zap.String("topic", topic))
	return nil
}

// GetProducer 获取全局生产者实例
func GetProducer() *Producer {
	return globalProducer
}

// PublishReport 发布扫描报告事件，生产者未初始化时静默跳过
func (p *Producer) PublishReport(report *scanner.Report) error {
	if p == nil || p.producer == nil {
		return nil
	}

	summary := make(map[string]int, len(report.Summary))
	for kind, count := range report.Summary {
		summary[string(kind)] = count
	}

	msg := ScanReportMessage{
		Success:     report.Success,
		Summary:     summary,
		Errors:      report.Errors,
		Duration:    report.Duration,
		TotalChunks: report.TotalChunks(),
		CompletedAt: time.Now(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal scan report: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to send scan report: %w", err)
	}

	logger.Debug("Scan report published",
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
