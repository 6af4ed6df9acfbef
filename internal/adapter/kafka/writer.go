package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/gameday-weather-service/internal/config"
	"github.com/couchcryptid/gameday-weather-service/internal/domain"
	"github.com/couchcryptid/gameday-weather-service/internal/observability"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes report records to a Kafka topic, one message per game.
// It implements pipeline.ReportPublisher.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSinkTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// Publish serializes every record of the report and writes them in a single
// WriteMessages call. Records keyed by game land on the same partition across
// runs, so consumers see the latest forecast per game in order.
func (p *Publisher) Publish(ctx context.Context, report domain.Report) error {
	if len(report.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(report.Records))
	for i := range report.Records {
		msg, err := serializeToMessage(report, report.Records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish report %s: %w", report.RunID, err)
	}
	p.metrics.RecordsPublished.Add(float64(len(msgs)))
	p.logger.Info("report published", "run_id", report.RunID, "records", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a record into a Kafka message.
func serializeToMessage(report domain.Report, record domain.EventWeatherRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record for game %d: %w", record.GamePK, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(record.GamePK)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(report.RunID)},
			{Key: "report_date", Value: []byte(report.Date)},
			{Key: "degraded", Value: []byte(strconv.FormatBool(record.Degraded))},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
