package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
	"github.com/cypherlabdev/fight-odds-engine/internal/normalizer"
	"github.com/cypherlabdev/fight-odds-engine/internal/service"
)

// KafkaConsumer consumes fight odds snapshot batches from Kafka, extracts
// feature vectors, and caches the results
type KafkaConsumer struct {
	reader    *kafka.Reader
	extractor service.Extractor
	cache     service.Cache
	filterCfg *models.SportsbookFilterConfig
	cfg       *models.FeatureConfig
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "fight_odds_snapshots"
	GroupID string   // e.g., "fight-odds-engine"
}

// NewKafkaConsumer creates a new Kafka consumer. filterCfg and cfg are
// applied to every batch; nil means no filtering and engine defaults.
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	extractor service.Extractor,
	cache service.Cache,
	filterCfg *models.SportsbookFilterConfig,
	cfg *models.FeatureConfig,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader:    reader,
		extractor: extractor,
		cache:     cache,
		filterCfg: filterCfg,
		cfg:       cfg,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			// Read message
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			// Process message
			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			// Commit message
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	// Parse message
	var kafkaMsg models.KafkaSnapshotBatchMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Str("fight_id", kafkaMsg.FightID).
		Int("snapshot_count", len(kafkaMsg.Snapshots)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processing snapshot batch")

	// Upstream scrapers emit mixed-case book keys; grouping needs canonical names
	snapshots := kafkaMsg.Snapshots
	for i := range snapshots {
		snapshots[i].Sportsbook = normalizer.CanonicalName(snapshots[i].Sportsbook)
	}

	data := &models.OddsMovementData{
		FightID:   kafkaMsg.FightID,
		Snapshots: snapshots,
	}

	vector, err := c.extractor.Extract(data, c.filterCfg, c.cfg)
	if err != nil {
		return fmt.Errorf("failed to extract features: %w", err)
	}

	if err := c.cache.SetFeatures(ctx, vector); err != nil {
		return fmt.Errorf("failed to cache feature vector: %w", err)
	}

	opportunities := c.extractor.DetectArbitrage(data.Snapshots, c.cfg)
	if err := c.cache.SetOpportunities(ctx, kafkaMsg.FightID, opportunities); err != nil {
		return fmt.Errorf("failed to cache opportunities: %w", err)
	}

	c.logger.Info().
		Str("fight_id", kafkaMsg.FightID).
		Int("snapshot_count", len(kafkaMsg.Snapshots)).
		Int("arbitrage_count", len(opportunities)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("extracted and cached fight features")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
