// Package events publica notificaciones de cambio de estado (Kafka o no-op).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

var (
	_ ports.ChangePublisher = (*KafkaPublisher)(nil)
	_ ports.ChangePublisher = Noop{}
)

// KafkaConfig brokers, tópico y client id. DeliveryTimeout acota cuánto se reintenta un registro.
type KafkaConfig struct {
	Brokers         []string
	Topic           string
	ClientID        string
	DeliveryTimeout time.Duration
}

// KafkaPublisher produce un registro JSON por commit; la clave es la versión del estado.
// La entrega es asíncrona: los fallos se registran en el callback del productor.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
	log     *logger.Logger
}

// NewKafkaPublisher crea el cliente franz-go. log puede ser nil.
func NewKafkaPublisher(cfg KafkaConfig, log *logger.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: sin brokers")
	}
	if cfg.Topic == "" {
		cfg.Topic = "catalog.state-changed"
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerLinger(5 * time.Millisecond),
		kgo.RecordDeliveryTimeout(cfg.DeliveryTimeout),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka: crear cliente: %w", err)
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic, timeout: cfg.DeliveryTimeout, log: log}, nil
}

// Publish encola el registro y vuelve sin esperar al broker. Solo falla si no puede codificarlo.
// El registro sobrevive a la cancelación de ctx; lo acota DeliveryTimeout.
func (p *KafkaPublisher) Publish(ctx context.Context, change ports.StateChanged) error {
	value, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("kafka: encode: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(change.Version, 10)),
		Value: value,
	}
	p.client.Produce(context.WithoutCancel(ctx), rec, func(r *kgo.Record, err error) {
		if err != nil {
			p.log.Warn().Err(err).Str("op", change.Op).Uint64("version", change.Version).Msg("kafka: entrega fallida")
			return
		}
		p.log.Debug().Uint64("version", change.Version).Int32("partition", r.Partition).Int64("offset", r.Offset).Msg("kafka: entregado")
	})
	return nil
}

// Close espera los registros pendientes (hasta DeliveryTimeout) y cierra.
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	err := p.client.Flush(ctx)
	p.client.Close()
	if err != nil {
		return fmt.Errorf("kafka: flush: %w", err)
	}
	return nil
}

// Noop no publica nada.
type Noop struct{}

func (Noop) Publish(context.Context, ports.StateChanged) error { return nil }
func (Noop) Close() error                                      { return nil }

// CommitNotifier adapta un ChangePublisher a hook de commit del store.
// Los errores de publicación se registran y no afectan al commit.
func CommitNotifier(p ports.ChangePublisher, log *logger.Logger, timeout time.Duration) func(ctx context.Context, op string, version uint64) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(ctx context.Context, op string, version uint64) {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		change := ports.StateChanged{Op: op, Version: version, At: time.Now().UTC()}
		if err := p.Publish(pubCtx, change); err != nil {
			log.Warn().Err(err).Str("op", op).Uint64("version", version).Msg("no se pudo publicar el cambio")
		}
	}
}
