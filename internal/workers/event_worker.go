package workers

import (
	"context"

	"github.com/minitwitter/minitwitter/pkg/logger"
	"github.com/minitwitter/minitwitter/pkg/queue"
	"github.com/sirupsen/logrus"
)

// EventWorker tails the domain-event topic and writes structured audit
// logs. It is strictly an observer; request handling never depends on it.
type EventWorker struct {
	consumer *queue.KafkaConsumer
	logger   *logger.Logger
	cancel   context.CancelFunc
}

func NewEventWorker(consumer *queue.KafkaConsumer, logger *logger.Logger) *EventWorker {
	return &EventWorker{
		consumer: consumer,
		logger:   logger,
	}
}

func (w *EventWorker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.logger.Info("Event worker started")

	return w.consumer.Subscribe(ctx, func(msg queue.Message) error {
		w.logger.WithFields(logrus.Fields{
			"event":     msg.Event.Type,
			"key":       msg.Key,
			"timestamp": msg.Event.Timestamp,
			"data":      msg.Event.Data,
		}).Info("Domain event")
		return nil
	})
}

func (w *EventWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.consumer.Close()
}
