package data

import (
	"context"
	"errors"
	"time"

	"wellrng/internal/biz"
	"wellrng/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const routingKeyVerified = "well.verified"

// resultPublisher RabbitMQ 发布器
type resultPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *log.Helper
}

// NewResultPublisher 创建结果事件发布器
// RabbitMQ 未配置或连接失败时返回空实现，不影响校验本身
func NewResultPublisher(c *conf.Data, logger log.Logger) (biz.ResultPublisher, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data/mq"))

	mc := c.GetRabbitmq()
	if mc.GetUrl() == "" {
		helper.Warn("rabbitmq config not found, result publisher disabled")
		return &noopPublisher{log: helper}, func() {}, nil
	}

	conn, err := amqp.Dial(mc.GetUrl())
	if err != nil {
		helper.Warnf("failed to connect rabbitmq: %v, using noop publisher", err)
		return &noopPublisher{log: helper}, func() {}, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		helper.Warnf("failed to open channel: %v, using noop publisher", err)
		return &noopPublisher{log: helper}, func() {}, nil
	}

	if err := declareTopology(ch, mc.GetExchange(), mc.GetQueue()); err != nil {
		ch.Close()
		conn.Close()
		helper.Warnf("failed to declare topology: %v, using noop publisher", err)
		return &noopPublisher{log: helper}, func() {}, nil
	}

	helper.Infof("rabbitmq connected: exchange=%s queue=%s binding=%s",
		mc.GetExchange(), mc.GetQueue(), routingKeyVerified)

	cleanup := func() {
		if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			helper.Errorf("failed to close channel: %v", err)
		}
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			helper.Errorf("failed to close connection: %v", err)
		}
		helper.Info("rabbitmq connection closed")
	}

	return &resultPublisher{
		conn:     conn,
		channel:  ch,
		exchange: mc.GetExchange(),
		log:      helper,
	}, cleanup, nil
}

// declareTopology 声明 direct exchange、持久化队列并绑定
func declareTopology(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if queue == "" {
		return nil
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(queue, routingKeyVerified, exchange, false, nil)
}

// encodeVerified 把结果编码为 protobuf Struct
func encodeVerified(r *biz.Result) ([]byte, error) {
	ev, err := structpb.NewStruct(map[string]any{
		"event_type": "WELL_VERIFIED",
		"run_id":     r.RunID,
		"variant":    r.Variant,
		"state_size": r.StateSize,
		"iterations": float64(r.Iterations),
		"seed":       float64(r.Seed),
		"last":       float64(r.Last),
		"expected":   float64(r.Expected),
		"reference":  r.Reference,
		"passed":     r.Passed,
		"resumed":    r.Resumed,
		"elapsed_ms": float64(r.Elapsed.Milliseconds()),
		"timestamp":  r.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(ev)
}

// PublishVerified 发布校验完成事件
func (p *resultPublisher) PublishVerified(ctx context.Context, r *biz.Result) error {
	body, err := encodeVerified(r)
	if err != nil {
		p.log.Errorf("marshal event failed: %v", err)
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKeyVerified,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/x-protobuf",
			Type:         "google.protobuf.Struct",
			MessageId:    r.RunID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.log.Errorf("publish message failed: %v", err)
		return err
	}
	p.log.Debugf("event published: run_id=%s variant=%s size=%d", r.RunID, r.Variant, len(body))
	return nil
}

// noopPublisher 空实现（RabbitMQ 未配置或连接失败时使用）
type noopPublisher struct {
	log *log.Helper
}

func (p *noopPublisher) PublishVerified(ctx context.Context, r *biz.Result) error {
	if p.log != nil {
		p.log.Debugf("mq publisher not available, skipping event: run_id=%s variant=%s", r.RunID, r.Variant)
	}
	return nil
}
