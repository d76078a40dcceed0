package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/openfreight/loadplan/core/monitoring"
	"github.com/openfreight/loadplan/core/publish"
	"github.com/openfreight/loadplan/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// Swapped out in tests.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements publish.Publisher over Eclipse Paho. Plans go out
// on PlanTopic/<instance>; consumers confirm adoption on the ack topic, keyed
// by the message id carried in the plan envelope.
type PahoPublisher struct {
	cli       pahoClient
	planTopic string
	ackTopic  string
	qos       map[string]byte

	mu       sync.Mutex
	ackChans map[string]chan struct{}

	logger     logger.Logger
	maxRetries int
	backoff    time.Duration
}

// NewPahoPublisher connects to the broker and, when an ack topic is
// configured, subscribes to it. Missing retry settings fall back to three
// attempts with a 100ms base backoff.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.PlanTopic == "" {
		cfg.PlanTopic = "loadplan/plans"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BackoffMS <= 0 {
		cfg.BackoffMS = 100
	}

	p := &PahoPublisher{
		planTopic:  cfg.PlanTopic,
		ackTopic:   cfg.AckTopic,
		qos:        cfg.QoS,
		ackChans:   make(map[string]chan struct{}),
		logger:     logger.New("mqtt_publisher"),
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
	}

	opts.OnConnect = func(c paho.Client) {
		p.logger.Infof("MQTT connected")
		if p.ackTopic == "" {
			return
		}
		if token := c.Subscribe(p.ackTopic, p.qosFor("ack"), p.onAck); token.Wait() && token.Error() != nil {
			p.logger.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		p.logger.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		p.logger.Warnf("reconnecting to MQTT broker")
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = cli
	return p, nil
}

// PublishPlan announces the solved plan on the instance specific topic and
// returns the message identifier used for acknowledgment tracking.
func (p *PahoPublisher) PublishPlan(msg publish.PlanMessage) (string, error) {
	msgID := uuid.NewString()
	envelope := struct {
		MessageID string `json:"message_id"`
		publish.PlanMessage
	}{MessageID: msgID, PlanMessage: msg}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}
	topic := p.topicFor(msg.Instance)

	// Register before sending so an ack racing the publish is not dropped.
	p.mu.Lock()
	p.ackChans[msgID] = make(chan struct{}, 1)
	p.mu.Unlock()

	if err := p.publishWithRetry(topic, p.qosFor("plan"), payload); err != nil {
		p.mu.Lock()
		delete(p.ackChans, msgID)
		p.mu.Unlock()
		monitoring.Capture(err, map[string]string{"module": "mqtt", "instance": msg.Instance})
		return "", err
	}
	p.logger.Infof("published plan %s to %s", msgID, topic)
	return msgID, nil
}

// WaitForAck blocks until the ack for the message arrives or the timeout
// passes. The tracking entry is released either way.
func (p *PahoPublisher) WaitForAck(messageID string, timeout time.Duration) (bool, error) {
	p.mu.Lock()
	ch := p.ackChans[messageID]
	p.mu.Unlock()
	if ch == nil {
		return false, fmt.Errorf("unknown message %s", messageID)
	}
	defer func() {
		p.mu.Lock()
		delete(p.ackChans, messageID)
		p.mu.Unlock()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
		return true, nil
	case <-timer.C:
		return false, publish.ErrAckTimeout
	}
}

// Disconnect gracefully closes the MQTT connection.
func (p *PahoPublisher) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}

func (p *PahoPublisher) onAck(_ paho.Client, msg paho.Message) {
	var m struct {
		MessageID string `json:"message_id"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.logger.Errorf("failed to decode ack: %v", err)
		return
	}
	p.mu.Lock()
	ch, ok := p.ackChans[m.MessageID]
	p.mu.Unlock()
	if !ok {
		p.logger.Debugf("ack %s has no waiter", m.MessageID)
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	p.logger.Infof("received ack %s", m.MessageID)
}

func (p *PahoPublisher) topicFor(instance string) string {
	if instance == "" {
		return p.planTopic
	}
	return p.planTopic + "/" + instance
}

func (p *PahoPublisher) qosFor(kind string) byte {
	return p.qos[kind]
}

// publishWithRetry sends the payload, backing off exponentially between
// attempts. The first attempt runs immediately.
func (p *PahoPublisher) publishWithRetry(topic string, qos byte, payload []byte) error {
	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(p.backoff * time.Duration(1<<(attempt-1)))
		}
		token := p.cli.Publish(topic, qos, false, payload)
		token.Wait()
		if err = token.Error(); err == nil {
			return nil
		}
		p.logger.Errorf("publish attempt %d of %d failed: %v", attempt+1, p.maxRetries+1, err)
	}
	return err
}
