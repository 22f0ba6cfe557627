package notify

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/transitflow/depotplan/core/events"
	"github.com/transitflow/depotplan/core/logger"
	infralogger "github.com/transitflow/depotplan/infra/logger"
	"github.com/transitflow/depotplan/internal/eventbus"
)

// Config defines the connection parameters for the MQTT notifier.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults fills missing fields with sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "depotplan-notify"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "depot"
	}
}

// Validate checks the configuration for completeness.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("notify: broker must not be empty")
	}
	return nil
}

// Publisher forwards planning lifecycle events to an MQTT broker so depot
// dashboards and downstream systems can follow runs in near real time.
type Publisher struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    logger.Logger
	done   chan struct{}
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := infralogger.New("notify")
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Publisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		log:    log,
		done:   make(chan struct{}),
	}, nil
}

func clientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := loadTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func loadTLSConfig(cfg Config) (*tls.Config, error) {
	if cfg.ClientCert == "" || cfg.ClientKey == "" || cfg.CABundle == "" {
		return nil, fmt.Errorf("notify: tls requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(cfg.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// Listen subscribes to the bus and publishes every lifecycle event until the
// bus closes or Close is called. Intended to run in its own goroutine.
func (p *Publisher) Listen(bus eventbus.EventBus) {
	sub := bus.Subscribe()
	for {
		select {
		case <-p.done:
			bus.Unsubscribe(sub)
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			p.publishEvent(ev)
		}
	}
}

func (p *Publisher) publishEvent(ev eventbus.Event) {
	var topic string
	switch ev.(type) {
	case events.RunStartedEvent:
		topic = p.prefix + "/runs/started"
	case events.RunCompletedEvent:
		topic = p.prefix + "/runs/completed"
	case events.RunFailedEvent:
		topic = p.prefix + "/runs/failed"
	case events.ScenarioAppliedEvent:
		topic = p.prefix + "/scenarios/applied"
	default:
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorf("marshal event: %v", err)
		return
	}
	if token := p.cli.Publish(topic, p.qos, false, payload); token.Wait() && token.Error() != nil {
		p.log.Errorf("publish %s: %v", topic, token.Error())
	}
}

// Close stops the listener and disconnects from the broker.
func (p *Publisher) Close() {
	close(p.done)
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
