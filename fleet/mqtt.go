package fleet

import (
	"context"
	"encoding/json"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/transitflow/depotplan/core/logger"
	"github.com/transitflow/depotplan/core/model"
	infralogger "github.com/transitflow/depotplan/infra/logger"
)

// MQTTProvider collects trainset state over MQTT. It publishes a request on
// the request topic and gathers per-trainset JSON payloads from the state
// topic until the collection window closes.
type MQTTProvider struct {
	cli          paho.Client
	requestTopic string
	stateTopic   string
	timeout      time.Duration
	log          logger.Logger
}

// NewMQTTProvider connects to the broker and returns a provider instance.
func NewMQTTProvider(cfg Config) (*MQTTProvider, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	p := &MQTTProvider{
		requestTopic: cfg.RequestTopic,
		stateTopic:   cfg.StateTopic,
		timeout:      cfg.Timeout,
		log:          infralogger.New("fleet-mqtt"),
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		p.log.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = cli
	return p, nil
}

// Fleet requests the depot state and collects responses until the timeout.
func (p *MQTTProvider) Fleet(ctx context.Context) ([]model.Trainset, error) {
	var fleet []model.Trainset
	recv := make(chan model.Trainset, 64)

	if token := p.cli.Subscribe(p.stateTopic, 0, func(_ paho.Client, m paho.Message) {
		var ts model.Trainset
		if err := json.Unmarshal(m.Payload(), &ts); err != nil {
			p.log.Errorf("invalid state payload on %s: %v", m.Topic(), err)
			return
		}
		if err := ts.Validate(); err != nil {
			p.log.Warnf("dropping invalid trainset: %v", err)
			return
		}
		select {
		case recv <- ts:
		default:
		}
	}); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	if token := p.cli.Publish(p.requestTopic, 0, false, []byte(`{"request":"state"}`)); token.Wait() && token.Error() != nil {
		_ = p.cli.Unsubscribe(p.stateTopic)
		return nil, token.Error()
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
loop:
	for {
		select {
		case ts := <-recv:
			fleet = append(fleet, ts)
		case <-ctx.Done():
			break loop
		case <-timer.C:
			break loop
		}
	}

	if token := p.cli.Unsubscribe(p.stateTopic); token.Wait() && token.Error() != nil {
		p.log.Errorf("unsubscribe error: %v", token.Error())
	}
	p.log.Infof("collected %d trainset states", len(fleet))
	return fleet, nil
}

// Close disconnects from the broker.
func (p *MQTTProvider) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
