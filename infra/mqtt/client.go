package mqtt

import (
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/smartenergy/aeos-ml/infra/logger"
)

// pahoClient is the subset of the Paho client used here, extracted so tests
// can substitute a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Client is a thin wrapper around Eclipse Paho handling connection and QoS.
type Client struct {
	cli pahoClient
	qos byte
	log logger.Logger
}

// NewClient connects to the broker configured in cfg.
func NewClient(cfg Config) (*Client, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	log := logger.New("mqtt_client")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("MQTT connection lost: %v", err)
	}
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Client{cli: cli, qos: cfg.QoS, log: log}, nil
}

// Publish sends the payload to the topic and waits for completion.
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.cli.Publish(topic, c.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Subscribe registers the handler for the topic filter.
func (c *Client) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.cli.Subscribe(topic, c.qos, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Disconnect closes the connection after flushing in-flight messages.
func (c *Client) Disconnect() {
	c.cli.Disconnect(250)
}
