package mqttclient

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"aquaponics/internal/logger"
)

// Handler consumes one raw transport message.
type Handler interface {
	HandleMessage(topic string, payload []byte)
}

// Options configures the broker connection.
type Options struct {
	Broker   string
	Username string
	Password string
}

const (
	clientIDPrefix    = "aquaponics"
	reconnectInterval = time.Second
	disconnectQuiesce = 250 // milliseconds, per paho convention
)

// Topics every instance subscribes to: single-level wildcard on the device
// segment, one topic per sensor kind.
var subscriptions = []string{
	"aquaponics/+/humidity",
	"aquaponics/+/light",
	"aquaponics/+/water",
	"aquaponics/+/VklSvet",
}

// Client owns the paho connection and forwards every delivered message to
// the handler. Message handling must stay fast: all slow work behind the
// handler goes through the persistence queue.
type Client struct {
	inner mqtt.Client
	log   *logger.Logger
}

// Connect dials the broker and subscribes to all sensor topics.
func Connect(opts Options, handler Handler, log *logger.Logger) (*Client, error) {
	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(fmt.Sprintf("%s-%s", clientIDPrefix, uuid.NewString()[:8])).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetConnectRetryInterval(reconnectInterval).
		SetDefaultPublishHandler(func(_ mqtt.Client, msg mqtt.Message) {
			handler.HandleMessage(msg.Topic(), msg.Payload())
		})

	clientOpts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warnw("mqtt connection lost", "err", err)
	}
	clientOpts.OnConnect = func(c mqtt.Client) {
		// Re-subscribe on every (re)connect; paho does not replay
		// subscriptions after a dropped session.
		for _, topic := range subscriptions {
			if token := c.Subscribe(topic, 0, nil); token.Wait() && token.Error() != nil {
				log.Errorw("mqtt subscribe failed", "topic", topic, "err", token.Error())
			}
		}
		log.Infow("mqtt subscribed", "topics", subscriptions)
	}

	inner := mqtt.NewClient(clientOpts)
	if token := inner.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %q: %w", opts.Broker, token.Error())
	}

	return &Client{inner: inner, log: log}, nil
}

// Close disconnects from the broker, allowing in-flight work to quiesce.
func (c *Client) Close() {
	c.inner.Disconnect(disconnectQuiesce)
}
