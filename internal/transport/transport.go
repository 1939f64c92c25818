// Package transport wraps the Paho MQTT client behind a narrow interface
// so the session state machine can be driven without a real broker.
package transport

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Connection policy. The transport library owns keep-alive pings and
// reconnect timers; these values are fixed, not user-configurable.
const (
	securePort        = 443
	keepAlive         = 60 * time.Second
	connectTimeout    = 30 * time.Second
	reconnectInterval = 1 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// Message is a single inbound publish.
type Message struct {
	Topic   string
	Payload []byte
}

// Events receives transport callbacks. Handlers are invoked on library
// goroutines; implementations must serialize their own state.
type Events interface {
	// OnConnect fires when the broker acknowledges the connection,
	// including reconnects after a dropped link.
	OnConnect()
	// OnConnectError fires when an explicit connect attempt fails.
	OnConnectError(err error)
	// OnSubscribed fires when a subscription attempt completes.
	OnSubscribed(topic string, err error)
	// OnMessage fires for each inbound publish on a subscribed topic.
	OnMessage(msg Message)
	// OnConnectionLost fires when an established connection drops. The
	// client's own retry policy governs recovery; OnConnect fires again
	// if it succeeds.
	OnConnectionLost(err error)
}

// Client is the subset of the MQTT client the session needs. All calls
// hand off to the transport and return; completion is observed via Events.
type Client interface {
	Connect()
	Subscribe(topic string)
	Disconnect()
	IsConnected() bool
}

// Options configures one broker connection attempt.
type Options struct {
	Host     string
	Port     int
	ClientID string
	Username string
	Password string
}

// BrokerURL builds the websocket address for the broker. Port 443 selects
// the secure sub-protocol, anything else is plain ws.
func BrokerURL(host string, port int) string {
	scheme := "ws"
	if port == securePort {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d/mqtt", scheme, host, port)
}

// PahoClient implements Client using eclipse/paho.
type PahoClient struct {
	client mqtt.Client
	events Events
	log    zerolog.Logger
}

// New creates a Paho-backed client wired to the given event sink.
func New(opts Options, events Events, log zerolog.Logger) *PahoClient {
	c := &PahoClient{
		events: events,
		log:    log,
	}

	co := mqtt.NewClientOptions().
		AddBroker(BrokerURL(opts.Host, opts.Port)).
		SetClientID(opts.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(reconnectInterval).
		SetKeepAlive(keepAlive).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(func(mqtt.Client) {
			c.log.Debug().Msg("broker acknowledged connection")
			events.OnConnect()
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			c.log.Debug().Err(err).Msg("connection lost")
			events.OnConnectionLost(err)
		})

	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}

	c.client = mqtt.NewClient(co)
	return c
}

// Connect starts a connection attempt and returns immediately. Success is
// reported through OnConnect, failure through OnConnectError.
func (c *PahoClient) Connect() {
	token := c.client.Connect()
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.Debug().Err(err).Msg("connect failed")
			c.events.OnConnectError(err)
		}
	}()
}

// Subscribe starts a subscription attempt and returns immediately. The
// outcome is reported through OnSubscribed.
func (c *PahoClient) Subscribe(topic string) {
	token := c.client.Subscribe(topic, 0, func(_ mqtt.Client, m mqtt.Message) {
		c.events.OnMessage(Message{Topic: m.Topic(), Payload: m.Payload()})
	})
	go func() {
		token.Wait()
		c.events.OnSubscribed(topic, token.Error())
	}()
}

// Disconnect closes the connection, waiting briefly for in-flight work.
func (c *PahoClient) Disconnect() {
	c.client.Disconnect(disconnectQuiesce)
}

// IsConnected reports the client's view of the connection.
func (c *PahoClient) IsConnected() bool {
	return c.client.IsConnected()
}
