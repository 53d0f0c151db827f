package messaging

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/penwyp/cydconf/internal/util"
)

var (
	ErrNotConnected   = errors.New("mqtt client not connected")
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)

// Client is the subset of the paho client the publisher needs
type Client interface {
	Connect() MQTT.Token
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) MQTT.Token
	Disconnect(quiesce uint)
}

// Options configures the broker connection
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	CAFile   string
	QoS      byte
	Timeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.ClientID == "" {
		hostname, _ := os.Hostname()
		o.ClientID = "cydconf-" + hostname
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.QoS > 2 {
		o.QoS = 1
	}
	return o
}

// NewClient builds a paho client for opts without connecting it
func NewClient(opts Options) (Client, error) {
	opts = opts.withDefaults()
	if opts.Broker == "" {
		return nil, errors.New("broker address is required")
	}

	co := MQTT.NewClientOptions()
	co.AddBroker(opts.Broker)
	co.SetClientID(opts.ClientID)
	co.SetCleanSession(true)
	co.SetConnectTimeout(opts.Timeout)
	co.SetKeepAlive(30 * time.Second)
	co.SetPingTimeout(10 * time.Second)
	co.SetAutoReconnect(false)
	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}

	if opts.CAFile != "" {
		caCert, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates found in %s", opts.CAFile)
		}
		co.SetTLSConfig(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
	}

	co.OnConnectionLost = func(_ MQTT.Client, err error) {
		util.LogWarn("MQTT connection lost", util.F("error", err.Error()))
	}

	return MQTT.NewClient(co), nil
}

// Publisher sends reports to the broker
type Publisher struct {
	client  Client
	qos     byte
	timeout time.Duration
}

func NewPublisher(client Client, opts Options) *Publisher {
	opts = opts.withDefaults()
	return &Publisher{client: client, qos: opts.QoS, timeout: opts.Timeout}
}

// Connect connects the underlying client if needed
func (p *Publisher) Connect() error {
	if p.client.IsConnected() {
		return nil
	}
	token := p.client.Connect()
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt connect: %w", ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	util.LogDebug("connected to MQTT broker")
	return nil
}

// Publish sends payload as a retained message
func (p *Publisher) Publish(topic string, payload []byte) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	util.LogDebug("publishing", util.F("topic", topic), util.F("bytes", len(payload)), util.F("qos", p.qos))

	token := p.client.Publish(topic, p.qos, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("%s: %w", topic, ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
