package invalidation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Publisher is the part of mqtt.Client the notifier needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Event is the JSON payload published per invalidated path.
type Event struct {
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// MQTT publishes each invalidated path to "<prefix>/<path>" with QoS 0,
// not retained.
type MQTT struct {
	client Publisher
	prefix string
}

func NewMQTT(client Publisher, prefix string) *MQTT {
	return &MQTT{client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

// Topic maps a view path to its topic. The root view "/" maps to the prefix
// itself.
func (n *MQTT) Topic(path string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		return n.prefix
	}
	return n.prefix + "/" + p
}

func (n *MQTT) Invalidate(ctx context.Context, path string) error {
	payload, err := json.Marshal(Event{Path: path, At: time.Now().UTC()})
	if err != nil {
		return err
	}

	token := n.client.Publish(n.Topic(path), 0, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return errors.New("mqtt publish timed out")
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

// DialMQTT connects a paho client to broker.
func DialMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, errors.New("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return client, nil
}
