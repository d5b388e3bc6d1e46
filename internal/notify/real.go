package notify

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/mycolab/sporely/internal/run"
)

// MQTTNotifier publishes to an actual MQTT broker.
type MQTTNotifier struct {
	client paho.Client
}

// NewMQTTNotifier creates a notifier connected to the given broker.
// Connection failure degrades rather than aborts: auto-reconnect keeps
// retrying in the background and publishes fail quietly until then.
func NewMQTTNotifier(broker string) (*MQTTNotifier, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("sporelyd").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTNotifier{client: client}, nil
}

// NotifyComplete publishes a completion event.
func (n *MQTTNotifier) NotifyComplete(c run.Completion) error {
	payload, err := FormatCompletion(c)
	if err != nil {
		return fmt.Errorf("format completion: %w", err)
	}

	// QoS 1: the user walked away from the cooker, the notification matters.
	token := n.client.Publish(Topic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishSystem publishes a daemon lifecycle event.
func (n *MQTTNotifier) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	token := n.client.Publish(TopicSystem, 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}
	return nil
}

// IsConnected reports the broker connection state.
func (n *MQTTNotifier) IsConnected() bool {
	return n.client.IsConnected()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() error {
	n.client.Disconnect(1000) // 1 second timeout
	return nil
}
