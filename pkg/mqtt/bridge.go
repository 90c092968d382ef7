package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const (
	subscribeQos = 1
	disconnectQuiesce = 250 // ms
	handleTimeout = 10 * time.Second
)

// Bridge feeds <root>/<kind>/<device_id> messages into the ingest services.
type Bridge struct {
	topicRoot string
	opts      *paho.ClientOptions
	client    paho.Client
	ingestors map[models.Kind]iot.Ingestor
}

func NewBridge(cfg config.MQTTConfig, ingestors map[models.Kind]iot.Ingestor) *Bridge {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	b := &Bridge{
		topicRoot: strings.Trim(cfg.TopicRoot, "/"),
		opts:      opts,
		ingestors: ingestors,
	}
	// resubscribe after every reconnect
	opts.SetOnConnectHandler(func(c paho.Client) {
		if err := b.subscribe(c); err != nil {
			logger().Error("Subscribe failed", zap.Error(err))
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger().Warn("Connection to broker lost", zap.Error(err))
	})
	return b
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameMQTTBridge)
}

func (b *Bridge) Topic() string {
	return b.topicRoot + "/+/+"
}

func (b *Bridge) Start() error {
	b.client = paho.NewClient(b.opts)
	token := b.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect error: %w", err)
	}
	logger().Info("MQTT bridge connected", zap.String("topic", b.Topic()))
	return nil
}

func (b *Bridge) subscribe(c paho.Client) error {
	token := c.Subscribe(b.Topic(), subscribeQos, b.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.Topic(), err)
	}
	return nil
}

func (b *Bridge) Stop() {
	if b.client == nil {
		return
	}
	b.client.Disconnect(disconnectQuiesce)
}

func (b *Bridge) onMessage(_ paho.Client, msg paho.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := b.HandleMessage(ctx, msg.Topic(), msg.Payload()); err != nil {
		logger().Warn("Dropped message", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}

// ParseTopic splits <root>/<kind>/<device_id>.
func (b *Bridge) ParseTopic(topic string) (models.Kind, string, error) {
	rest, ok := strings.CutPrefix(topic, b.topicRoot+"/")
	if !ok {
		return "", "", fmt.Errorf("topic %q is outside %s", topic, b.topicRoot)
	}
	kind, deviceID, ok := strings.Cut(rest, "/")
	if !ok || kind == "" || deviceID == "" || strings.Contains(deviceID, "/") {
		return "", "", fmt.Errorf("topic %q is not <root>/<kind>/<device_id>", topic)
	}
	return models.Kind(kind), deviceID, nil
}

// HandleMessage decodes one JSON record and stores it. A record without
// device_id takes the one from the topic.
func (b *Bridge) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	kind, deviceID, err := b.ParseTopic(topic)
	if err != nil {
		return err
	}
	ingest, ok := b.ingestors[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q", kind)
	}

	var record map[string]any
	if err := json.Unmarshal(payload, &record); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if record == nil {
		return fmt.Errorf("payload is not a JSON object")
	}
	if id, _ := record["device_id"].(string); id == "" {
		record["device_id"] = deviceID
	}

	key, err := ingest(ctx, record)
	if err != nil {
		return err
	}
	logger().Debug("Ingested record",
		zap.String(common.LoggerFieldIOTCategory, string(kind)),
		zap.String(common.LoggerFieldDeviceID, key.DeviceID),
		zap.Time("time", key.Time),
	)
	return nil
}
