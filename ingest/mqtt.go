// Package ingest subscribes to sensor readings over MQTT and stores them as
// samples through the same path as the HTTP API.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/services"
)

const (
	sourceMQTT     = "mqtt"
	qos            = 1
	connectTimeout = 10 * time.Second
	handleTimeout  = 5 * time.Second
)

// Reading is the sensor payload. Location falls back to the sensor id and
// a missing timestamp means now.
type Reading struct {
	SensorID    string          `json:"sensorId"`
	Location    string          `json:"location"`
	Timestamp   models.JSONTime `json:"timestamp"`
	PH          *float64        `json:"ph"`
	TDS         *float64        `json:"tds"`
	Turbidity   *float64        `json:"turbidity"`
	Chlorine    *float64        `json:"chlorine"`
	Temperature *float64        `json:"temperature,omitempty"`
}

func (r Reading) input() services.SampleInput {
	loc := strings.TrimSpace(r.Location)
	if loc == "" {
		loc = r.SensorID
	}
	in := services.SampleInput{
		Location:    loc,
		PH:          r.PH,
		TDS:         r.TDS,
		Turbidity:   r.Turbidity,
		Chlorine:    r.Chlorine,
		Temperature: r.Temperature,
	}
	if !r.Timestamp.IsZero() {
		t := r.Timestamp.Time()
		in.Timestamp = &t
	}
	if r.SensorID != "" {
		in.Notes = "Sensor " + r.SensorID
	}
	return in
}

// SampleCreator is the part of the sample service the subscriber needs.
type SampleCreator interface {
	Create(ctx context.Context, in services.SampleInput, source string) (*models.Sample, error)
}

type Subscriber struct {
	client  mqtt.Client
	topic   string
	samples SampleCreator
}

func NewSubscriber(broker, clientID, topic string, samples SampleCreator) *Subscriber {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)
	s := &Subscriber{topic: topic, samples: samples}
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if token := c.Subscribe(topic, qos, s.onMessage); token.Wait() && token.Error() != nil {
			log.Printf("❌ MQTT subscribe to %s failed: %v", topic, token.Error())
			return
		}
		log.Printf("📡 Subscribed to MQTT topic %s", topic)
	})
	s.client = mqtt.NewClient(opts)
	return s
}

// Start connects; subscription happens on every (re)connect.
func (s *Subscriber) Start() error {
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect: timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

func (s *Subscriber) Stop() {
	if s.client.IsConnected() {
		s.client.Unsubscribe(s.topic).Wait()
		s.client.Disconnect(250)
	}
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	if _, err := s.Handle(ctx, msg.Payload()); err != nil {
		log.Printf("⚠️  Dropped MQTT reading on %s: %v", msg.Topic(), err)
	}
}

// Handle decodes one payload and stores it.
func (s *Subscriber) Handle(ctx context.Context, payload []byte) (*models.Sample, error) {
	var r Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode reading: %w", err)
	}
	sample, err := s.samples.Create(ctx, r.input(), sourceMQTT)
	if err != nil {
		return nil, err
	}
	log.Printf("💧 Ingested %s reading: QI %d (%s)", sample.Location, sample.QualityIndex, sample.Status)
	return sample, nil
}
