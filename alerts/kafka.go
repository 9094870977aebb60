// Package alerts publishes High and Critical risk predictions to Kafka.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"p9e.in/aquasure/models"
)

// Message is the alert payload. It is keyed by location on the topic.
type Message struct {
	PredictionID          string    `json:"predictionId"`
	Location              string    `json:"location"`
	DataSource            string    `json:"dataSource"`
	RiskLevel             string    `json:"riskLevel"`
	RiskScore             int       `json:"riskScore"`
	PredictedQualityIndex int       `json:"predictedQualityIndex"`
	PredictionDate        time.Time `json:"predictionDate"`
	Factors               []string  `json:"factors"`
	Actions               []string  `json:"actions"`
}

// NewMessage flattens a prediction into an alert.
func NewMessage(p *models.Prediction) Message {
	m := Message{
		PredictionID:          p.ID.String(),
		Location:              p.Location,
		DataSource:            p.DataSource,
		RiskLevel:             string(p.RiskLevel),
		RiskScore:             p.RiskScore,
		PredictedQualityIndex: p.PredictedQualityIndex,
		PredictionDate:        p.PredictionDate,
		Factors:               make([]string, 0, len(p.RiskFactors)),
		Actions:               make([]string, 0, len(p.RecommendedActions)),
	}
	for _, f := range p.RiskFactors {
		m.Factors = append(m.Factors, f.Description)
	}
	for _, a := range p.RecommendedActions {
		m.Actions = append(m.Actions, fmt.Sprintf("[%s] %s", a.Priority, a.Action))
	}
	return m
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		topic: topic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, pred *models.Prediction) error {
	value, err := json.Marshal(NewMessage(pred))
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(pred.Location),
		Value: value,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("write alert to %s: %w", p.topic, err)
	}
	log.Printf("🚨 %s risk alert published for %s (score %d)", pred.RiskLevel, pred.Location, pred.RiskScore)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
