package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/openfreight/loadplan/core/publish"
	"github.com/openfreight/loadplan/infra/mqtt"
	"github.com/openfreight/loadplan/test/util"
)

// TestPlanPublishWithMQTTContainer runs the paho publisher against a real
// broker: the plan envelope must reach a subscriber and the returned ack must
// unblock WaitForAck.
func TestPlanPublishWithMQTTContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx := context.Background()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto not available: %v", err)
	}
	defer cleanup()

	// A stand-in dispatcher that adopts every plan it sees.
	dispatcher := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("dispatcher-sim"))
	if token := dispatcher.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("dispatcher connect: %v", token.Error())
	}
	defer dispatcher.Disconnect(100)

	received := make(chan []byte, 1)
	if token := dispatcher.Subscribe("loadplan/plans/#", 1, func(_ paho.Client, m paho.Message) {
		select {
		case received <- m.Payload():
		default:
		}
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("subscribe: %v", token.Error())
	}

	pub, err := mqtt.NewPahoPublisher(mqtt.Config{
		Broker:   broker,
		ClientID: "loadplan-test",
		AckTopic: "loadplan/acks",
		QoS:      map[string]byte{"plan": 1, "ack": 1},
	})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer pub.Disconnect()
	time.Sleep(250 * time.Millisecond)

	msgID, err := pub.PublishPlan(publish.PlanMessage{
		RunID:    "run-e2e",
		Instance: "e2e",
		Cost:     520,
		Routes:   [][]int{{1}},
		SolvedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	var payload []byte
	select {
	case payload = <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("plan not delivered")
	}
	var envelope struct {
		MessageID string  `json:"message_id"`
		RunID     string  `json:"run_id"`
		Instance  string  `json:"instance"`
		Cost      float64 `json:"cost"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.MessageID != msgID || envelope.RunID != "run-e2e" || envelope.Cost != 520 {
		t.Fatalf("envelope = %+v", envelope)
	}

	ack := fmt.Sprintf(`{"message_id":%q}`, msgID)
	if token := dispatcher.Publish("loadplan/acks", 1, false, []byte(ack)); token.Wait() && token.Error() != nil {
		t.Fatalf("ack publish: %v", token.Error())
	}
	ok, err := pub.WaitForAck(msgID, 5*time.Second)
	if err != nil {
		t.Fatalf("wait for ack: %v", err)
	}
	if !ok {
		t.Fatal("ack not confirmed")
	}
}
