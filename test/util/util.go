// Package util carries the shared pieces of the integration suite:
// StartMosquitto brings up a disposable broker in a container for MQTT round
// trips, WaitForMetric polls a Prometheus endpoint until a metric shows up,
// and WriteProblemFile lays down a problem file for solver runs.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openfreight/loadplan/core/model"
	"github.com/openfreight/loadplan/infra/probfile"
)

// MetricTimeout is how long callers should give WaitForMetric by default.
const MetricTimeout = 5 * time.Second

const (
	brokerReadyTimeout = 5 * time.Second
	probeEvery         = 100 * time.Millisecond
)

// WriteProblemFile writes the loads as <dir>/<name>.txt in the problem file
// format and returns the path.
func WriteProblemFile(dir, name string, loads []model.Load) (string, error) {
	path := filepath.Join(dir, name+".txt")
	if err := probfile.WriteFile(path, loads); err != nil {
		return "", err
	}
	return path, nil
}

// WaitForMetric polls the metrics URL until substr appears in the exposition
// output or the context is done.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	for {
		if body, err := fetch(ctx, metricsURL); err == nil && strings.Contains(body, substr) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q never appeared: %w", substr, ctx.Err())
		case <-time.After(probeEvery):
		}
	}
}

func fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}

// StartMosquitto runs an anonymous-access Mosquitto broker in a container and
// returns its URL with a cleanup function. It blocks until the broker takes
// connections.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	dir, err := os.MkdirTemp("", "mosquitto")
	if err != nil {
		return "", nil, err
	}
	confPath := filepath.Join(dir, "mosquitto.conf")
	conf := "listener 1883\nallow_anonymous true\npersistence false\n"
	if err := os.WriteFile(confPath, []byte(conf), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}

	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			ExposedPorts: []string{"1883/tcp"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
			Files: []tc.ContainerFile{{
				HostFilePath:      confPath,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0o644,
			}},
		},
		Started: true,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	cleanup := func() {
		_ = cont.Terminate(context.Background())
		_ = os.RemoveAll(dir)
	}

	broker, err := brokerURL(ctx, cont)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, brokerReadyTimeout)
	defer cancel()
	if err := waitForMQTTReady(waitCtx, broker); err != nil {
		cleanup()
		return "", nil, err
	}
	return broker, cleanup, nil
}

func brokerURL(ctx context.Context, cont tc.Container) (string, error) {
	host, err := cont.Host(ctx)
	if err != nil {
		return "", err
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tcp://%s:%s", host, port.Port()), nil
}

func waitForMQTTReady(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("readiness-probe")
	for {
		cli := paho.NewClient(opts)
		if token := cli.Connect(); token.Wait() && token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("broker not ready: %w", ctx.Err())
		case <-time.After(probeEvery):
		}
	}
}
