package commands

import (
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/advicedice/internal/api"
	"github.com/diogo/advicedice/internal/config"
)

func TestDependenciesClient_Injected(t *testing.T) {
	mock := &api.MockAdviceClient{}
	deps := &Dependencies{Client: mock}

	client, release, err := deps.client(config.DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("client() error = %v", err)
	}
	if client != mock {
		t.Error("expected the injected client")
	}

	release()
	if mock.CloseCalled {
		t.Error("release should leave an injected client open")
	}
}

func TestDependenciesClient_Built(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Endpoint = "http://localhost:8080/advice"

	client, release, err := (&Dependencies{}).client(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("client() error = %v", err)
	}
	if client.Endpoint() != cfg.Endpoint {
		t.Errorf("Endpoint() = %s, want %s", client.Endpoint(), cfg.Endpoint)
	}
	if client.IsClosed() {
		t.Fatal("built client should start open")
	}

	release()
	if !client.IsClosed() {
		t.Error("release should close a built client")
	}
}
