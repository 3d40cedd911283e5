package logger

import (
	"context"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
)

func TestModuleProvidesLogger(t *testing.T) {
	var resolved *zap.Logger
	app := fxtest.New(t,
		fx.Supply(&config.Config{LogLevel: "warn"}),
		Module,
		fx.Populate(&resolved),
	)
	app.RequireStart()
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	if resolved == nil {
		t.Fatal("expected logger to be populated")
	}
}
