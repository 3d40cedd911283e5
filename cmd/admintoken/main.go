// Command admintoken prints a console token signed with the configured strategy.
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/config"
	"github.com/polkiloo/storeadmin/internal/pkg/auth"
	"github.com/polkiloo/storeadmin/internal/usecase"
)

type options struct {
	Subject string `env:"ADMIN_SUBJECT" envDefault:"admin"`
}

func main() {
	var opts options
	if err := env.Parse(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	var token string
	app := fx.New(
		fx.NopLogger,
		fx.Provide(zap.NewNop),
		config.Module,
		auth.Module,
		fx.Provide(usecase.NewAuthUseCase),
		fx.Invoke(func(uc *usecase.AuthUseCase) error {
			var err error
			token, err = uc.IssueToken(opts.Subject)
			return err
		}),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
