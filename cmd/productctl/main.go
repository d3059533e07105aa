package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"productstudio/internal/adapter/repo"
	"productstudio/internal/domain"
	"productstudio/internal/fulfillment"
	"productstudio/internal/infra"
)

func main() {
	_ = godotenv.Load()

	if err := newApp(openService).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// productService is the subset of the fulfillment service the CLI drives.
type productService interface {
	Product(ctx context.Context, sku int64) (*domain.Product, error)
	Recompute(ctx context.Context, sku int64) (*domain.Product, bool, error)
}

type serviceOpener func(ctx context.Context) (productService, func(), error)

func newApp(open serviceOpener) *cli.App {
	skuFlag := &cli.Int64Flag{Name: "sku", Usage: "product SKU", Required: true}
	return &cli.App{
		Name:  "productctl",
		Usage: "Inspect and repair product fulfillment records",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the stored product record",
				Flags: []cli.Flag{skuFlag},
				Action: func(c *cli.Context) error {
					svc, done, err := open(c.Context)
					if err != nil {
						return err
					}
					defer done()
					p, err := svc.Product(c.Context, c.Int64("sku"))
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, p)
				},
			},
			{
				Name:  "recompute",
				Usage: "re-evaluate the fulfillment status and persist it when it changed",
				Flags: []cli.Flag{skuFlag},
				Action: func(c *cli.Context) error {
					svc, done, err := open(c.Context)
					if err != nil {
						return err
					}
					defer done()
					p, changed, err := svc.Recompute(c.Context, c.Int64("sku"))
					if err != nil {
						return err
					}
					if !changed {
						fmt.Fprintln(c.App.Writer, "status unchanged")
					}
					return printJSON(c.App.Writer, p)
				},
			},
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func openService(ctx context.Context) (productService, func(), error) {
	cfg, err := infra.LoadStoreConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := infra.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)
	stores, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	svc := fulfillment.NewService(stores.Products, nil, logger, nil)
	return svc, func() { _ = stores.Close(context.Background()) }, nil
}
