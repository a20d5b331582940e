package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linesmerrill/scammer-blacklist/api/handlers"
	"github.com/linesmerrill/scammer-blacklist/config"
)

var rootCmd = &cobra.Command{
	Use:   "scammer-blacklist",
	Short: "Web front end of the LinkedIn scammer blacklist",
	RunE:  serve,
}

func init() {
	rootCmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	rootCmd.Flags().String("api-url", "", "base url of the registry api (overrides API_URL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	// a missing .env is fine, the environment is used as is
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		a.Config.Port = port
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		a.Config.APIURL = apiURL
	}

	if err := a.Initialize(); err != nil {
		zap.S().Errorw("failed to initialize app", "error", err)
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.S().Infow("scammer-blacklist is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
			"api", a.Config.APIURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorw("server stopped", "error", err)
		return err
	}
	return nil
}
