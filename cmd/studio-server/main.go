package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/gemini-studio-kit/internal/api"
	"github.com/shouni/gemini-studio-kit/internal/config"
	"github.com/shouni/gemini-studio-kit/pkg/adapters"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/encoder"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
	"github.com/shouni/gemini-studio-kit/pkg/studio"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("サーバーが異常終了しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	invoker, err := adapters.NewGeminiInvoker(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	dispatcher, err := generator.NewDispatcher(invoker,
		generator.WithTextModel(cfg.TextModel),
		generator.WithImageModel(cfg.ImageModel),
	)
	if err != nil {
		return err
	}
	s, err := studio.New(dispatcher)
	if err != nil {
		return err
	}

	reader, closeStorage, err := newAssetReader(ctx, cfg.StorageBackend)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			slog.Warn("ストレージクライアントのクローズに失敗しました", "error", err)
		}
	}()
	loader, err := encoder.NewLoader(httpkit.New(cfg.HTTPTimeout), reader)
	if err != nil {
		return err
	}
	handler, err := api.NewHandler(s,
		api.WithLoader(loader),
		api.WithMaxUploadBytes(cfg.MaxUploadBytes()),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      cfg.HTTPTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("サーバーを起動します",
			"addr", srv.Addr,
			"text_model", dispatcher.ModelFor(domain.OutputText),
			"image_model", dispatcher.ModelFor(domain.OutputImage),
			"storage_backend", cfg.StorageBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("サーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newAssetReader は STORAGE_BACKEND に応じた gs:// / s3:// の読み込み口を返します。
// 未設定の場合は nil を返し、Loader は HTTP(S) のみを扱います。
func newAssetReader(ctx context.Context, backend string) (encoder.AssetReader, func() error, error) {
	noop := func() error { return nil }

	var (
		factory remoteio.IOFactory
		err     error
	)
	switch backend {
	case config.StorageGCS:
		factory, err = gcsfactory.New(ctx)
	case config.StorageS3:
		factory, err = s3factory.New(ctx)
	default:
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	reader, err := factory.InputReader()
	if err != nil {
		factory.Close()
		return nil, noop, err
	}
	return reader, factory.Close, nil
}
