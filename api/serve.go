package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/kurasora/kurasora/log"
)

type ServerConfig struct {
	// Addr is the TCP address to listen on, e.g. 127.0.0.1:8080.
	Addr string

	// AllowedOrigins defaults to "*".
	AllowedOrigins []string

	ShowStartBanner bool

	// ShutdownTimeout bounds the wait for in-flight requests after an interrupt.
	ShutdownTimeout time.Duration
}

// Serve blocks until the server fails or an interrupt shuts it down.
func Serve(ctx context.Context, cfg *ServerConfig) error {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	app := NewApp(nil, cfg.AllowedOrigins...)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adaptor.FiberApp(app),
		ReadHeaderTimeout: 30 * time.Second,
	}

	if cfg.ShowStartBanner {
		banner(cfg.Addr)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %s", err)
		}
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func banner(addr string) {
	base := "http://" + addr

	bold := color.New(color.Bold).Add(color.FgGreen)
	_, _ = bold.Printf("%s Server started at %s\n", time.Now().Format(time.DateTime), color.CyanString(base))

	regular := color.New()
	_, _ = regular.Printf("├─ Sources: %s\n", color.CyanString(base+sourcesURL))
	_, _ = regular.Printf("├─ Search:  %s\n", color.CyanString(base+"/api/<source>/search?q="))
	_, _ = regular.Printf("├─ Load:    %s\n", color.CyanString(base+"/api/<source>/load?url="))
	_, _ = regular.Printf("├─ Links:   %s\n", color.CyanString(base+"/api/<source>/links?data="))
	_, _ = regular.Printf("└─ Decrypt: %s\n", color.CyanString(base+decryptURL))
}
