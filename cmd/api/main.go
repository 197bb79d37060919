package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Jamessshhh/Expense-Odyssey/internal/config"
	"github.com/Jamessshhh/Expense-Odyssey/internal/database"
	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/expense/store"
	odysseyHttp "github.com/Jamessshhh/Expense-Odyssey/internal/http"
	expenseHandler "github.com/Jamessshhh/Expense-Odyssey/internal/http/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/http/importcsv"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
	"github.com/Jamessshhh/Expense-Odyssey/internal/prefs"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Storage.Driver, cfg.DSN())
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svc, err := expense.NewService(context.Background(), store.New(prefs.New(db)))
	if err != nil {
		slog.Error("failed to load expenses", "error", err)
		os.Exit(1)
	}

	var (
		expenseH = expenseHandler.NewHandler(svc)
		importH  = importcsv.NewHandler(importer.New(), svc)
	)

	router := odysseyHttp.New(expenseH, importH, cfg.API.Secret)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
