package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/jefflaplante/padatious-go/internal/datadir"
	"github.com/jefflaplante/padatious-go/internal/store"
	"github.com/jefflaplante/padatious-go/intents"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve calc_intents over a WebSocket endpoint",
	Long:  `serve loads every trained intent in the resolved cache directory and exposes /ws/match for streaming CalcIntents queries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type matchRequest struct {
	Query string `json:"query"`
}

type matchResponse struct {
	Results []intents.MatchData `json:"results,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	dd, err := datadir.New(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	langDir, err := dd.EnsureLanguage(lang)
	if err != nil {
		return fmt.Errorf("ensure language directory: %w", err)
	}

	backing, err := store.NewFileStore(langDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}
	defer backing.Close()

	names, err := discoverIntentNames(langDir)
	if err != nil {
		return fmt.Errorf("discover trained intents: %w", err)
	}

	container := intents.New(backing, nil)
	for _, name := range names {
		if err := container.LoadIntent(name); err != nil {
			return fmt.Errorf("load intent %q: %w", name, err)
		}
	}
	log.Printf("Loaded %d trained intent(s) from %s", len(names), langDir)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws/match", handleMatchSocket(container))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down padatious serve")
		cancel()
		server.Close()
	}()

	log.Printf("padatious serve listening on :%d", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	<-ctx.Done()
	return nil
}

// handleMatchSocket upgrades the connection and answers one matchRequest
// per incoming text message with its matchResponse, until the client
// disconnects. One goroutine per connection, no session/auth state.
func handleMatchSocket(container *intents.IntentContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for {
			var req matchRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}

			results := container.CalcIntents(req.Query)
			if err := conn.WriteJSON(matchResponse{Results: results}); err != nil {
				log.Printf("websocket write failed: %v", err)
				return
			}
		}
	}
}
