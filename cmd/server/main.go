package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/jvgags/Poe-Write/internal/assist"
	"github.com/jvgags/Poe-Write/internal/config"
	"github.com/jvgags/Poe-Write/internal/dragdrop"
	"github.com/jvgags/Poe-Write/internal/export"
	"github.com/jvgags/Poe-Write/internal/handler"
	"github.com/jvgags/Poe-Write/internal/markup"
	"github.com/jvgags/Poe-Write/internal/middleware"
	"github.com/jvgags/Poe-Write/internal/persist"
	"github.com/jvgags/Poe-Write/internal/session"
	"github.com/jvgags/Poe-Write/internal/store"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"state_path", cfg.StatePath,
	)

	// Load the encrypted state blob; a missing file is a fresh install.
	gateway := persist.NewGateway(cfg.StatePath, cfg.StatePassphrase, logger)
	state, err := gateway.Load()
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	st := store.New(gateway, logger)
	st.LoadState(state)
	logger.Info("state loaded",
		"projects", len(state.Projects),
		"documents", len(state.Documents),
		"folders", len(state.Folders),
	)

	converter := markup.NewConverter(logger)
	renderer := markup.NewRenderer()
	sessions := session.NewManager(st, converter, renderer, logger)

	// The completion provider: real OpenRouter traffic when a key is
	// configured, placeholder text otherwise.
	var provider assist.Provider
	if cfg.OpenRouterAPIKey != "" {
		provider = assist.NewOpenRouterProvider(cfg.OpenRouterURL, cfg.OpenRouterAPIKey, cfg.AppReferer, cfg.AppTitle, logger)
		logger.Info("completion provider configured", "provider", "openrouter")
	} else {
		provider = assist.NewLoremProvider()
		logger.Warn("no API key configured, using placeholder completion provider")
	}
	orchestrator := assist.NewOrchestrator(st, provider, logger)

	dragController := dragdrop.NewController(st, nil, dragdrop.LogNotifier{Logger: logger}, logger)
	exporter := export.NewWriter(converter)
	cloud := persist.NewCloudSync(cfg.SyncEndpoint, cfg.SyncCredential, logger)
	if cloud.Enabled() {
		logger.Info("cloud sync configured", "endpoint", cfg.SyncEndpoint)
	}

	projectHandler := handler.NewProjectHandler(st, logger)
	folderHandler := handler.NewFolderHandler(st, logger)
	docHandler := handler.NewDocumentHandler(st, logger)
	treeHandler := handler.NewTreeHandler(st, logger)
	dragHandler := handler.NewDragHandler(dragController, logger)
	editorHandler := handler.NewEditorHandler(sessions, logger)
	assistHandler := handler.NewAssistHandler(orchestrator, sessions, st, logger)
	settingsHandler := handler.NewSettingsHandler(st, sessions, logger)
	stateHandler := handler.NewStateHandler(st, sessions, gateway, cloud, exporter, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", stateHandler.Health)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)
	mux.HandleFunc("POST /api/projects/{id}/reorder", projectHandler.ReorderProject)
	mux.HandleFunc("POST /api/projects/{id}/copy", projectHandler.CopyProject)

	// Project tree and export
	mux.HandleFunc("GET /api/projects/{id}/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/projects/{id}/export", stateHandler.ExportDraft)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/toggle", folderHandler.ToggleCollapse)
	mux.HandleFunc("POST /api/folders/{id}/reparent", folderHandler.ReparentFolder)
	mux.HandleFunc("POST /api/folders/{id}/reorder", folderHandler.ReorderFolder)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/projects/{id}/documents", docHandler.ListDocuments)
	mux.HandleFunc("POST /api/projects/{id}/documents/toggle-all", docHandler.ToggleAll)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/duplicate", docHandler.DuplicateDocument)
	mux.HandleFunc("POST /api/documents/{id}/toggle", docHandler.ToggleEnabled)
	mux.HandleFunc("POST /api/documents/{id}/move", docHandler.MoveDocument)
	mux.HandleFunc("POST /api/documents/{id}/reorder", docHandler.ReorderDocument)

	// Drag gesture routes
	mux.HandleFunc("POST /api/drag/start", dragHandler.Start)
	mux.HandleFunc("POST /api/drag/hover", dragHandler.Hover)
	mux.HandleFunc("POST /api/drag/drop", dragHandler.Drop)
	mux.HandleFunc("POST /api/drag/drop-end", dragHandler.DropAtEnd)
	mux.HandleFunc("POST /api/drag/cancel", dragHandler.Cancel)

	// Editor session routes
	mux.HandleFunc("POST /api/editor/open", editorHandler.Open)
	mux.HandleFunc("POST /api/editor/input", editorHandler.Input)
	mux.HandleFunc("POST /api/editor/preview-input", editorHandler.PreviewInput)
	mux.HandleFunc("POST /api/editor/mode", editorHandler.SetMode)
	mux.HandleFunc("POST /api/editor/save", editorHandler.Save)
	mux.HandleFunc("POST /api/editor/close", editorHandler.Close)
	mux.HandleFunc("GET /api/editor/decorations", editorHandler.Decorations)
	mux.HandleFunc("POST /api/editor/search", editorHandler.Search)
	mux.HandleFunc("POST /api/editor/search/next", editorHandler.SearchNext)
	mux.HandleFunc("POST /api/editor/search/prev", editorHandler.SearchPrev)
	mux.HandleFunc("POST /api/editor/search/replace", editorHandler.Replace)

	// AI assist routes
	mux.HandleFunc("POST /api/assist/continue", assistHandler.Continue)
	mux.HandleFunc("POST /api/assist/improve", assistHandler.Improve)
	mux.HandleFunc("POST /api/assist/brainstorm", assistHandler.Brainstorm)
	mux.HandleFunc("POST /api/assist/go", assistHandler.GoGenerate)
	mux.HandleFunc("POST /api/assist/stop", assistHandler.Stop)
	mux.HandleFunc("POST /api/assist/accept", assistHandler.Accept)
	mux.HandleFunc("POST /api/assist/reject", assistHandler.Reject)
	mux.HandleFunc("POST /api/assist/chat", assistHandler.Chat)
	mux.HandleFunc("GET /api/assist/chat", assistHandler.ChatHistory)
	mux.HandleFunc("DELETE /api/assist/chat", assistHandler.ClearChat)

	// Settings routes
	mux.HandleFunc("GET /api/settings", settingsHandler.GetSettings)
	mux.HandleFunc("PUT /api/settings", settingsHandler.UpdateSettings)

	// Backup and sync routes
	mux.HandleFunc("GET /api/backup", stateHandler.ExportBackup)
	mux.HandleFunc("POST /api/backup/import", stateHandler.ImportBackup)
	mux.HandleFunc("POST /api/sync/push", stateHandler.SyncPush)
	mux.HandleFunc("POST /api/sync/pull", stateHandler.SyncPull)

	// Apply middleware in reverse order (they wrap each other)
	var root http.Handler = mux
	root = middleware.RequestLogging(logger)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Flush the open session and the state blob before exit; the async
	// saver may still have a write in flight.
	if err := sessions.Close(); err != nil {
		logger.Error("final session save failed", "error", err)
	}
	if err := gateway.Write(st.Snapshot()); err != nil {
		logger.Error("final state write failed", "error", err)
	}
	logger.Info("server stopped")
}
