package app

import (
	"log/slog"
	"os"

	"github.com/phamm25/ai-chatbot/internal/chat"
	"github.com/phamm25/ai-chatbot/internal/dataset"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.dataset.enabled") {
		if a.config.GetBool("modules.chat.enabled") {
			slog.Warn("module chat requires module dataset, both are disabled")
		}
		return
	}

	ds, err := dataset.New(dataset.Dependency{
		Config: a.config,
		Router: a.router,
		ID:     a.uuid,
		Cache:  a.cache,
	})
	if err != nil {
		slog.Error("failed to init module dataset", "error", err)
		os.Exit(1)
	}
	a.addCloser("Dataset", ds.Stop)

	if a.config.GetBool("modules.chat.enabled") {
		_, err := chat.New(chat.Dependency{
			Config:    a.config,
			Router:    a.router,
			ID:        a.uuid,
			MessageID: a.snowflake,
			Datasets:  ds.Usecase,
			CSVBytes:  ds.MaxBytes,
		})
		if err != nil {
			slog.Error("failed to init module chat", "error", err)
			os.Exit(1)
		}
	}
}
