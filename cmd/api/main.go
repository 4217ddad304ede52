package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/twaasoulElm3refa/editor-tool/db"
	"github.com/twaasoulElm3refa/editor-tool/internal/auth"
	"github.com/twaasoulElm3refa/editor-tool/internal/handler"
	"github.com/twaasoulElm3refa/editor-tool/internal/queue"
	"github.com/twaasoulElm3refa/editor-tool/internal/repository"
	"github.com/twaasoulElm3refa/editor-tool/pkg/llm"
	"github.com/twaasoulElm3refa/editor-tool/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	editorRepo := repository.NewEditorRepository(db.DB)
	taskQueue := queue.NewRedisQueue()
	completer := newCompleter()
	sessions := auth.NewManager(os.Getenv("SESSION_SECRET"))

	newsClient := news.NewNewsAPIClient(os.Getenv("NEWS_API_KEY"))
	newsLanguage := os.Getenv("NEWS_LANGUAGE")
	if newsLanguage == "" {
		newsLanguage = "ar"
	}
	autoSearch := os.Getenv("NEWS_AUTO_SEARCH") == "true"

	editorHandler := handler.NewEditorHandler(editorRepo, completer, taskQueue)
	sessionHandler := handler.NewSessionHandler(sessions)
	chatHandler := handler.NewChatHandler(sessions, completer, newsClient, autoSearch, newsLanguage)
	newsHandler := handler.NewNewsHandler(newsClient, newsLanguage)

	r := gin.Default()

	var allowedOrigins []string
	if wpOrigin := os.Getenv("WP_ORIGIN"); wpOrigin != "" {
		allowedOrigins = append(allowedOrigins, wpOrigin)
	} else {
		allowedOrigins = append(allowedOrigins, "*")
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.POST("/editor_process", editorHandler.ProcessEditor)
	r.POST("/editor_enqueue", editorHandler.EnqueueEditor)
	r.GET("/editor_tasks/:id", editorHandler.GetTask)
	r.POST("/session", sessionHandler.CreateSession)
	r.POST("/chat", chatHandler.Chat)
	r.GET("/news_search", newsHandler.Search)
	r.GET("/health", editorHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// newCompleter picks the completion provider from the environment. Separate
// model names serve the synchronous editor path and the streaming chat path.
func newCompleter() llm.Completer {
	editorModel := os.Getenv("EDITOR_MODEL")
	chatModel := os.Getenv("CHAT_MODEL")

	if os.Getenv("COMPLETION_PROVIDER") == "anthropic" {
		return llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"), editorModel, chatModel)
	}

	return llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), editorModel, chatModel)
}
