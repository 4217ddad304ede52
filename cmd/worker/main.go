package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/twaasoulElm3refa/editor-tool/db"
	"github.com/twaasoulElm3refa/editor-tool/internal/model"
	"github.com/twaasoulElm3refa/editor-tool/internal/queue"
	"github.com/twaasoulElm3refa/editor-tool/internal/repository"
	"github.com/twaasoulElm3refa/editor-tool/pkg/llm"
	"github.com/twaasoulElm3refa/editor-tool/pkg/prompt"
)

var errNoText = errors.New("no text to process for row")

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	editorRepo := repository.NewEditorRepository(db.DB)
	taskQueue := queue.NewRedisQueue()
	completer := newCompleter()

	for {
		payload, err := db.PopFromQueue(db.EditorQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		var task model.EditorTask
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			slog.Error("invalid task payload in queue", "error", err)
			continue
		}

		taskQueue.SetState(task.TaskID, model.TaskState{Status: model.StatusProcessing})

		result, err := runTask(editorRepo, completer, task)
		if err != nil {
			slog.Error("error processing editor task", "error", err, "task_id", task.TaskID, "row_id", task.RowID)
			taskQueue.SetState(task.TaskID, model.TaskState{
				Status: model.StatusFailed,
				Error:  err.Error(),
			})
			continue
		}

		// The queued caller never sees the result inline, so this path does
		// write the result column back.
		if err := editorRepo.PersistResult(task.RowID, result); err != nil {
			slog.Error("error persisting editor result", "error", err, "task_id", task.TaskID, "row_id", task.RowID)
		}

		taskQueue.SetState(task.TaskID, model.TaskState{
			Status: model.StatusCompleted,
			Result: result,
		})

		slog.Info("editor task completed", "task_id", task.TaskID, "row_id", task.RowID, "tool", task.Tool)
	}
}

// runTask mirrors the synchronous dispatch steps: resolve text, build the
// instruction, call the provider once. No retries.
func runTask(repo *repository.EditorRepository, completer llm.Completer, task model.EditorTask) (string, error) {
	tool, err := prompt.ParseTool(task.Tool)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(task.Text)
	if text == "" {
		stored, err := repo.FetchText(task.RowID)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(stored)
	}

	if text == "" {
		return "", errNoText
	}

	instruction := prompt.Build(tool, prompt.Input{
		Text:        text,
		Date:        task.Date,
		JournalName: task.JournalName,
	})

	return completer.Complete(context.Background(), prompt.EditorSystemPrompt, instruction)
}

func newCompleter() llm.Completer {
	editorModel := os.Getenv("EDITOR_MODEL")

	if os.Getenv("COMPLETION_PROVIDER") == "anthropic" {
		return llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"), editorModel, "")
	}

	return llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), editorModel, "")
}
