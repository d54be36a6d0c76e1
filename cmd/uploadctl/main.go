package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Figuu/cemse-sub010/internal/uploadclient"
)

func main() {
	var (
		baseURL     string
		ownerID     string
		category    string
		filePath    string
		partSize    int64
		concurrency int
		retries     int
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the upload API")
	flag.StringVar(&ownerID, "owner", "", "Owner ID the artifact belongs to")
	flag.StringVar(&category, "category", "document", "Upload category")
	flag.StringVar(&filePath, "file", "", "Path to the file to upload")
	flag.Int64Var(&partSize, "part-size", 10<<20, "Part size in bytes")
	flag.IntVar(&concurrency, "concurrency", 4, "Number of parts uploaded in parallel")
	flag.IntVar(&retries, "retries", 3, "Retries per part")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if ownerID == "" || filePath == "" {
		logger.Error("-owner and -file flags are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	client := uploadclient.New(uploadclient.Config{
		BaseURL:     baseURL,
		PartSize:    partSize,
		Concurrency: concurrency,
		MaxRetries:  retries,
		RetryWait:   500 * time.Millisecond,
	}, logger)

	file, err := client.Upload(ctx, ownerID, category, filePath)
	if err != nil {
		logger.Error("upload failed", "file", filePath, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}
