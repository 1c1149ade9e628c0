package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"device-event-pipeline/internal/model"
)

type Config struct {
	Endpoint string
	Batches  int
	Items    int
	Interval time.Duration
}

var (
	deviceTypes  = []string{"laptop", "server", "phone", "tablet"}
	deviceStates = []string{"erased", "erasure failed", "pending"}
)

func parseFlags() *Config {
	c := &Config{}
	flag.StringVar(&c.Endpoint, "endpoint", "", "Base URL of the pipeline (required)")
	flag.IntVar(&c.Batches, "batches", 1, "Number of batches to send")
	flag.IntVar(&c.Items, "items", 25, "Events per batch")
	flag.DurationVar(&c.Interval, "interval", 0, "Pause between batches")
	flag.Parse()

	if c.Endpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: -endpoint is required")
		flag.Usage()
		os.Exit(1)
	}

	return c
}

func generateBatch(rng *rand.Rand, n int) model.IngestRequest {
	items := make([]model.DeviceEventInput, 0, n)
	for i := 0; i < n; i++ {
		day := time.Now().UTC().AddDate(0, 0, -rng.Intn(4))
		ts := time.Date(day.Year(), day.Month(), day.Day(), rng.Intn(24), 0, 0, 0, time.UTC)

		items = append(items, model.DeviceEventInput{
			Type:      deviceTypes[rng.Intn(len(deviceTypes))],
			State:     deviceStates[rng.Intn(len(deviceStates))],
			Timestamp: ts.Format(time.RFC3339),
		})
	}
	return model.IngestRequest{ProcessedDevices: items}
}

func main() {
	cfg := parseFlags()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < cfg.Batches; i++ {
		payload, err := json.Marshal(generateBatch(rng, cfg.Items))
		if err != nil {
			log.Fatalf("marshal batch: %v", err)
		}

		resp, err := client.Post(cfg.Endpoint+"/ingest", "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Fatalf("post batch: %v", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		log.Printf("batch %d: %d %s", i+1, resp.StatusCode, body)

		if cfg.Interval > 0 && i < cfg.Batches-1 {
			time.Sleep(cfg.Interval)
		}
	}
}
