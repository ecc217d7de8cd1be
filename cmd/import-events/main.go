package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/staypulse/pricingservice/internal/catalog/postgres"
	"github.com/staypulse/pricingservice/internal/config"
	"github.com/staypulse/pricingservice/internal/domain"
	sharedlog "github.com/staypulse/pricingservice/internal/log"
)

// Imports an event catalog CSV into Postgres. Expected columns:
// title,date,date_start,date_end,venue,event_type,genre,headline_artist,
// status,ticket_prices_json,free_admission
func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: import-events [-config config.yaml] <csv-file-path>")
	}
	csvFilePath := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := sharedlog.Init(cfg.Log.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	store, err := postgres.NewStore(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	events, err := readEventsFromCSV(csvFilePath)
	if err != nil {
		log.Fatalf("Failed to read events CSV: %v", err)
	}

	imported := 0
	for _, event := range events {
		if err := store.UpsertEvent(ctx, event); err != nil {
			log.Fatalf("Failed to import event %q: %v", event.Title, err)
		}
		imported++
	}

	fmt.Printf("Imported %d events from %s\n", imported, csvFilePath)
}

func readEventsFromCSV(path string) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 11

	// Skip the header row.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var events []domain.Event
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		event := domain.Event{
			Title:          record[0],
			Date:           record[1],
			DateStart:      record[2],
			DateEnd:        record[3],
			Venue:          record[4],
			EventType:      record[5],
			Genre:          record[6],
			HeadlineArtist: record[7],
			Status:         domain.EventStatus(record[8]),
		}
		if record[9] != "" {
			if err := json.Unmarshal([]byte(record[9]), &event.TicketPrices); err != nil {
				return nil, fmt.Errorf("line %d: bad ticket prices JSON: %w", line, err)
			}
		}
		if record[10] != "" {
			free, err := strconv.ParseBool(record[10])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad free_admission flag: %w", line, err)
			}
			event.FreeAdmission = free
		}

		if event.Title == "" {
			return nil, fmt.Errorf("line %d: event title is required", line)
		}
		if event.Date == "" && (event.DateStart == "" || event.DateEnd == "") {
			return nil, fmt.Errorf("line %d: event needs a date or a start/end pair", line)
		}
		events = append(events, event)
	}
	return events, nil
}
