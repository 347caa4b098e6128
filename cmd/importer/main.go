package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gasp-api/internal/config"
	"gasp-api/internal/geocoder"
	"gasp-api/internal/models"
	"gasp-api/internal/observability"
	"gasp-api/internal/repository"
	"gasp-api/internal/service"

	"github.com/rs/zerolog"
)

// Adder stores a single location query through the single-match policy.
type Adder interface {
	AddLocation(ctx context.Context, q models.LocationQuery) (*models.GaspLocation, service.Verdict, error)
}

// Summary counts what happened to each imported row.
type Summary struct {
	Stored    int
	NoMatch   int
	Ambiguous int
	Failed    int
}

func main() {
	file := flag.String("file", "", "Path to a CSV file of name,address rows")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	queries, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(queries))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Printf("Error building logger: %v\n", err)
		os.Exit(1)
	}
	ctx := logger.WithContext(context.Background())

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	geo := geocoder.NewClient(cfg.Google.APIKey,
		geocoder.WithBaseURL(cfg.Google.BaseURL),
		geocoder.WithLanguage(cfg.Google.Language),
		geocoder.WithTimeout(cfg.Google.Timeout),
	)
	svc := service.NewLocationService(geo, store, nil)

	summary := importQueries(ctx, svc, queries)

	fmt.Printf("Imported %d records: %d stored, %d no match, %d ambiguous, %d failed\n",
		len(queries), summary.Stored, summary.NoMatch, summary.Ambiguous, summary.Failed)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func parseCSV(filePath string) ([]models.LocationQuery, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readQueries(file)
}

// readQueries reads name,address rows after a header line. Blank addresses are rejected.
func readQueries(r io.Reader) ([]models.LocationQuery, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var queries []models.LocationQuery
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		address := strings.TrimSpace(record[1])
		if address == "" {
			line, _ := reader.FieldPos(1)
			return nil, fmt.Errorf("empty address on line %d", line)
		}

		queries = append(queries, models.LocationQuery{
			Name:          strings.TrimSpace(record[0]),
			AddressString: address,
		})
	}

	return queries, nil
}

// importQueries runs every query through the adder. A failed row is logged and counted; it does not stop the import.
func importQueries(ctx context.Context, adder Adder, queries []models.LocationQuery) Summary {
	logger := zerolog.Ctx(ctx)

	var s Summary
	for _, q := range queries {
		_, verdict, err := adder.AddLocation(ctx, q)
		if err != nil {
			var provErr *geocoder.ProviderError
			if errors.As(err, &provErr) {
				logger.Error().Str("name", q.Name).Str("reason", string(provErr.Status)).Msg("provider failure")
			} else {
				logger.Error().Err(err).Str("name", q.Name).Msg("import failed")
			}
			s.Failed++
			continue
		}

		switch verdict {
		case service.Matched:
			s.Stored++
		case service.NoMatch:
			logger.Info().Str("name", q.Name).Str("address", q.AddressString).Msg("skipped: no match")
			s.NoMatch++
		case service.Ambiguous:
			logger.Info().Str("name", q.Name).Str("address", q.AddressString).Msg("skipped: ambiguous")
			s.Ambiguous++
		}
	}
	return s
}
