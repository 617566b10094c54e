package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch sink
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// ElasticsearchSink indexes command-usage entries into Elasticsearch
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchSink creates the sink and ensures the index exists
func NewElasticsearchSink(config ElasticsearchConfig) (*ElasticsearchSink, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "imperialbot"
	}

	sink := &ElasticsearchSink{
		client: client,
		index:  config.IndexPrefix + "_commands",
	}

	if err := sink.initIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing command index: %w", err)
	}

	return sink, nil
}

// initIndex creates the command index if it doesn't exist
func (s *ElasticsearchSink) initIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index})
	if err != nil {
		return fmt.Errorf("error checking if command index exists: %w", err)
	}

	if res.StatusCode != 404 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"guild_id": { "type": "keyword" },
				"user_id": { "type": "keyword" },
				"command": { "type": "keyword" },
				"args": { "type": "keyword" },
				"duration_ns": { "type": "long" },
				"error": { "type": "text" },
				"timestamp": { "type": "date" }
			}
		}
	}`

	req := esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  bytes.NewReader([]byte(mapping)),
	}

	createRes, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("error creating command index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating command index: %s", createRes.String())
	}

	return nil
}

// Record implements Sink
func (s *ElasticsearchSink) Record(ctx context.Context, entry Entry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling audit entry: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(jsonData),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(entry.ID),
	)
	if err != nil {
		return fmt.Errorf("error indexing audit entry: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing audit entry: %s", res.String())
	}

	return nil
}

// Close implements Sink
func (s *ElasticsearchSink) Close() error {
	return nil
}
