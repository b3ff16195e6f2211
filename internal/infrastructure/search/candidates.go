package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

const maxHits = 100

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

var candidateMapping = `{
  "mappings": {
    "properties": {
      "name":       {"type": "text"},
      "email":      {"type": "keyword"},
      "technology": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "level":      {"type": "keyword"},
      "status":     {"type": "keyword"},
      "skills":     {"type": "text"},
      "references": {"type": "text"},
      "createdAt":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the candidate index with its mapping when it does not exist yet.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	res, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = es.Indices.Create(index,
		es.Indices.Create.WithBody(strings.NewReader(candidateMapping)),
		es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return responseErr("create index", res)
}

type candidateDoc struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Technology string   `json:"technology"`
	Level      string   `json:"level"`
	Status     string   `json:"status"`
	Skills     []string `json:"skills"`
	References string   `json:"references,omitempty"`
	CreatedAt  string   `json:"createdAt"`
}

// CandidateIndex keeps a searchable copy of candidate profiles.
type CandidateIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewCandidateIndex(es *elasticsearch.Client, index string) *CandidateIndex {
	return &CandidateIndex{es: es, index: index}
}

func (ci *CandidateIndex) Index(ctx context.Context, c entity.Candidate) error {
	body, err := json.Marshal(candidateDoc{
		Name:       c.Name,
		Email:      c.Email,
		Technology: c.Technology,
		Level:      c.Level,
		Status:     string(c.Status),
		Skills:     c.Skills,
		References: c.References,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	res, err := ci.es.Index(ci.index, bytes.NewReader(body),
		ci.es.Index.WithDocumentID(c.ID),
		ci.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return responseErr("index", res)
}

func (ci *CandidateIndex) Remove(ctx context.Context, id string) error {
	res, err := ci.es.Delete(ci.index, id, ci.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseErr("delete", res)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

func (ci *CandidateIndex) Search(ctx context.Context, query string) ([]string, error) {
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "email", "technology^2", "skills^2", "level", "status", "references"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	res, err := ci.es.Search(
		ci.es.Search.WithContext(ctx),
		ci.es.Search.WithIndex(ci.index),
		ci.es.Search.WithBody(bytes.NewReader(body)),
		ci.es.Search.WithSize(maxHits),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if err := responseErr("search", res); err != nil {
		return nil, err
	}
	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func responseErr(op string, res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}
	return fmt.Errorf("elasticsearch %s: %s", op, res.Status())
}
