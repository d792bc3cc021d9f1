package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
)

// Resolver turns a token's metadata locator into its description
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	// Resolve fetches and parses the document behind uri.
	// Every failure wraps domain.ErrMetadataUnavailable.
	Resolve(ctx context.Context, uri string) (*domain.Metadata, error)
}

// Config holds the gateways used for content-addressed locators
type Config struct {
	IPFSGateways    []string
	ArweaveGateways []string
}

type resolver struct {
	httpClient adapter.HTTPClient
	config     Config
}

// NewResolver creates a metadata resolver
func NewResolver(httpClient adapter.HTTPClient, config Config) Resolver {
	if len(config.IPFSGateways) == 0 {
		config.IPFSGateways = []string{domain.DEFAULT_IPFS_GATEWAY}
	}
	if len(config.ArweaveGateways) == 0 {
		config.ArweaveGateways = []string{domain.DEFAULT_ARWEAVE_GATEWAY}
	}
	return &resolver{httpClient: httpClient, config: config}
}

func (r *resolver) Resolve(ctx context.Context, uri string) (*domain.Metadata, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("%w: empty token uri", domain.ErrMetadataUnavailable)
	}

	raw, err := r.fetch(ctx, normalizeURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMetadataUnavailable, uri, err)
	}

	metadata, err := parseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMetadataUnavailable, uri, err)
	}

	return metadata, nil
}

// normalizeURI maps gateway URLs of IPFS content back to ipfs:// so the configured gateways are used
func normalizeURI(uri string) string {
	if strings.HasPrefix(uri, "http") && strings.Contains(uri, "/ipfs/") {
		parts := strings.SplitN(uri, "/ipfs/", 2)
		if parts[1] != "" {
			return "ipfs://" + parts[1]
		}
	}
	return uri
}

func (r *resolver) fetch(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "data:"):
		return decodeDataURI(uri)
	case strings.HasPrefix(uri, "ipfs://"):
		path := strings.TrimPrefix(strings.TrimPrefix(uri, "ipfs://"), "ipfs/")
		return r.fetchFirst(ctx, gatewayURLs(r.config.IPFSGateways, "ipfs/"+path))
	case strings.HasPrefix(uri, "ar://"):
		return r.fetchFirst(ctx, gatewayURLs(r.config.ArweaveGateways, strings.TrimPrefix(uri, "ar://")))
	case strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://"):
		return r.httpClient.Get(ctx, uri)
	default:
		return nil, fmt.Errorf("unsupported URI scheme")
	}
}

func gatewayURLs(gateways []string, path string) []string {
	urls := make([]string, 0, len(gateways))
	for _, gw := range gateways {
		urls = append(urls, strings.TrimSuffix(gw, "/")+"/"+path)
	}
	return urls
}

// fetchFirst queries every gateway in parallel, returns the first success and
// cancels the rest. It returns only after every request has finished.
func (r *resolver) fetchFirst(ctx context.Context, urls []string) ([]byte, error) {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		body []byte
		err  error
	}
	results := make(chan result, len(urls))

	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			body, err := r.httpClient.Get(ctx, u)
			results <- result{body: body, err: err}
		}(u)
	}

	var lastErr error
	for range urls {
		res := <-results
		if res.err == nil {
			return res.body, nil
		}
		lastErr = res.err
		logger.DebugCtx(ctx, "Gateway fetch failed", zap.Error(res.err))
	}

	return nil, fmt.Errorf("all %d gateways failed, last error: %w", len(urls), lastErr)
}

// decodeDataURI handles data:application/json[;base64],<payload>
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URI format")
	}

	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64: %w", err)
		}
		return decoded, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data URI: %w", err)
	}
	return []byte(decoded), nil
}

type document struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Attributes  []struct {
		TraitType string      `json:"trait_type"`
		Value     interface{} `json:"value"`
	} `json:"attributes"`
}

// parseDocument sniffs the payload and decodes it as a metadata document.
// Gateways answer unknown content with HTML or images, which are rejected before decoding.
func parseDocument(raw []byte) (*domain.Metadata, error) {
	mtype := mimetype.Detect(raw)
	if !mtype.Is("application/json") && !mtype.Is("text/plain") {
		return nil, fmt.Errorf("unexpected content type %s", mtype.String())
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	metadata := &domain.Metadata{
		Name:        doc.Name,
		Description: doc.Description,
		Image:       doc.Image,
		Attributes:  make([]domain.Attribute, 0, len(doc.Attributes)),
	}
	for _, attr := range doc.Attributes {
		value := ""
		if attr.Value != nil {
			value = fmt.Sprint(attr.Value)
		}
		metadata.Attributes = append(metadata.Attributes, domain.Attribute{
			TraitType: attr.TraitType,
			Value:     value,
		})
	}

	return metadata, nil
}

// GatewayURL converts an ipfs:// or ar:// locator into a browsable URL
func GatewayURL(uri string) string {
	if after, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return fmt.Sprintf("%s/ipfs/%s", domain.DEFAULT_IPFS_GATEWAY, strings.TrimPrefix(after, "ipfs/"))
	}
	if after, ok := strings.CutPrefix(uri, "ar://"); ok {
		return fmt.Sprintf("%s/%s", domain.DEFAULT_ARWEAVE_GATEWAY, after)
	}
	return uri
}

// Placeholder stands in for a document that could not be resolved
func Placeholder(tokenID uint64) *domain.Metadata {
	return &domain.Metadata{
		Name:        fmt.Sprintf("NFT #%d", tokenID),
		Attributes:  []domain.Attribute{},
		Placeholder: true,
	}
}
