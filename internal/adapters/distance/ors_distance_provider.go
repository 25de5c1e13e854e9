package distance

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/obs"
	"courier-tracking-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// ORSDistanceProvider implements DistanceProvider using the OpenRouteService
// matrix endpoint, with an optional persistent cache in front of it.
//
// The provider is safe for concurrent use.
type ORSDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   ports.DistanceCache
	backoff time.Duration
}

type ORSOption func(*ORSDistanceProvider)

func WithBaseURL(u string) ORSOption {
	return func(o *ORSDistanceProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithProfile(profile string) ORSOption {
	return func(o *ORSDistanceProvider) { o.profile = profile }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSDistanceProvider) { o.session = c }
}

// WithRetryBackoff sets the initial wait between retried requests.
func WithRetryBackoff(d time.Duration) ORSOption {
	return func(o *ORSDistanceProvider) { o.backoff = d }
}

func WithDistanceCache(c ports.DistanceCache) ORSOption {
	return func(o *ORSDistanceProvider) { o.cache = c }
}

func NewORSDistanceProvider(apiKey string, opts ...ORSOption) (*ORSDistanceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDistanceProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// Delegate to batched path to reuse caching and matrix logic.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Location,
	destination domain.Location,
) (ports.DistanceResult, error) {
	results, err := o.GetDistances(ctx, origin, []domain.Location{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distances %s -> %s: %w",
			origin.Key(), destination.Key(), err,
		)
	}

	result, ok := results[destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %s -> %s", origin.Key(), destination.Key())
	}

	return result, nil
}

// GetDistances computes distances from a single origin to many destinations,
// keyed by Location.Key(). A destination equal to the origin is zero.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	out := make(map[string]ports.DistanceResult, len(destinations))
	if len(destinations) == 0 {
		return out, nil
	}

	originKey := origin.Key()

	seen := make(map[string]struct{}, len(destinations))
	destKeys := make([]string, 0, len(destinations))
	destByKey := make(map[string]domain.Location, len(destinations))
	for _, d := range destinations {
		k := d.Key()
		if k == originKey {
			out[k] = ports.DistanceResult{}
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		destKeys = append(destKeys, k)
		destByKey[k] = d
	}

	if len(destKeys) == 0 {
		return out, nil
	}

	// Check persistent distance cache before issuing external API calls.
	if o.cache != nil {
		hits, err := o.cache.GetMany(ctx, originKey, destKeys)
		if err != nil {
			log.Printf("distance cache read failed: origin=%s err=%v", originKey, err)
		}
		for k, v := range hits {
			out[k] = v
		}
	}

	misses := make([]string, 0, len(destKeys))
	missCoords := make([]domain.Location, 0, len(destKeys))
	for _, k := range destKeys {
		if _, ok := out[k]; !ok {
			misses = append(misses, k)
			missCoords = append(missCoords, destByKey[k])
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, origin, misses, missCoords)
	if err != nil {
		return nil, fmt.Errorf(
			"fetching matrix row: %w",
			err,
		)
	}

	missing := make([]string, 0)
	for _, k := range misses {
		if _, ok := fetched[k]; !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"ORS matrix service did not return the following destinations: %s",
			strings.Join(missing, ", "),
		)
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, originKey, fetched); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}

	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}
