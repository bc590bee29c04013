package catalog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/pos-analytics/pkg/db"
	"github.com/angelmondragon/pos-analytics/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pos-analytics/pkg/errors"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
)

const defaultProductLimit = 100

// Service serves the reference data behind dashboard filters.
type Service interface {
	Metadata(ctx context.Context) (*Metadata, error)
	ListStores(ctx context.Context, activeOnly bool) ([]StoreDTO, error)
	ListChannels(ctx context.Context) ([]ChannelDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, q ProductQuery) ([]ProductDTO, error)
}

type service struct {
	repo     *Repository
	logg     *logger.Logger
	timeout  time.Duration
	maxLimit int
}

// NewService builds the catalog service. maxLimit caps product listings.
func NewService(repo *Repository, logg *logger.Logger, timeout time.Duration, maxLimit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg, timeout: timeout, maxLimit: maxLimit}, nil
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Metadata loads active stores, channels and categories concurrently.
func (s *service) Metadata(ctx context.Context) (*Metadata, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		stores     []models.Store
		channels   []models.Channel
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stores, err = s.repo.ListStores(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		channels, err = s.repo.ListChannels(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repo.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.classify(ctx, "load metadata", err)
	}

	return &Metadata{
		Stores:     mapAll(stores, storeFromModel),
		Channels:   mapAll(channels, channelFromModel),
		Categories: mapAll(categories, categoryFromModel),
	}, nil
}

func (s *service) ListStores(ctx context.Context, activeOnly bool) ([]StoreDTO, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	stores, err := s.repo.ListStores(ctx, activeOnly)
	if err != nil {
		return nil, s.classify(ctx, "list stores", err)
	}
	return mapAll(stores, storeFromModel), nil
}

func (s *service) ListChannels(ctx context.Context) ([]ChannelDTO, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	channels, err := s.repo.ListChannels(ctx)
	if err != nil {
		return nil, s.classify(ctx, "list channels", err)
	}
	return mapAll(channels, channelFromModel), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, s.classify(ctx, "list categories", err)
	}
	return mapAll(categories, categoryFromModel), nil
}

func (s *service) ListProducts(ctx context.Context, q ProductQuery) ([]ProductDTO, error) {
	if q.Limit == 0 {
		q.Limit = defaultProductLimit
	}
	if q.Limit < 0 || (s.maxLimit > 0 && q.Limit > s.maxLimit) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit out of range").
			WithDetails(map[string]int{"min": 1, "max": s.maxLimit})
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	products, err := s.repo.ListProducts(ctx, q)
	if err != nil {
		return nil, s.classify(ctx, "list products", err)
	}
	if products == nil {
		products = []ProductDTO{}
	}
	return products, nil
}

func (s *service) classify(ctx context.Context, op string, err error) error {
	s.logg.Error(ctx, op, err)
	if db.IsUnavailable(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "analytics store unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}

func mapAll[M, D any](in []M, fn func(M) D) []D {
	out := make([]D, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}
