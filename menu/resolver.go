package menu

import (
	"context"
	"strings"

	"banquet-admin/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	SourceBooking   = "booking"
	SourceMenuItems = "booking.menuItems"
	SourceNone      = "none"
)

// Fetcher retrieves one raw menu payload for a booking from a remote source.
// Implementations must honour ctx cancellation.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, booking *model.Booking, token string) (bson.Raw, error)
}

// Resolver turns a booking into a display-ready menu. Fetchers are tried in
// the order they were given.
type Resolver struct {
	fetchers []Fetcher
	log      zerolog.Logger
}

func NewResolver(log zerolog.Logger, fetchers ...Fetcher) *Resolver {
	return &Resolver{
		fetchers: fetchers,
		log:      log.With().Str("component", "menu-resolver").Logger(),
	}
}

// Resolve never fails: every path ends in a renderable menu, Empty included.
// The booking is only read.
func (r *Resolver) Resolve(ctx context.Context, booking *model.Booking, token string) model.ResolvedMenu {
	if booking == nil {
		return model.ResolvedMenu{Kind: model.MenuEmpty, Source: SourceNone}
	}
	log := r.log.With().Str("booking", booking.Id.Hex()).Logger()

	if booking.CategorizedMenu.Len() > 0 {
		if categories := ValidCategories(booking.CategorizedMenu.Document()); len(categories) > 0 {
			log.Debug().Int("categories", len(categories)).Msg("using booking categorized menu")
			return model.ResolvedMenu{Kind: model.MenuCategorized, Categories: categories, Source: SourceBooking}
		}
		log.Debug().Msg("booking categorized menu has no valid categories")
	}

	if resolved, ok := r.fetch(ctx, log, booking, token); ok {
		return resolved
	}

	return flat(booking)
}

func (r *Resolver) fetch(ctx context.Context, log zerolog.Logger, booking *model.Booking, token string) (model.ResolvedMenu, bool) {
	for _, fetcher := range r.fetchers {
		if ctx.Err() != nil {
			log.Debug().Err(ctx.Err()).Msg("menu resolution abandoned")
			return model.ResolvedMenu{}, false
		}

		payload, err := r.try(ctx, fetcher, booking, token)
		if err != nil {
			log.Warn().Err(err).Str("fetcher", fetcher.Name()).Msg("menu candidate failed")
			continue
		}

		shape, categories := Categories(payload)
		if len(categories) == 0 {
			log.Debug().Str("fetcher", fetcher.Name()).Msg("menu candidate returned no valid categories")
			continue
		}

		log.Debug().Str("fetcher", fetcher.Name()).Str("shape", shape).Msg("found menu data")
		return model.ResolvedMenu{
			Kind:       model.MenuCategorized,
			Categories: categories,
			Source:     fetcher.Name() + ":" + shape,
		}, true
	}

	if len(r.fetchers) > 0 {
		log.Info().Int("fetchers", len(r.fetchers)).Msg("no fetcher produced menu data")
	}
	return model.ResolvedMenu{}, false
}

// try shields the cascade from a misbehaving fetcher.
func (r *Resolver) try(ctx context.Context, fetcher Fetcher, booking *model.Booking, token string) (payload bson.Raw, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			payload, err = nil, &FetchError{Fetcher: fetcher.Name(), Reason: "panic", Cause: panicError{rec}}
		}
	}()
	return fetcher.Fetch(ctx, booking, token)
}

func flat(booking *model.Booking) model.ResolvedMenu {
	if len(booking.MenuItems.List) > 0 {
		items := append([]string(nil), booking.MenuItems.List...)
		return model.ResolvedMenu{Kind: model.MenuFlatList, Items: items, Source: SourceMenuItems}
	}
	if strings.TrimSpace(booking.MenuItems.Text) != "" {
		return model.ResolvedMenu{Kind: model.MenuFlatText, Text: booking.MenuItems.Text, Source: SourceMenuItems}
	}
	return model.ResolvedMenu{Kind: model.MenuEmpty, Source: SourceNone}
}
