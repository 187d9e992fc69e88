package site

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type DashboardCounts struct {
	Skills       int `json:"skills"`
	Experiences  int `json:"experiences"`
	Certificates int `json:"certificates"`
	Projects     int `json:"projects"`
	SocialLinks  int `json:"social_links"`
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

func (uc *SiteUseCase) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	ctx, span := tracer.Start(ctx, "Dashboard")
	defer span.End()

	out := &DashboardCounts{}
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range []struct {
		store counter
		dst   *int
	}{
		{uc.stores.Skills, &out.Skills},
		{uc.stores.Experiences, &out.Experiences},
		{uc.stores.Certificates, &out.Certificates},
		{uc.stores.Projects, &out.Projects},
		{uc.stores.SocialLinks, &out.SocialLinks},
	} {
		c := c
		g.Go(func() error {
			n, err := c.store.Count(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to count collections", err)
		return nil, err
	}
	return out, nil
}

