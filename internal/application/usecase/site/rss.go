package site

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
)

// ProjectsFeed lists projects with featured ones first, each group in
// display order.
func (uc *SiteUseCase) ProjectsFeed(ctx context.Context) (*feeds.Feed, error) {
	ctx, span := tracer.Start(ctx, "ProjectsFeed")
	defer span.End()

	projects, err := uc.stores.Projects.ListOrdered(ctx)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to list projects for RSS", err)
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Featured && !projects[j].Featured
	})

	base := strings.TrimRight(uc.feed.BaseURL, "/")
	feed := &feeds.Feed{
		Title:       uc.feed.Title + " - Projects",
		Link:        &feeds.Link{Href: base},
		Description: "Projects from " + uc.feed.Title,
		Created:     time.Now(),
	}

	for _, p := range projects {
		feed.Items = append(feed.Items, projectItem(p, base))
	}
	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

func projectItem(p *portfolio.Project, base string) *feeds.Item {
	link := p.Link()
	if link == "" {
		link = base + "/#projects"
	}
	item := &feeds.Item{
		Id:          p.ID.String(),
		Title:       p.Title,
		Link:        &feeds.Link{Href: link},
		Description: p.Description,
		Created:     p.CreatedAt,
		Updated:     p.UpdatedAt,
	}
	return item
}
