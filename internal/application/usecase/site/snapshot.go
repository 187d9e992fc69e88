package site

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("site_usecase")

type SkillGroup struct {
	Category string             `json:"category"`
	Skills   []*portfolio.Skill `json:"skills"`
}

type SkillStats struct {
	Total        int `json:"total"`
	Categories   int `json:"categories"`
	AverageLevel int `json:"average_level"`
}

type SocialLinkView struct {
	*portfolio.SocialLink
	ResolvedIcon string `json:"resolved_icon"`
}

// Snapshot is everything the public page renders, read in one pass.
type Snapshot struct {
	Profile      *portfolio.Profile       `json:"profile"`
	Status       *portfolio.Status        `json:"status"`
	Skills       []*portfolio.Skill       `json:"skills"`
	SkillGroups  []SkillGroup             `json:"skill_groups"`
	SkillStats   SkillStats               `json:"skill_stats"`
	Experiences  []*portfolio.Experience  `json:"experiences"`
	Certificates []*portfolio.Certificate `json:"certificates"`
	Projects     []*portfolio.Project     `json:"projects"`
	SocialLinks  []SocialLinkView         `json:"social_links"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

type FeedConfig struct {
	Title   string
	BaseURL string
}

type SiteUseCase struct {
	stores portfolio.Stores
	cache  service.SnapshotCache
	feed   FeedConfig
	logger logger.Logger
}

func NewSiteUseCase(stores portfolio.Stores, cache service.SnapshotCache, feed FeedConfig, log logger.Logger) *SiteUseCase {
	return &SiteUseCase{stores: stores, cache: cache, feed: feed, logger: log}
}

// GroupSkills buckets skills by category in order of first appearance.
func GroupSkills(skills []*portfolio.Skill) []SkillGroup {
	groups := make([]SkillGroup, 0)
	index := make(map[string]int)
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

// AverageLevel is the rounded mean level, 0 for no skills.
func AverageLevel(skills []*portfolio.Skill) int {
	if len(skills) == 0 {
		return 0
	}
	sum := 0
	for _, s := range skills {
		sum += s.Level
	}
	return int(math.Round(float64(sum) / float64(len(skills))))
}

func firstOrNil[T any](ctx context.Context, store portfolio.Store[T]) (*T, error) {
	item, err := store.First(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	return item, err
}

// Build reads all seven collections concurrently. Any failed read fails
// the whole snapshot.
func (uc *SiteUseCase) Build(ctx context.Context) (*Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	snap := &Snapshot{}
	var links []*portfolio.SocialLink

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Profile, err = firstOrNil(gctx, uc.stores.Profiles)
		return err
	})
	g.Go(func() (err error) {
		snap.Status, err = firstOrNil(gctx, uc.stores.Status)
		return err
	})
	g.Go(func() (err error) {
		snap.Skills, err = uc.stores.Skills.ListOrdered(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Experiences, err = uc.stores.Experiences.ListOrdered(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Certificates, err = uc.stores.Certificates.ListOrdered(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Projects, err = uc.stores.Projects.ListOrdered(gctx)
		return err
	})
	g.Go(func() (err error) {
		links, err = uc.stores.SocialLinks.ListOrdered(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to build portfolio snapshot", err)
		return nil, err
	}

	snap.SkillGroups = GroupSkills(snap.Skills)
	snap.SkillStats = SkillStats{
		Total:        len(snap.Skills),
		Categories:   len(snap.SkillGroups),
		AverageLevel: AverageLevel(snap.Skills),
	}
	snap.SocialLinks = make([]SocialLinkView, 0, len(links))
	for _, l := range links {
		snap.SocialLinks = append(snap.SocialLinks, SocialLinkView{SocialLink: l, ResolvedIcon: l.ResolvedIcon()})
	}
	snap.GeneratedAt = time.Now().UTC()
	return snap, nil
}

// Snapshot serves the cached document when present and rebuilds it
// otherwise. Cache failures only cost a rebuild.
func (uc *SiteUseCase) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Snapshot")
	defer span.End()

	data, ok, err := uc.cache.GetSnapshot(ctx)
	if err != nil {
		uc.logger.Warn("Failed to read snapshot cache", zap.Error(err))
	}
	if ok {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return &snap, nil
		}
		uc.logger.Warn("Discarding unreadable cached snapshot")
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))
	return uc.Rebuild(ctx)
}

// Rebuild builds a fresh snapshot and stores it in the cache.
func (uc *SiteUseCase) Rebuild(ctx context.Context) (*Snapshot, error) {
	snap, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		uc.logger.Error("Failed to encode snapshot", err)
		return snap, nil
	}
	if err := uc.cache.SetSnapshot(ctx, data); err != nil {
		uc.logger.Warn("Failed to write snapshot cache", zap.Error(err))
	}
	return snap, nil
}
