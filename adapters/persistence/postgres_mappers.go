package persistence

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var orderByIndex = []string{"order_index ASC", "created_at ASC"}

var profileMapper = tableMapper[portfolio.Profile]{
	resource: "profile",
	table:    "profiles",
	columns:  []string{"id", "name", "title", "bio", "email", "phone", "location", "avatar_url", "resume_url", "created_at", "updated_at"},
	orderBy:  []string{"created_at ASC"},
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.Profile, error) {
		p := &portfolio.Profile{}
		err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email, &p.Phone, &p.Location, &p.AvatarURL, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	},
	values: func(p *portfolio.Profile) ([]any, error) {
		return []any{p.ID, p.Name, p.Title, p.Bio, p.Email, p.Phone, p.Location, p.AvatarURL, p.ResumeURL, p.CreatedAt, p.UpdatedAt}, nil
	},
}

var skillMapper = tableMapper[portfolio.Skill]{
	resource: "skill",
	table:    "skills",
	columns:  []string{"id", "name", "category", "level", "icon", "order_index", "created_at", "updated_at"},
	orderBy:  orderByIndex,
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.Skill, error) {
		s := &portfolio.Skill{}
		err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.Icon, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
	values: func(s *portfolio.Skill) ([]any, error) {
		return []any{s.ID, s.Name, s.Category, s.Level, s.Icon, s.OrderIndex, s.CreatedAt, s.UpdatedAt}, nil
	},
}

var experienceMapper = tableMapper[portfolio.Experience]{
	resource: "experience",
	table:    "experiences",
	columns: []string{"id", "company", "position", "description", "start_date", "end_date", "is_current",
		"technologies", "certificates", "order_index", "created_at", "updated_at"},
	orderBy: orderByIndex,
	scan: func(row pgx.Row, l logger.Logger) (*portfolio.Experience, error) {
		e := &portfolio.Experience{}
		var (
			start        time.Time
			end          *time.Time
			technologies []string
			certBytes    []byte
		)
		err := row.Scan(&e.ID, &e.Company, &e.Position, &e.Description, &start, &end, &e.IsCurrent,
			&technologies, &certBytes, &e.OrderIndex, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		e.StartDate = portfolio.DateOf(start)
		if end != nil {
			d := portfolio.DateOf(*end)
			e.EndDate = &d
		}
		e.Technologies = portfolio.StringList(technologies).Normalize()
		e.Certificates = []portfolio.CertificateImage{}
		if len(certBytes) > 0 {
			if err := json.Unmarshal(certBytes, &e.Certificates); err != nil {
				l.Warn("Failed to unmarshal experience certificates", zap.String("experience_id", e.ID.String()), zap.Error(err))
				e.Certificates = []portfolio.CertificateImage{}
			}
		}
		return e, nil
	},
	values: func(e *portfolio.Experience) ([]any, error) {
		certs := e.Certificates
		if certs == nil {
			certs = []portfolio.CertificateImage{}
		}
		certBytes, err := json.Marshal(certs)
		if err != nil {
			return nil, err
		}
		return []any{e.ID, e.Company, e.Position, e.Description, e.StartDate.Time, dateArg(e.EndDate), e.IsCurrent,
			textArray(e.Technologies), certBytes, e.OrderIndex, e.CreatedAt, e.UpdatedAt}, nil
	},
}

var certificateMapper = tableMapper[portfolio.Certificate]{
	resource: "certificate",
	table:    "certificates",
	columns: []string{"id", "title", "issuer", "issue_date", "credential_id", "credential_url", "image_url",
		"order_index", "created_at", "updated_at"},
	orderBy: orderByIndex,
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.Certificate, error) {
		c := &portfolio.Certificate{}
		var issued time.Time
		err := row.Scan(&c.ID, &c.Title, &c.Issuer, &issued, &c.CredentialID, &c.CredentialURL, &c.ImageURL,
			&c.OrderIndex, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		c.IssueDate = portfolio.DateOf(issued)
		return c, nil
	},
	values: func(c *portfolio.Certificate) ([]any, error) {
		return []any{c.ID, c.Title, c.Issuer, c.IssueDate.Time, c.CredentialID, c.CredentialURL, c.ImageURL,
			c.OrderIndex, c.CreatedAt, c.UpdatedAt}, nil
	},
}

var projectMapper = tableMapper[portfolio.Project]{
	resource: "project",
	table:    "projects",
	columns: []string{"id", "title", "description", "image_url", "demo_url", "github_url", "technologies",
		"featured", "order_index", "created_at", "updated_at"},
	orderBy: orderByIndex,
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.Project, error) {
		p := &portfolio.Project{}
		var technologies []string
		err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.DemoURL, &p.GithubURL, &technologies,
			&p.Featured, &p.OrderIndex, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.Technologies = portfolio.StringList(technologies).Normalize()
		return p, nil
	},
	values: func(p *portfolio.Project) ([]any, error) {
		return []any{p.ID, p.Title, p.Description, p.ImageURL, p.DemoURL, p.GithubURL, textArray(p.Technologies),
			p.Featured, p.OrderIndex, p.CreatedAt, p.UpdatedAt}, nil
	},
}

var statusMapper = tableMapper[portfolio.Status]{
	resource: "status",
	table:    "status",
	columns:  []string{"id", "is_available", "status_text", "created_at", "updated_at"},
	orderBy:  []string{"created_at ASC"},
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.Status, error) {
		s := &portfolio.Status{}
		err := row.Scan(&s.ID, &s.IsAvailable, &s.StatusText, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
	values: func(s *portfolio.Status) ([]any, error) {
		return []any{s.ID, s.IsAvailable, s.StatusText, s.CreatedAt, s.UpdatedAt}, nil
	},
}

var socialLinkMapper = tableMapper[portfolio.SocialLink]{
	resource: "social link",
	table:    "social_links",
	columns:  []string{"id", "platform", "url", "icon", "order_index", "created_at", "updated_at"},
	orderBy:  orderByIndex,
	scan: func(row pgx.Row, _ logger.Logger) (*portfolio.SocialLink, error) {
		s := &portfolio.SocialLink{}
		err := row.Scan(&s.ID, &s.Platform, &s.URL, &s.Icon, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
	values: func(s *portfolio.SocialLink) ([]any, error) {
		return []any{s.ID, s.Platform, s.URL, s.Icon, s.OrderIndex, s.CreatedAt, s.UpdatedAt}, nil
	},
}

func dateArg(d *portfolio.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

func textArray(l portfolio.StringList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
