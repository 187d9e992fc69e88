package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

type ExperienceManager = Manager[portfolio.Experience, *portfolio.Experience]

// ExperienceImages edits the certificate image list of a saved experience.
type ExperienceImages struct {
	experiences *ExperienceManager
}

func NewExperienceImages(m *ExperienceManager) *ExperienceImages {
	return &ExperienceImages{experiences: m}
}

func (x *ExperienceImages) Attach(ctx context.Context, id uuid.UUID, url, alt string) (*portfolio.Experience, error) {
	exp, err := x.experiences.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := exp.AddCertificateImage(url, alt); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	return x.experiences.Update(ctx, id, exp)
}

func (x *ExperienceImages) Detach(ctx context.Context, id uuid.UUID, index int) (*portfolio.Experience, error) {
	exp, err := x.experiences.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := exp.RemoveCertificateImage(index); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	return x.experiences.Update(ctx, id, exp)
}
