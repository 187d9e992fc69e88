package portfolio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCertificateURLRequired = errors.New("certificate image url is required")
	ErrCertificateIndex       = errors.New("certificate image index out of range")
	ErrEndBeforeStart         = errors.New("end_date is before start_date")
)

// CertificateImage is image evidence attached to one job entry. It is not
// related to the Certificate collection.
type CertificateImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type Experience struct {
	Base
	Company      string             `json:"company"`
	Position     string             `json:"position"`
	Description  string             `json:"description"`
	StartDate    Date               `json:"start_date"`
	EndDate      *Date              `json:"end_date"`
	IsCurrent    bool               `json:"is_current"`
	Technologies StringList         `json:"technologies" gorm:"serializer:json;type:text"`
	Certificates []CertificateImage `json:"certificates" gorm:"serializer:json;type:text"`
	OrderIndex   int                `json:"order_index"`
}

func (e *Experience) OrderKey() int { return e.OrderIndex }

// Normalize applies the form rules: a current position has no end date.
func (e *Experience) Normalize() {
	trim(&e.Company, &e.Position, &e.Description)
	if e.IsCurrent || (e.EndDate != nil && e.EndDate.IsZero()) {
		e.EndDate = nil
	}
	e.Technologies = e.Technologies.Normalize()
	images := make([]CertificateImage, 0, len(e.Certificates))
	for _, img := range e.Certificates {
		img.URL = strings.TrimSpace(img.URL)
		img.Alt = strings.TrimSpace(img.Alt)
		if img.URL != "" {
			images = append(images, img)
		}
	}
	e.Certificates = images
}

func (e *Experience) Validate() error {
	if err := checkRequired(
		required("company", e.Company),
		required("position", e.Position),
		required("description", e.Description),
		required("start_date", e.StartDate.String()),
	); err != nil {
		return err
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate.Time) {
		return ErrEndBeforeStart
	}
	return nil
}

func (e *Experience) AddCertificateImage(url, alt string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrCertificateURLRequired
	}
	e.Certificates = append(e.Certificates, CertificateImage{URL: url, Alt: strings.TrimSpace(alt)})
	return nil
}

func (e *Experience) RemoveCertificateImage(index int) error {
	if index < 0 || index >= len(e.Certificates) {
		return fmt.Errorf("%w: %d", ErrCertificateIndex, index)
	}
	e.Certificates = append(e.Certificates[:index:index], e.Certificates[index+1:]...)
	return nil
}
