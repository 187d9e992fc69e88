package portfolio

type Project struct {
	Base
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	DemoURL      string     `json:"demo_url"`
	GithubURL    string     `json:"github_url"`
	Technologies StringList `json:"technologies" gorm:"serializer:json;type:text"`
	Featured     bool       `json:"featured"`
	OrderIndex   int        `json:"order_index"`
}

func (p *Project) OrderKey() int { return p.OrderIndex }

func (p *Project) Normalize() {
	trim(&p.Title, &p.Description, &p.ImageURL, &p.DemoURL, &p.GithubURL)
	p.Technologies = p.Technologies.Normalize()
}

func (p *Project) Validate() error {
	if err := checkRequired(required("title", p.Title), required("description", p.Description)); err != nil {
		return err
	}
	for _, u := range []requiredField{
		required("image_url", p.ImageURL),
		required("demo_url", p.DemoURL),
		required("github_url", p.GithubURL),
	} {
		if err := checkURL(u.name, u.value); err != nil {
			return err
		}
	}
	return nil
}

// Link is where a feed reader should send people: the demo, else the repo.
func (p *Project) Link() string {
	if p.DemoURL != "" {
		return p.DemoURL
	}
	return p.GithubURL
}
