package portfolio

type Profile struct {
	Base
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	AvatarURL string `json:"avatar_url"`
	ResumeURL string `json:"resume_url"`
}

func (p *Profile) OrderKey() int { return 0 }

func (p *Profile) Normalize() {
	trim(&p.Name, &p.Title, &p.Bio, &p.Email, &p.Phone, &p.Location, &p.AvatarURL, &p.ResumeURL)
}

func (p *Profile) Validate() error {
	if err := checkRequired(
		required("name", p.Name),
		required("title", p.Title),
		required("bio", p.Bio),
		required("email", p.Email),
	); err != nil {
		return err
	}
	if err := checkEmail("email", p.Email); err != nil {
		return err
	}
	if err := checkURL("avatar_url", p.AvatarURL); err != nil {
		return err
	}
	return checkURL("resume_url", p.ResumeURL)
}
