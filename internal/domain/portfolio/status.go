package portfolio

type Status struct {
	Base
	IsAvailable bool   `json:"is_available"`
	StatusText  string `json:"status_text"`
}

func (s *Status) OrderKey() int { return 0 }

func (s *Status) Normalize() {
	trim(&s.StatusText)
}

func (s *Status) Validate() error {
	return checkRequired(required("status_text", s.StatusText))
}
