package portfolio

import "errors"

var ErrLevelOutOfRange = errors.New("level must be between 0 and 100")

type Skill struct {
	Base
	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      int    `json:"level"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}

func (s *Skill) OrderKey() int { return s.OrderIndex }

func (s *Skill) Normalize() {
	trim(&s.Name, &s.Category, &s.Icon)
}

func (s *Skill) Validate() error {
	if err := checkRequired(required("name", s.Name), required("category", s.Category)); err != nil {
		return err
	}
	if s.Level < 0 || s.Level > 100 {
		return ErrLevelOutOfRange
	}
	return nil
}
