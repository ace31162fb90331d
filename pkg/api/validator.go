package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// MaxComboSize - больше умений в одной комбинации не бывает.
const MaxComboSize = 4

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

func (p SkillPayload) Validate() error {
	if len(p.Skills) == 0 {
		return errors.New("at least one skill is required")
	}
	if len(p.Skills) > MaxComboSize {
		return fmt.Errorf("combo too long: %d skills", len(p.Skills))
	}
	seen := make(map[string]bool, len(p.Skills))
	for _, id := range p.Skills {
		if id == "" {
			return errors.New("empty skill id")
		}
		if seen[id] {
			return fmt.Errorf("skill %q repeated in combo", id)
		}
		seen[id] = true
	}
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}
