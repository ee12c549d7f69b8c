package domain

import (
	"fmt"
	"strings"

	apperrors "studychef/internal/platform/errors"
)

func (s *State) AddTask(item ChecklistItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Tag = strings.TrimSpace(item.Tag)
	if item.Title == "" {
		return fmt.Errorf("%w: task title is required", apperrors.ErrInvalidInput)
	}
	if item.ID == "" {
		return fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	if _, ok := s.taskIndex(item.ID); ok {
		return fmt.Errorf("%w: duplicate task id %s", apperrors.ErrInvalidInput, item.ID)
	}
	item.Done = false
	item.Rewarded = false
	s.Checklist = append(s.Checklist, item)
	return nil
}

// ToggleTask flips the done flag of a task. The first completion of a task
// grants the bonus-adjusted checklist reward; later toggles grant nothing and
// un-completing never refunds.
func (s *State) ToggleTask(id string, b Bonuses) (ChecklistItem, Reward, error) {
	idx, ok := s.taskIndex(id)
	if !ok {
		return ChecklistItem{}, Reward{}, fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id)
	}
	item := &s.Checklist[idx]
	item.Done = !item.Done
	var granted Reward
	if item.Done && !item.Rewarded {
		granted = b.Apply(ChecklistReward)
		s.grant(granted)
		item.Rewarded = true
	}
	return *item, granted, nil
}

func (s *State) RemoveTask(id string) error {
	idx, ok := s.taskIndex(id)
	if !ok {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id)
	}
	s.Checklist = append(s.Checklist[:idx], s.Checklist[idx+1:]...)
	return nil
}

func (s State) taskIndex(id string) (int, bool) {
	for i, item := range s.Checklist {
		if item.ID == id {
			return i, true
		}
	}
	return 0, false
}
