// Package contextimage picks a backdrop photo for a practice prompt. The
// catalog is a fixed set of stock photos chosen by keyword; there is no
// real image generation behind it.
package contextimage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrEmptyPrompt is returned for a blank prompt
var ErrEmptyPrompt = errors.New("prompt is empty")

// Setting is one of the catalog backdrops
type Setting string

const (
	SettingMeeting      Setting = "meeting"
	SettingOffice       Setting = "office"
	SettingInterview    Setting = "interview"
	SettingPresentation Setting = "presentation"
	SettingClassroom    Setting = "classroom"
)

// DefaultSetting is used when no keyword matches
const DefaultSetting = SettingOffice

var photoIDs = map[Setting]string{
	SettingMeeting:      "1181346",
	SettingOffice:       "1181622",
	SettingInterview:    "8088495",
	SettingPresentation: "1181454",
	SettingClassroom:    "1181580",
}

// rules are checked in order; the first match wins
var rules = []struct {
	setting  Setting
	keywords []string
}{
	{SettingMeeting, []string{"meeting"}},
	{SettingInterview, []string{"interview"}},
	{SettingPresentation, []string{"presentation"}},
	{SettingClassroom, []string{"classroom", "class"}},
}

// Image is a selected backdrop
type Image struct {
	Setting Setting `json:"setting"`
	URL     string  `json:"url"`
	Alt     string  `json:"alt"`
}

// URL returns the photo address for setting
func URL(setting Setting) string {
	id := photoIDs[setting]
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg?auto=compress&cs=tinysrgb"
}

// Select matches prompt against the keyword rules, case-insensitively
func Select(prompt string) (Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Image{}, ErrEmptyPrompt
	}

	setting := DefaultSetting
	lower := strings.ToLower(prompt)
match:
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				setting = rule.setting
				break match
			}
		}
	}

	return Image{
		Setting: setting,
		URL:     URL(setting),
		Alt:     "Generated context: " + prompt,
	}, nil
}

// Service simulates generation latency in front of Select
type Service struct {
	delay time.Duration
}

// NewService creates a service that waits delay before answering
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Generate returns the backdrop for prompt. A blank prompt fails at once;
// otherwise it waits out the delay or ctx, whichever ends first.
func (s *Service) Generate(ctx context.Context, prompt string) (Image, error) {
	img, err := Select(prompt)
	if err != nil {
		return Image{}, err
	}
	if s.delay <= 0 {
		return img, nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return img, nil
	case <-ctx.Done():
		return Image{}, ctx.Err()
	}
}
