package posts

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

const dateLayout = "02/01/2006"

var (
	ErrNotFound    = apperrors.New(apperrors.KindNotFound, "Post not found")
	ErrInvalidDate = apperrors.New(apperrors.KindValidation, "Invalid date format. Expected format: DD/MM/YYYY")
	ErrMissing     = apperrors.New(apperrors.KindValidation, "All fields are required")
	ErrWaveRange   = apperrors.New(apperrors.KindValidation, "Minimum wave height cannot exceed maximum wave height")
)

// Post announces a surf session.
type Post struct {
	ID                string    `json:"id"`
	Date              Day       `json:"date"`
	Time              string    `json:"time"`
	MinimumWaveHeight float64   `json:"minimumWaveHeight"`
	MaximumWaveHeight float64   `json:"maximumWaveHeight"`
	AverageWindSpeed  float64   `json:"averageWindSpeed"`
	Description       string    `json:"description"`
	PhotoURL          string    `json:"photoUrl,omitempty"`
	CreatedBy         string    `json:"createdBy"`
	Likes             []string  `json:"likes"`
	LikeCount         int       `json:"likeCount"`
	Participants      []string  `json:"participants"`
	ParticipantCount  int       `json:"participantCount"`
	Comments          []string  `json:"comments"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (p *Post) Clone() *Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	c.Participants = append([]string{}, p.Participants...)
	c.Comments = append([]string{}, p.Comments...)
	return &c
}

// Day is a calendar day at UTC midnight, serialized as DD/MM/YYYY.
type Day struct {
	time.Time
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatDate(d.Time))
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate reads a DD/MM/YYYY date. Single digit days and months are accepted.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2/1/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type CreateRequest struct {
	Date              string  `json:"date"`
	Time              string  `json:"time"`
	MinimumWaveHeight float64 `json:"minimumWaveHeight"`
	MaximumWaveHeight float64 `json:"maximumWaveHeight"`
	AverageWindSpeed  float64 `json:"averageWindSpeed"`
	Description       string  `json:"description"`
	PhotoURL          string  `json:"photoUrl"`
}

// UpdateRequest overwrites only the fields that are set (non-zero).
type UpdateRequest CreateRequest

func (r CreateRequest) validate() (time.Time, error) {
	if r.Date == "" || r.Time == "" || r.MinimumWaveHeight == 0 || r.MaximumWaveHeight == 0 ||
		strings.TrimSpace(r.Description) == "" {
		return time.Time{}, ErrMissing
	}
	if r.MinimumWaveHeight > r.MaximumWaveHeight {
		return time.Time{}, ErrWaveRange
	}
	return ParseDate(r.Date)
}

// apply merges r into p and re-checks the wave range.
func (r UpdateRequest) apply(p *Post) error {
	if r.Date != "" {
		d, err := ParseDate(r.Date)
		if err != nil {
			return err
		}
		p.Date = Day{d}
	}
	if r.Time != "" {
		p.Time = r.Time
	}
	if r.MinimumWaveHeight != 0 {
		p.MinimumWaveHeight = r.MinimumWaveHeight
	}
	if r.MaximumWaveHeight != 0 {
		p.MaximumWaveHeight = r.MaximumWaveHeight
	}
	if r.AverageWindSpeed != 0 {
		p.AverageWindSpeed = r.AverageWindSpeed
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		p.Description = d
	}
	if r.PhotoURL != "" {
		p.PhotoURL = r.PhotoURL
	}
	if p.MinimumWaveHeight > p.MaximumWaveHeight {
		return ErrWaveRange
	}
	return nil
}
