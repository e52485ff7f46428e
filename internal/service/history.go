package service

import (
	"context"
	"time"

	"aquaponics/internal/models"
	"aquaponics/internal/repository"
)

const (
	defaultHistoryLimit  = 100
	defaultHistoryWindow = 24 * time.Hour

	timezoneUTC = "utc"
)

// HistoryFilter carries raw query parameters for a history read. Zero
// values get the reference defaults: trailing 24-hour window, 100 rows.
type HistoryFilter struct {
	DeviceID string
	Start    string
	End      string
	Limit    int
	Timezone string
}

type HistoryService struct {
	samples repository.Samples
}

func NewHistoryService(samples repository.Samples) *HistoryService {
	return &HistoryService{samples: samples}
}

// normalize fills defaults and converts the filter to a repository query.
func normalize(f HistoryFilter) repository.RangeQuery {
	now := time.Now().UTC()
	start := f.Start
	if start == "" {
		start = now.Add(-defaultHistoryWindow).Format(models.TimeLayout)
	}
	end := f.End
	if end == "" {
		end = now.Format(models.TimeLayout)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return repository.RangeQuery{
		DeviceID: f.DeviceID,
		Start:    start,
		End:      end,
		Limit:    limit,
		UTCShift: f.Timezone == timezoneUTC,
	}
}

func (s *HistoryService) Humidity(ctx context.Context, f HistoryFilter) ([]models.DataPoint, error) {
	return s.samples.Range(ctx, repository.TableHumidity, normalize(f))
}

func (s *HistoryService) Light(ctx context.Context, f HistoryFilter) ([]models.DataPoint, error) {
	return s.samples.Range(ctx, repository.TableLight, normalize(f))
}
