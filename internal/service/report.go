package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/period"
	"fleettrack-backend/internal/repository"
)

type reportService struct {
	reports   repository.ReportRepository
	vehicles  repository.VehicleRepository
	users     repository.UserRepository
	checkouts repository.CheckoutRepository
	trips     repository.TripRepository
	loc       *time.Location
	now       func() time.Time
}

func NewReportService(
	reports repository.ReportRepository,
	vehicles repository.VehicleRepository,
	users repository.UserRepository,
	checkouts repository.CheckoutRepository,
	trips repository.TripRepository,
	loc *time.Location,
	now func() time.Time,
) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{
		reports:   reports,
		vehicles:  vehicles,
		users:     users,
		checkouts: checkouts,
		trips:     trips,
		loc:       loc,
		now:       now,
	}
}

// instantWindow widens a calendar range into a UTC instant window for
// the repository query. The extra day on each side covers timezone
// offsets; events are filtered back to the precise local dates here.
func instantWindow(r period.Range) (time.Time, time.Time) {
	from := r.Start.UTC().Add(-24 * time.Hour)
	to := r.End.AddDate(0, 0, 1).UTC().Add(24 * time.Hour)
	return from, to
}

func (s *reportService) resolveRange(periodName, customStart, customEnd string) (period.Range, error) {
	kind, err := period.ParseKind(periodName)
	if err != nil {
		return period.Range{}, err
	}
	return period.Resolve(kind, s.now(), s.loc, customStart, customEnd)
}

func (s *reportService) PeriodReport(ctx context.Context, periodName, customStart, customEnd, granularity string) (*domain.PeriodReport, error) {
	r, err := s.resolveRange(periodName, customStart, customEnd)
	if err != nil {
		return nil, err
	}
	gran, err := period.ParseGranularity(granularity)
	if err != nil {
		return nil, err
	}

	from, to := instantWindow(r)
	events, err := s.reports.UsageEvents(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage events: %w", err)
	}

	return s.buildPeriodReport(ctx, events, r, gran)
}

func (s *reportService) UserPeriodReport(ctx context.Context, userCode, periodName, customStart, customEnd, granularity string) (*domain.PeriodReport, error) {
	user, err := s.users.GetByCode(ctx, userCode)
	if err != nil {
		return nil, err
	}

	r, err := s.resolveRange(periodName, customStart, customEnd)
	if err != nil {
		return nil, err
	}
	gran, err := period.ParseGranularity(granularity)
	if err != nil {
		return nil, err
	}

	from, to := instantWindow(r)
	events, err := s.reports.UsageEventsByUser(ctx, user.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage events: %w", err)
	}

	return s.buildPeriodReport(ctx, events, r, gran)
}

// bucketAcc accumulates one bucket in a single pass over the events.
type bucketAcc struct {
	totalKM  float64
	events   int32
	vehicles map[int32]struct{}
	users    map[int32]struct{}
}

func (s *reportService) buildPeriodReport(ctx context.Context, events []domain.UsageEvent, r period.Range, gran domain.ReportGranularity) (*domain.PeriodReport, error) {
	report := &domain.PeriodReport{
		Start:       period.DayKey(r.Start, s.loc),
		End:         period.DayKey(r.End, s.loc),
		Days:        r.Days(),
		Granularity: gran,
		Vehicles:    []domain.VehicleUsage{},
		Users:       []domain.UserUsage{},
		Buckets:     []domain.PeriodBucket{},
		Series:      []domain.PeriodBucket{},
	}

	vehicleTotals := map[int32]*domain.VehicleUsage{}
	userTotals := map[int32]*domain.UserUsage{}
	buckets := map[string]*bucketAcc{}

	for _, e := range events {
		if !r.Contains(e.When) {
			continue
		}

		report.TotalKM += e.Distance
		report.Events++

		vu := vehicleTotals[e.VehicleID]
		if vu == nil {
			vu = &domain.VehicleUsage{VehicleID: e.VehicleID}
			vehicleTotals[e.VehicleID] = vu
		}
		vu.TotalKM += e.Distance
		vu.Events++

		uu := userTotals[e.UserID]
		if uu == nil {
			uu = &domain.UserUsage{UserID: e.UserID}
			userTotals[e.UserID] = uu
		}
		uu.TotalKM += e.Distance
		uu.Events++

		key, err := period.BucketKey(gran, e.When, s.loc)
		if err != nil {
			return nil, err
		}
		b := buckets[key]
		if b == nil {
			b = &bucketAcc{
				vehicles: map[int32]struct{}{},
				users:    map[int32]struct{}{},
			}
			buckets[key] = b
		}
		b.totalKM += e.Distance
		b.events++
		b.vehicles[e.VehicleID] = struct{}{}
		b.users[e.UserID] = struct{}{}
	}

	days := float64(report.Days)
	if report.Events > 0 {
		report.AvgPerEvent = report.TotalKM / float64(report.Events)
	}
	report.AvgPerDay = report.TotalKM / days

	for id, vu := range vehicleTotals {
		if v, err := s.vehicles.GetByID(ctx, id); err == nil {
			vu.Plate, vu.Make, vu.Model = v.Plate, v.Make, v.Model
		}
		vu.AvgPerEvent = vu.TotalKM / float64(vu.Events)
		vu.AvgPerDay = vu.TotalKM / days
		report.Vehicles = append(report.Vehicles, *vu)
	}
	sort.Slice(report.Vehicles, func(i, j int) bool {
		return report.Vehicles[i].TotalKM > report.Vehicles[j].TotalKM
	})

	for id, uu := range userTotals {
		if u, err := s.users.GetByID(ctx, id); err == nil {
			uu.Code, uu.Name = u.Code, u.Name
		}
		uu.AvgPerEvent = uu.TotalKM / float64(uu.Events)
		uu.AvgPerDay = uu.TotalKM / days
		report.Users = append(report.Users, *uu)
	}
	sort.Slice(report.Users, func(i, j int) bool {
		return report.Users[i].TotalKM > report.Users[j].TotalKM
	})

	for key, b := range buckets {
		report.Series = append(report.Series, domain.PeriodBucket{
			Key:      key,
			TotalKM:  b.totalKM,
			Events:   b.events,
			Vehicles: int32(len(b.vehicles)),
			Users:    int32(len(b.users)),
		})
	}
	sort.Slice(report.Series, func(i, j int) bool {
		return report.Series[i].Key < report.Series[j].Key
	})
	report.Buckets = make([]domain.PeriodBucket, len(report.Series))
	for i, b := range report.Series {
		report.Buckets[len(report.Series)-1-i] = b
	}

	return report, nil
}

func (s *reportService) QuickSummary(ctx context.Context) ([]domain.VehicleQuickSummary, error) {
	vehicles, err := s.vehicles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	events, err := s.reports.AllUsageEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage events: %w", err)
	}

	now := s.now()
	today, _ := period.Resolve(period.KindToday, now, s.loc, "", "")
	week, _ := period.Resolve(period.KindWeek, now, s.loc, "", "")
	month, _ := period.Resolve(period.KindMonth, now, s.loc, "", "")

	summaries := make([]domain.VehicleQuickSummary, 0, len(vehicles))
	index := map[int32]int{}
	for _, v := range vehicles {
		index[v.ID] = len(summaries)
		summaries = append(summaries, domain.VehicleQuickSummary{
			VehicleID: v.ID,
			Plate:     v.Plate,
			Make:      v.Make,
			Model:     v.Model,
		})
	}

	for _, e := range events {
		pos, ok := index[e.VehicleID]
		if !ok {
			continue // deactivated vehicle
		}
		sum := &summaries[pos]
		sum.KMTotal += e.Distance
		if month.Contains(e.When) {
			sum.KMMonth += e.Distance
		}
		if week.Contains(e.When) {
			sum.KMWeek += e.Distance
		}
		if today.Contains(e.When) {
			sum.KMToday += e.Distance
		}
	}

	return summaries, nil
}

func (s *reportService) UserDetailReport(ctx context.Context, userCode string) (*domain.UserDetailReport, error) {
	user, err := s.users.GetByCode(ctx, userCode)
	if err != nil {
		return nil, err
	}

	checkouts, err := s.checkouts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkouts: %w", err)
	}

	report := &domain.UserDetailReport{
		UserID:   user.ID,
		Code:     user.Code,
		Name:     user.Name,
		Vehicles: []domain.UserVehicleDetail{},
	}

	byVehicle := map[int32]*domain.UserVehicleDetail{}
	for i := range checkouts {
		co := checkouts[i]

		trips, err := s.trips.ListByCheckout(ctx, co.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkout trips: %w", err)
		}
		co.Trips = trips

		detail := byVehicle[co.VehicleID]
		if detail == nil {
			detail = &domain.UserVehicleDetail{VehicleID: co.VehicleID}
			if v, err := s.vehicles.GetByID(ctx, co.VehicleID); err == nil {
				detail.Plate, detail.Make, detail.Model = v.Plate, v.Make, v.Model
			}
			byVehicle[co.VehicleID] = detail
		}

		if co.EndOdometer != nil {
			detail.TotalKM += *co.EndOdometer - co.StartOdometer
			detail.Events++
		}
		for _, t := range trips {
			if t.Distance != nil {
				detail.TotalKM += *t.Distance
				detail.Events++
			}
		}

		detail.Checkouts = append(detail.Checkouts, co)
	}

	for _, d := range byVehicle {
		report.TotalKM += d.TotalKM
		report.Events += d.Events
		report.Vehicles = append(report.Vehicles, *d)
	}
	sort.Slice(report.Vehicles, func(i, j int) bool {
		return report.Vehicles[i].TotalKM > report.Vehicles[j].TotalKM
	})

	return report, nil
}
