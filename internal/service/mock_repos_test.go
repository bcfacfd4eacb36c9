package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
)

// ── fake UserRepository ──

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*model.User), nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range r.users {
		if u.TelegramID == telegramID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

// ── fake week config + series storage ──

type fakeWeekRepo struct {
	days         map[int64][]*model.WeekDay
	series       []*model.ClassSeries
	nextSeriesID int64
	replaceCalls int

	// занятия, которые Replace чистит как в базе
	sessions *fakeSessionRepo
	now      func() time.Time
}

func newFakeWeekRepo(sessions *fakeSessionRepo, now func() time.Time) *fakeWeekRepo {
	return &fakeWeekRepo{
		days:     make(map[int64][]*model.WeekDay),
		sessions: sessions,
		now:      now,
	}
}

func (r *fakeWeekRepo) GetDays(_ context.Context, trainerID int64) ([]*model.WeekDay, error) {
	return r.days[trainerID], nil
}

func (r *fakeWeekRepo) Replace(_ context.Context, trainerID int64, days []*model.WeekDay, series []*model.ClassSeries) error {
	r.replaceCalls++
	r.days[trainerID] = days

	if r.sessions != nil {
		now := r.now()
		kept := r.sessions.sessions[:0]
		for _, s := range r.sessions.sessions {
			if s.TrainerID == trainerID && s.SeriesID != nil {
				if s.StartTime.After(now) && s.Status == model.SessionStatusScheduled {
					continue
				}
				// ON DELETE SET NULL
				s.SeriesID = nil
			}
			kept = append(kept, s)
		}
		r.sessions.sessions = kept
	}

	kept := r.series[:0]
	for _, s := range r.series {
		if s.TrainerID != trainerID {
			kept = append(kept, s)
		}
	}
	r.series = kept

	for _, s := range series {
		r.nextSeriesID++
		s.ID = r.nextSeriesID
		r.series = append(r.series, s)
	}
	return nil
}

func (r *fakeWeekRepo) GetByTrainerID(_ context.Context, trainerID int64) ([]*model.ClassSeries, error) {
	var out []*model.ClassSeries
	for _, s := range r.series {
		if s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeWeekRepo) GetAllActive(_ context.Context) ([]*model.ClassSeries, error) {
	var out []*model.ClassSeries
	for _, s := range r.series {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

// ── fake ClassSessionRepository ──

type fakeSessionRepo struct {
	sessions []*model.ClassSession
	nextID   int64
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.ClassSession) error {
	r.nextID++
	session.ID = r.nextID
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*model.ClassSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetByTrainerID(_ context.Context, trainerID int64, from, to time.Time) ([]*model.ClassSession, error) {
	var out []*model.ClassSession
	for _, s := range r.sessions {
		if s.TrainerID == trainerID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) GetUpcoming(_ context.Context, from, to time.Time) ([]*model.ClassSession, error) {
	var out []*model.ClassSession
	for _, s := range r.sessions {
		if s.Status == model.SessionStatusScheduled && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Cancel(_ context.Context, id int64) error {
	for _, s := range r.sessions {
		if s.ID == id {
			s.Status = model.SessionStatusCanceled
		}
	}
	return nil
}

func (r *fakeSessionRepo) SessionExists(_ context.Context, trainerID int64, startTime time.Time) (bool, error) {
	for _, s := range r.sessions {
		if s.TrainerID == trainerID && s.StartTime.Equal(startTime) {
			return true, nil
		}
	}
	return false, nil
}
