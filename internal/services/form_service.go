package services

import (
	"context"
	"fmt"

	"travelcraft/internal/models/session_models"
	"travelcraft/internal/repositories"
	"travelcraft/pkg/utils"
)

type FormServiceInterface interface {
	Load(ctx context.Context, sessionID string) (*session_models.Session, error)
	SetCountry(ctx context.Context, sessionID, country string) (*session_models.Session, error)
	ToggleCity(ctx context.Context, sessionID, city string, included bool) (*session_models.Session, error)
	SetSchedule(ctx context.Context, sessionID string, arrival, departure *string) (*session_models.Session, error)
	SetStyle(ctx context.Context, sessionID string, style session_models.TravelStyle) (*session_models.Session, error)
	Notify(ctx context.Context, sessionID, notice string) error
	TakeNotice(ctx context.Context, sessionID string) (*session_models.Session, string, error)
	Update(ctx context.Context, sessionID string, fn func(*session_models.Session)) (*session_models.Session, error)
}

type FormService struct {
	sessionRepo repositories.SessionRepository
	catalog     CatalogServiceInterface
}

func NewFormService(sessionRepo repositories.SessionRepository, catalog CatalogServiceInterface) FormServiceInterface {
	return &FormService{
		sessionRepo: sessionRepo,
		catalog:     catalog,
	}
}

// Load returns the session, starting a fresh one if none exists yet.
func (f *FormService) Load(ctx context.Context, sessionID string) (*session_models.Session, error) {
	session, err := f.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSessionStore, err)
	}
	if session == nil {
		session = session_models.NewSession(sessionID)
	}
	return session, nil
}

func (f *FormService) SetCountry(ctx context.Context, sessionID, country string) (*session_models.Session, error) {
	if country != "" && len(f.catalog.CitiesFor(country)) == 0 {
		return nil, utils.ErrUnknownCountry
	}
	return f.Update(ctx, sessionID, func(s *session_models.Session) {
		s.Form.SetCountry(country)
	})
}

func (f *FormService) ToggleCity(ctx context.Context, sessionID, city string, included bool) (*session_models.Session, error) {
	return f.mutate(ctx, sessionID, func(s *session_models.Session) error {
		// Only cities the page could have rendered for the current country are accepted.
		if included && !f.catalog.Offers(s.Form.Country, city) {
			return utils.ErrUnknownCity
		}
		s.Form.ToggleCity(city, included)
		return nil
	})
}

func (f *FormService) SetSchedule(ctx context.Context, sessionID string, arrival, departure *string) (*session_models.Session, error) {
	return f.Update(ctx, sessionID, func(s *session_models.Session) {
		if arrival != nil {
			s.Form.SetArrival(*arrival)
		}
		if departure != nil {
			s.Form.SetDeparture(*departure)
		}
	})
}

func (f *FormService) SetStyle(ctx context.Context, sessionID string, style session_models.TravelStyle) (*session_models.Session, error) {
	if !style.Valid() {
		return nil, utils.ErrUnknownStyle
	}
	return f.Update(ctx, sessionID, func(s *session_models.Session) {
		s.Form.SetStyle(style)
	})
}

func (f *FormService) Notify(ctx context.Context, sessionID, notice string) error {
	_, err := f.Update(ctx, sessionID, func(s *session_models.Session) {
		s.Notice = notice
	})
	return err
}

// TakeNotice consumes the session's pending notice, if any.
func (f *FormService) TakeNotice(ctx context.Context, sessionID string) (*session_models.Session, string, error) {
	var notice string
	session, err := f.mutate(ctx, sessionID, func(s *session_models.Session) error {
		notice = s.TakeNotice()
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return session, notice, nil
}

// Update applies fn to the stored session atomically.
// fn may be re-run on a store conflict and must only touch the session.
func (f *FormService) Update(ctx context.Context, sessionID string, fn func(*session_models.Session)) (*session_models.Session, error) {
	return f.mutate(ctx, sessionID, func(s *session_models.Session) error {
		fn(s)
		return nil
	})
}

// mutate returns fn's error unchanged and wraps store failures in ErrSessionStore.
func (f *FormService) mutate(ctx context.Context, sessionID string, fn func(*session_models.Session) error) (*session_models.Session, error) {
	var fnErr error
	session, err := f.sessionRepo.Update(ctx, sessionID, func(s *session_models.Session) error {
		fnErr = fn(s)
		return fnErr
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSessionStore, err)
	}
	return session, nil
}
