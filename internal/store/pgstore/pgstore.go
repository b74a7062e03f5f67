// Package pgstore holds the gorm-backed stores for the plain per-entity
// records: users, alerts and activity logs. None of these carry a
// cross-entity invariant, so they bypass the coordinator.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"safemap/internal/model"
	"safemap/internal/util"
)

type AlertStore struct {
	db *gorm.DB
}

func NewAlertStore(db *gorm.DB) *AlertStore {
	return &AlertStore{db: db}
}

func (s *AlertStore) Create(ctx context.Context, a *model.Alert) error {
	if a.ID == "" {
		a.ID = util.ShortUUID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (s *AlertStore) GetAlert(ctx context.Context, id string) (*model.Alert, error) {
	var a model.Alert
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

func (s *AlertStore) List(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := s.db.WithContext(ctx).Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (s *AlertStore) Update(ctx context.Context, a *model.Alert) error {
	res := s.db.WithContext(ctx).Model(&model.Alert{}).Where("id = ?", a.ID).
		Updates(map[string]any{
			"type":      a.Type,
			"message":   a.Message,
			"zone_id":   a.ZoneID,
			"zone_kind": a.ZoneKind,
		})
	if res.Error != nil {
		return fmt.Errorf("update alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrAlertNotFound
	}
	return nil
}

func (s *AlertStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Alert{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrAlertNotFound
	}
	return nil
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = util.ShortUUID()
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Search(ctx context.Context, query string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("username ILIKE ?", "%"+query+"%").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, u *model.User) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).
		Updates(map[string]any{
			"username": u.Username,
			"is_admin": u.IsAdmin,
		})
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

type ActivityLogStore struct {
	db *gorm.DB
}

func NewActivityLogStore(db *gorm.DB) *ActivityLogStore {
	return &ActivityLogStore{db: db}
}

func (s *ActivityLogStore) Create(ctx context.Context, entry *model.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = util.ShortUUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

func (s *ActivityLogStore) Get(ctx context.Context, id string) (*model.ActivityLog, error) {
	var entry model.ActivityLog
	err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrActivityLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity log: %w", err)
	}
	return &entry, nil
}

func (s *ActivityLogStore) List(ctx context.Context) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return entries, nil
}

func (s *ActivityLogStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.ActivityLog{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete activity log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrActivityLogNotFound
	}
	return nil
}
