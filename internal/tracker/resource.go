package tracker

import (
	"context"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/models"
)

// Resource is the CRUD surface a tracker page drives
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, key string, item T) error
	Delete(ctx context.Context, key string) error
	Key(item T) string
}

type DailyAPI interface {
	Upsert(ctx context.Context, e models.DailyEntry) (*models.DailyEntry, error)
	List(ctx context.Context, opts api.ListOptions) ([]models.DailyEntry, error)
	Get(ctx context.Context, date string) (*models.DailyEntry, error)
	Delete(ctx context.Context, date string) error
}

// DailyResource keys entries by date; create and update are both upserts
type DailyResource struct {
	API DailyAPI
}

func (r DailyResource) List(ctx context.Context) ([]models.DailyEntry, error) {
	return r.API.List(ctx, api.ListOptions{Limit: constants.DailyPageSize})
}

func (r DailyResource) Create(ctx context.Context, e models.DailyEntry) error {
	_, err := r.API.Upsert(ctx, e)
	return err
}

func (r DailyResource) Update(ctx context.Context, date string, e models.DailyEntry) error {
	e.Date = date
	_, err := r.API.Upsert(ctx, e)
	return err
}

func (r DailyResource) Delete(ctx context.Context, date string) error {
	return r.API.Delete(ctx, date)
}

func (r DailyResource) Key(e models.DailyEntry) string {
	return models.Day(e.Date)
}

type MockAPI interface {
	Create(ctx context.Context, m models.MockRecord) (*models.MockRecord, error)
	List(ctx context.Context, opts api.ListOptions) ([]models.MockRecord, error)
	Update(ctx context.Context, id string, m models.MockRecord) (*models.MockRecord, error)
	Delete(ctx context.Context, id string) error
}

type MockResource struct {
	API MockAPI
}

func (r MockResource) List(ctx context.Context) ([]models.MockRecord, error) {
	return r.API.List(ctx, api.ListOptions{Limit: constants.MockPageSize})
}

func (r MockResource) Create(ctx context.Context, m models.MockRecord) error {
	_, err := r.API.Create(ctx, m)
	return err
}

func (r MockResource) Update(ctx context.Context, id string, m models.MockRecord) error {
	_, err := r.API.Update(ctx, id, m)
	return err
}

func (r MockResource) Delete(ctx context.Context, id string) error {
	return r.API.Delete(ctx, id)
}

func (r MockResource) Key(m models.MockRecord) string {
	return m.ID
}

type SoftSkillAPI interface {
	Create(ctx context.Context, s models.SoftSkillSession) (*models.SoftSkillSession, error)
	List(ctx context.Context, opts api.ListOptions) (*api.SoftSkillList, error)
	Update(ctx context.Context, id string, s models.SoftSkillSession) (*models.SoftSkillSession, error)
	Delete(ctx context.Context, id string) error
}

type SoftSkillResource struct {
	API SoftSkillAPI
}

func (r SoftSkillResource) List(ctx context.Context) ([]models.SoftSkillSession, error) {
	list, err := r.API.List(ctx, api.ListOptions{Limit: constants.SoftSkillPageSize})
	if err != nil {
		return nil, err
	}
	return list.Sessions, nil
}

func (r SoftSkillResource) Create(ctx context.Context, s models.SoftSkillSession) error {
	_, err := r.API.Create(ctx, s)
	return err
}

func (r SoftSkillResource) Update(ctx context.Context, id string, s models.SoftSkillSession) error {
	_, err := r.API.Update(ctx, id, s)
	return err
}

func (r SoftSkillResource) Delete(ctx context.Context, id string) error {
	return r.API.Delete(ctx, id)
}

func (r SoftSkillResource) Key(s models.SoftSkillSession) string {
	return s.ID
}
