package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ntu-info/emogo-backend-chaudharyinder/constant"
	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
	"github.com/ntu-info/emogo-backend-chaudharyinder/repository"
)

type RecordService interface {
	Create(ctx context.Context, req dto.CreateRecordRequest) (string, error)
	List(ctx context.Context, query dto.ListQuery) ([]*entities.Record, error)
	Get(ctx context.Context, id string) (*entities.Record, error)
	Delete(ctx context.Context, id string) error
	Cleanup(ctx context.Context) (int64, error)
}

type service struct {
	repo     repository.RecordRepository
	validate *validator.Validate
}

func NewService(repo repository.RecordRepository) RecordService {
	return &service{
		repo:     repo,
		validate: newValidator(),
	}
}

func (s *service) Create(ctx context.Context, req dto.CreateRecordRequest) (string, error) {
	if err := s.validateRecord(&req); err != nil {
		return "", err
	}

	vlogFile := constant.DefaultVlogFile
	if req.VlogFile != nil {
		vlogFile = *req.VlogFile
	}

	record := &entities.Record{
		Mood:      req.Mood,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Timestamp: strings.TrimSpace(req.Timestamp),
		VlogFile:  vlogFile,
		Note:      req.Note,
	}

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to insert record")
		return "", err
	}

	zerolog.Ctx(ctx).Info().Str("record_id", id.Hex()).Msg("created record")
	return id.Hex(), nil
}

func (s *service) List(ctx context.Context, query dto.ListQuery) ([]*entities.Record, error) {
	if query.Limit <= 0 {
		query.Limit = constant.DefaultListLimit
	}
	if query.Skip < 0 {
		query.Skip = constant.DefaultListSkip
	}

	records, err := s.repo.Find(ctx, query)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch records")
		return nil, err
	}

	return records, nil
}

func (s *service) Get(ctx context.Context, id string) (*entities.Record, error) {
	recordID, err := entities.ParseRecordID(id)
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, recordID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	recordID, err := entities.ParseRecordID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteByID(ctx, recordID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("record_id", id).Msg("failed to delete record")
		return err
	}
	if deleted == 0 {
		return repository.ErrRecordNotFound
	}

	zerolog.Ctx(ctx).Info().Str("record_id", id).Msg("deleted record")
	return nil
}

func (s *service) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteVideoless(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to clean up videoless records")
		return 0, err
	}

	zerolog.Ctx(ctx).Info().Int64("deleted_count", deleted).Msg("cleaned up videoless records")
	return deleted, nil
}
