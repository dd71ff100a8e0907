package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/castmember"
)

type castMemberService struct {
	repo castmember.Repository
}

func NewCastMemberService(repo castmember.Repository) castmember.Service {
	return &castMemberService{repo: repo}
}

func (s *castMemberService) Create(ctx context.Context, req *castmember.CreateCastMemberRequest) (*castmember.CastMember, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := &castmember.CastMember{
		ID:   uuid.New(),
		Name: req.Name,
		Type: req.Type,
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create cast member: %w", err)
	}

	return created, nil
}

func (s *castMemberService) GetByID(ctx context.Context, id uuid.UUID) (*castmember.CastMember, error) {
	if id == uuid.Nil {
		return nil, castmember.ErrCastMemberNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *castMemberService) List(ctx context.Context, filter castmember.ListFilter) ([]castmember.CastMember, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *castMemberService) Update(ctx context.Context, id uuid.UUID, req *castmember.UpdateCastMemberRequest) (*castmember.CastMember, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Type = req.Type

	return s.repo.Update(ctx, existing)
}

func (s *castMemberService) Delete(ctx context.Context, ids []uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, ids)
	if err != nil {
		return err
	}
	if affected == 0 {
		return castmember.ErrCastMemberNotFound
	}
	return nil
}

func (s *castMemberService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
