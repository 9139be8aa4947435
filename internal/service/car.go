package service

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carService struct {
	carRepo repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

func (s *carService) ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return s.carRepo.List(ctx, filter)
}

func (s *carService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, car *domain.Car) error {
	return s.carRepo.Create(ctx, car)
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if err := s.carRepo.Update(ctx, car); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *carService) DeleteCar(ctx context.Context, id string) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
